package event

import (
	"errors"
	"testing"

	"github.com/dshills/vicore/internal/input/key"
)

func TestKindString(t *testing.T) {
	if Character.String() != "character" {
		t.Errorf("Character.String() = %q", Character.String())
	}
	if Kind(99).String() != "Kind(99)" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}

func TestKindIsFatal(t *testing.T) {
	for _, k := range []Kind{Err, Hangup, Terminate} {
		if !k.IsFatal() {
			t.Errorf("%v.IsFatal() = false, want true", k)
		}
	}
	for _, k := range []Kind{Character, EOF, Interrupt, Timeout, Resize} {
		if k.IsFatal() {
			t.Errorf("%v.IsFatal() = true, want false", k)
		}
	}
}

func TestFlags(t *testing.T) {
	f := Mapped | NoMap
	if !f.Has(Mapped) || !f.Has(NoMap) || f.Has(Quoted) {
		t.Errorf("Has() wrong for %v", f)
	}
	if !f.Any(Quoted | Mapped) {
		t.Error("Any(Quoted|Mapped) = false, want true")
	}
	if f.String() != "mapped|nomap" {
		t.Errorf("String() = %q", f.String())
	}
	if Flags(0).String() != "none" {
		t.Errorf("zero String() = %q", Flags(0).String())
	}
}

func TestUnexpected(t *testing.T) {
	if got := Of(Repaint).Unexpected(); got != "Unexpected repaint event" {
		t.Errorf("Unexpected() = %q", got)
	}
	if got := NewErr(errors.New("x")).Unexpected(); got != "Unexpected error event" {
		t.Errorf("Unexpected() = %q", got)
	}
}

func TestIsNotDigit(t *testing.T) {
	if !NewChar(key.NotDigit, key.NotUsed, 0).IsNotDigit() {
		t.Error("IsNotDigit() = false for sentinel")
	}
	if NewChar('5', key.NotUsed, 0).IsNotDigit() {
		t.Error("IsNotDigit() = true for '5'")
	}
	if Of(EOF).IsNotDigit() {
		t.Error("IsNotDigit() = true for EOF")
	}
}
