package fault

import (
	"errors"
	"fmt"
	"testing"
)

var errDisk = errors.New("disk full")

func TestFatalWrap(t *testing.T) {
	err := Fatal("linestore.set", errDisk)

	if !IsFatal(err) {
		t.Error("IsFatal() = false, want true")
	}
	if !errors.Is(err, errDisk) {
		t.Error("wrapped error should unwrap to the cause")
	}
	if got := err.Error(); got != "linestore.set: disk full" {
		t.Errorf("Error() = %q, want %q", got, "linestore.set: disk full")
	}
}

func TestFatalIdempotent(t *testing.T) {
	inner := FatalLine("linestore.get", 7, errDisk)
	outer := Fatal("engine.delete", inner)

	if outer != inner {
		t.Error("Fatal should return an already fatal error unchanged")
	}
	if got := inner.Error(); got != "linestore.get: line 7: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFatalNil(t *testing.T) {
	if Fatal("op", nil) != nil {
		t.Error("Fatal(nil) should be nil")
	}
	if FatalLine("op", 3, nil) != nil {
		t.Error("FatalLine(nil) should be nil")
	}
}

func TestFatalThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("session: %w", Fatal("op", errDisk))
	if !IsFatal(err) {
		t.Error("fatal classification should survive fmt wrapping")
	}
}

func TestUserError(t *testing.T) {
	sentinel := errors.New("empty register")
	err := UserWrap(sentinel, "Buffer %c is empty", 'a')

	if !IsUser(err) {
		t.Error("IsUser() = false, want true")
	}
	if IsFatal(err) {
		t.Error("user error must not be fatal")
	}
	if !errors.Is(err, sentinel) {
		t.Error("user error should unwrap to sentinel")
	}
	if err.Error() != "Buffer a is empty" {
		t.Errorf("Error() = %q", err.Error())
	}

	if IsUser(errDisk) {
		t.Error("plain error is not a user error")
	}
}
