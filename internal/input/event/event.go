// Package event defines input events and the pending-input queue.
package event

import (
	"fmt"

	"github.com/dshills/vicore/internal/input/key"
)

// Kind identifies the variant of an Event.
type Kind uint8

const (
	// None is the zero Kind. It is returned by check-only resolver calls
	// that found nothing to report.
	None Kind = iota
	Character
	String
	EOF
	Interrupt
	Quit
	Repaint
	Resize
	Timeout
	Write
	Err
	Hangup
	Terminate
)

var kindNames = [...]string{
	None:      "none",
	Character: "character",
	String:    "string",
	EOF:       "end-of-file",
	Interrupt: "interrupt",
	Quit:      "quit",
	Repaint:   "repaint",
	Resize:    "resize",
	Timeout:   "timeout",
	Write:     "write",
	Err:       "error",
	Hangup:    "hangup",
	Terminate: "terminate",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsFatal reports whether the kind ends the editing session.
func (k Kind) IsFatal() bool {
	return k == Err || k == Hangup || k == Terminate
}

// Flags annotate a character event.
type Flags uint8

const (
	// Quoted marks a character that was literal-next quoted.
	Quoted Flags = 1 << iota
	// Mapped marks a character produced by a mapping or abbreviation.
	Mapped
	// NoMap marks a character that must not be mapped again.
	NoMap
)

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Any reports whether any bit of f2 is set.
func (f Flags) Any(f2 Flags) bool { return f&f2 != 0 }

// String returns a readable list of set flags.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if f.Has(Quoted) {
		add("quoted")
	}
	if f.Has(Mapped) {
		add("mapped")
	}
	if f.Has(NoMap) {
		add("nomap")
	}
	return s
}

// Char is the payload of a Character event.
type Char struct {
	// Raw is the character as read, or key.NotDigit.
	Raw rune
	// Value is the symbolic classification of Raw.
	Value key.Value
	// Flags annotate how the character reached the queue.
	Flags Flags
}

// Event is a single input event. Only the fields belonging to Kind are
// meaningful: Ch for Character, Str for String, Width and Height for
// Resize, Err for Err.
type Event struct {
	Kind   Kind
	Ch     Char
	Str    []rune
	Width  int
	Height int
	Err    error
}

// NewChar returns a Character event.
func NewChar(raw rune, value key.Value, flags Flags) Event {
	return Event{Kind: Character, Ch: Char{Raw: raw, Value: value, Flags: flags}}
}

// NewString returns a String event carrying s.
func NewString(s string) Event {
	return Event{Kind: String, Str: []rune(s)}
}

// NewResize returns a Resize event.
func NewResize(width, height int) Event {
	return Event{Kind: Resize, Width: width, Height: height}
}

// NewErr returns an Err event.
func NewErr(err error) Event {
	return Event{Kind: Err, Err: err}
}

// Of returns a payload-free event of kind k.
func Of(k Kind) Event {
	return Event{Kind: k}
}

// IsChar reports whether e is a Character event for raw.
func (e Event) IsChar(raw rune) bool {
	return e.Kind == Character && e.Ch.Raw == raw
}

// IsNotDigit reports whether e is the end-of-count sentinel.
func (e Event) IsNotDigit() bool {
	return e.IsChar(key.NotDigit)
}

// Unexpected returns the message shown when a caller receives an event it
// cannot handle.
func (e Event) Unexpected() string {
	return fmt.Sprintf("Unexpected %s event", e.Kind)
}

// String returns a debugging representation.
func (e Event) String() string {
	switch e.Kind {
	case Character:
		if e.IsNotDigit() {
			return "char(<not-digit>)"
		}
		return fmt.Sprintf("char(%q %s %s)", e.Ch.Raw, e.Ch.Value, e.Ch.Flags)
	case String:
		return fmt.Sprintf("string(%q)", string(e.Str))
	case Resize:
		return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height)
	case Err:
		return fmt.Sprintf("error(%v)", e.Err)
	default:
		return e.Kind.String()
	}
}
