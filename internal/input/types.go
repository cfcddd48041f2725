package input

import (
	"context"
	"time"

	"github.com/dshills/vicore/internal/input/event"
)

// Flags modify a resolution request.
type Flags uint16

const (
	// Interrupt only checks for a pending interrupt. Characters read while
	// checking are queued for later.
	Interrupt Flags = 1 << iota
	// MapCommand applies command-mode maps.
	MapCommand
	// MapInput applies input-mode maps.
	MapInput
	// MapNoDigit stops at the end of a count: a non-digit character is
	// reported as the key.NotDigit sentinel and left queued.
	MapNoDigit
	// Quoted asks the source for the next character literally.
	Quoted
	// Raw asks the source for unprocessed input.
	Raw
	// Timeout only checks whether input arrives within the timeout.
	Timeout
)

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Any reports whether any bit of f2 is set.
func (f Flags) Any(f2 Flags) bool { return f&f2 != 0 }

// sourceFlags are the request bits passed through to the Source.
const sourceFlags = Interrupt | Quoted | Raw

// Source delivers raw events from the terminal.
type Source interface {
	// NextEvent blocks until an event arrives. A positive timeout bounds
	// the wait and yields an event.Timeout event when it elapses; zero waits
	// indefinitely. With the Interrupt flag it must not block: it returns
	// an event.Interrupt event if one is pending, otherwise any available
	// event, otherwise event.Timeout.
	NextEvent(ctx context.Context, flags Flags, timeout time.Duration) (event.Event, error)

	// PollInterrupt reports, without blocking, whether the user has
	// requested an interrupt.
	PollInterrupt() bool
}

// Flusher synchronously saves every open document. It is called before a
// fatal input condition is propagated. reason is the fatal event kind.
type Flusher interface {
	FlushAll(reason event.Kind) error
}

// Settings are the options that govern mapping.
type Settings struct {
	// Remap re-applies maps to the output of a map.
	Remap bool

	// Timeout bounds the wait for the rest of a partially typed map.
	// When false the resolver waits indefinitely.
	Timeout bool

	// EscapeTime is the wait used when the pending map starts with <escape>.
	EscapeTime time.Duration

	// KeyTime is the wait used for every other pending map.
	KeyTime time.Duration
}

// DefaultSettings returns the historical defaults.
func DefaultSettings() Settings {
	return Settings{
		Remap:      true,
		Timeout:    true,
		EscapeTime: 600 * time.Millisecond,
		KeyTime:    1000 * time.Millisecond,
	}
}
