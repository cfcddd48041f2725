package engine

import (
	"math"

	"github.com/dshills/vicore/internal/logging"
)

// InterruptCheck is how many lines a bulk operation handles between
// interrupt checks.
const InterruptCheck = 100

// DefaultMaxLine is the default maximum line length in bytes.
const DefaultMaxLine = math.MaxInt

// Interrupter reports whether the user asked to stop the current command.
type Interrupter interface {
	Interrupted() bool
}

// InterruptFunc adapts a function to Interrupter.
type InterruptFunc func() bool

// Interrupted implements Interrupter.
func (f InterruptFunc) Interrupted() bool { return f() }

type never struct{}

func (never) Interrupted() bool { return false }

// Option configures a Mutator during creation.
type Option func(*Mutator)

// WithInterrupter sets the interrupt source polled by bulk operations.
func WithInterrupter(i Interrupter) Option {
	return func(m *Mutator) {
		if i != nil {
			m.intr = i
		}
	}
}

// WithMaxLine sets the maximum length of a line built by joining text.
func WithMaxLine(n int) Option {
	return func(m *Mutator) {
		if n > 0 {
			m.maxLine = n
		}
	}
}

// WithReport sets the report that collects line counts.
func WithReport(r *Report) Option {
	return func(m *Mutator) {
		if r != nil {
			m.report = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Mutator) {
		if l != nil {
			m.logger = l.WithComponent("engine")
		}
	}
}
