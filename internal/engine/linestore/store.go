// Package linestore provides the logical line storage the editing engine
// reads and writes.
//
// Lines are addressed by 1-based line number and carry no line terminator.
// An empty store has no lines and Last reports 0.
package linestore

import "errors"

// ErrNoLine indicates a line number outside the store.
var ErrNoLine = errors.New("no such line")

// Store is the line storage contract. Every error it returns is treated as
// fatal by the engine.
type Store interface {
	// Get returns the contents of line lno. The returned slice must not be
	// modified and is only valid until the next call that changes the store.
	Get(lno int) ([]byte, error)

	// Set replaces the contents of line lno.
	Set(lno int, data []byte) error

	// Delete removes line lno; later lines move up by one.
	Delete(lno int) error

	// Append inserts data as a new line after line after. Zero inserts
	// before the first line.
	Append(after int, data []byte) error

	// Last returns the number of the last line, or 0 if there are none.
	Last() (int, error)
}
