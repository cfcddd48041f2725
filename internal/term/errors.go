package term

import "errors"

// Errors returned by the terminal source.
var (
	// ErrNotTerminal indicates the file is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrClosed indicates the source was closed.
	ErrClosed = errors.New("terminal source closed")
)
