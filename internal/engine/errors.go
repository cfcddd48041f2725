package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrLineOverflow indicates a joined line would exceed the maximum line
	// length. It is always wrapped as a fatal error.
	ErrLineOverflow = errors.New("Line length overflow")

	// ErrInvalidRange indicates a range that does not fit the buffer, e.g. a
	// start after the end or a line before the first.
	ErrInvalidRange = errors.New("invalid range")
)
