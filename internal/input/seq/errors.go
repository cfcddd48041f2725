package seq

import "errors"

// Errors returned by sequence table operations.
var (
	// ErrNotMapped indicates the input sequence has no binding of that kind.
	ErrNotMapped = errors.New("sequence not mapped")

	// ErrEmptyInput indicates a binding with no input characters.
	ErrEmptyInput = errors.New("empty input sequence")

	// ErrBadAbbrev indicates an abbreviation that can never be triggered.
	ErrBadAbbrev = errors.New("invalid abbreviation")
)
