package input

import "errors"

// Errors returned by the resolver. Both are wrapped as fatal.
var (
	// ErrTerminated indicates the terminal hung up or the editor was told
	// to terminate.
	ErrTerminated = errors.New("input terminated")

	// ErrInput indicates the input source failed.
	ErrInput = errors.New("input error")
)
