package app

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrNoDocument indicates an edit with no document open.
	ErrNoDocument = errors.New("no document open")

	// ErrClosed indicates the session was closed.
	ErrClosed = errors.New("session closed")
)

// FileError represents a failed operation on a document's file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}
