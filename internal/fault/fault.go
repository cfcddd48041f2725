// Package fault defines the error taxonomy shared by the editing core.
//
// Errors fall into two classes. Fatal errors (storage failures, numeric
// overflow, terminal hangup or termination) abort the current operation and
// must reach the session owner so open files can be flushed. User errors
// (bad ranges, empty registers, malformed definitions) are reported to the
// user and the triggering command fails while the session continues.
//
// Interrupts are not errors. Bulk operations that notice an interrupt stop
// early and report success.
package fault

import (
	"errors"
	"fmt"
)

// ErrFatal matches every fatal error via errors.Is.
var ErrFatal = errors.New("fatal error")

// Error is a fatal error raised by an operation.
type Error struct {
	// Op names the failing operation, e.g. "linestore.set".
	Op string

	// Line is the 1-based line involved, or 0 if none.
	Line int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %v", e.Op, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFatal.
func (e *Error) Is(target error) bool {
	return target == ErrFatal
}

// Fatal wraps err as a fatal error for op.
// A nil err yields nil and an error that is already fatal is returned as is.
func Fatal(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrFatal) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// FatalLine is Fatal with a line number attached.
func FatalLine(op string, line int, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrFatal) {
		return err
	}
	return &Error{Op: op, Line: line, Err: err}
}

// IsFatal reports whether err is fatal.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

// UserError is a recoverable error with a message meant for the user.
type UserError struct {
	Msg string
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Err
}

// User creates a recoverable error with a formatted message.
func User(format string, args ...any) error {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// UserWrap creates a recoverable error that wraps a sentinel.
func UserWrap(err error, format string, args ...any) error {
	return &UserError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// IsUser reports whether err is a recoverable user error.
func IsUser(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}
