package macro

import "errors"

// Errors returned by macro operations.
var (
	// ErrNoPrevious indicates @@ with no register executed before.
	ErrNoPrevious = errors.New("no previous buffer to execute")

	// ErrRecording indicates a recording is already in progress.
	ErrRecording = errors.New("already recording")

	// ErrInvalidRegister indicates a name that cannot hold a recording.
	ErrInvalidRegister = errors.New("invalid register")
)
