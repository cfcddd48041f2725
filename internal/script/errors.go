package script

import "errors"

// ErrClosed is returned when running a script on a closed State.
var ErrClosed = errors.New("lua state is closed")
