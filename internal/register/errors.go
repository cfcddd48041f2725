package register

import "errors"

// ErrEmpty indicates a register that does not exist or holds no text.
var ErrEmpty = errors.New("register is empty")
