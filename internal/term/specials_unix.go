//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package term

import (
	"golang.org/x/sys/unix"

	"github.com/dshills/vicore/internal/input/key"
)

func readSpecials(fd int) (key.SpecialChars, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return key.SpecialChars{}, err
	}
	return key.SpecialChars{
		EOF:       specialRune(t.Cc[unix.VEOF]),
		Erase:     specialRune(t.Cc[unix.VERASE]),
		Kill:      specialRune(t.Cc[unix.VKILL]),
		WordErase: specialRune(t.Cc[unix.VWERASE]),
	}, nil
}
