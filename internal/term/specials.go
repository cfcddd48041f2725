package term

import (
	"os"

	"golang.org/x/term"

	"github.com/dshills/vicore/internal/input/key"
)

// DefaultSpecialChars are used when the terminal cannot be asked.
func DefaultSpecialChars() key.SpecialChars {
	return key.SpecialChars{
		EOF:       '\004',
		Erase:     '\177',
		Kill:      '\025',
		WordErase: '\027',
	}
}

// SpecialChars returns the terminal's editing characters for f. It returns
// ErrNotTerminal when f is not a terminal.
func SpecialChars(f *os.File) (key.SpecialChars, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return key.SpecialChars{}, ErrNotTerminal
	}
	return readSpecials(fd)
}

// disabled reports whether a control character slot is switched off.
func disabled(c uint8) bool {
	return c == 0 || c == 0xff
}

func specialRune(c uint8) rune {
	if disabled(c) {
		return 0
	}
	return rune(c)
}
