package key

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// CharClass classifies characters for display and word motions.
// It is the single point where locale-specific behaviour plugs in.
type CharClass interface {
	// IsPrint reports whether ch displays as itself.
	IsPrint(ch rune) bool

	// IsDigit reports whether ch is a decimal digit.
	IsDigit(ch rune) bool

	// IsWord reports whether ch belongs to a word.
	IsWord(ch rune) bool

	// Width returns the number of screen columns ch occupies when printable.
	Width(ch rune) int
}

// UnicodeClass classifies by Unicode categories and East Asian width.
type UnicodeClass struct{}

// IsPrint implements CharClass.
func (UnicodeClass) IsPrint(ch rune) bool {
	return ch >= 0 && unicode.IsPrint(ch)
}

// IsDigit implements CharClass. Only ASCII digits start a count.
func (UnicodeClass) IsDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// IsWord implements CharClass.
func (UnicodeClass) IsWord(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// Width implements CharClass.
func (UnicodeClass) Width(ch rune) int {
	return runewidth.RuneWidth(ch)
}

// ASCIIClass reproduces the C locale: only 0x20-0x7e are printable.
type ASCIIClass struct{}

// IsPrint implements CharClass.
func (ASCIIClass) IsPrint(ch rune) bool {
	return ch >= 0x20 && ch < 0x7f
}

// IsDigit implements CharClass.
func (ASCIIClass) IsDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// IsWord implements CharClass.
func (ASCIIClass) IsWord(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

// Width implements CharClass.
func (ASCIIClass) Width(ch rune) int {
	if ch >= 0x20 && ch < 0x7f {
		return 1
	}
	return 0
}
