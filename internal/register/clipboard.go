package register

import (
	"strings"

	"github.com/atotto/clipboard"
)

// Clipboard is a system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard.
type SystemClipboard struct{}

// ReadAll implements Clipboard.
func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SystemAvailable reports whether the platform has a usable clipboard.
func SystemAvailable() bool {
	return !clipboard.Unsupported
}

// IsClipboard reports whether name refers to the clipboard.
func IsClipboard(name rune) bool {
	return name == '+' || name == '*'
}

// fromClipboard builds a register from clipboard text. Text ending in a
// newline is treated as whole lines.
func fromClipboard(name rune, s string) *Register {
	r := &Register{Name: name}
	if s == "" {
		return r
	}
	if strings.HasSuffix(s, "\n") {
		r.LineMode = true
		s = strings.TrimSuffix(s, "\n")
	}
	for _, line := range strings.Split(s, "\n") {
		r.Append(NewText([]byte(line), 0, 0))
	}
	return r
}
