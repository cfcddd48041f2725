package key

import (
	"fmt"
	"strings"
)

// DisplayOptions control how non-printable characters are rendered.
type DisplayOptions struct {
	// AltNotation renders control characters as <C-x>, <Esc>, <Ret>, <NL>, <Del>.
	AltNotation bool

	// Octal renders other non-printables as \ddd instead of \xHH.
	Octal bool

	// Print lists characters always displayed as themselves.
	Print string

	// NoPrint lists characters never displayed as themselves.
	NoPrint string
}

// altNames holds the alternate notation for control characters.
// Empty slots (tab) keep the caret form.
var altNames = [0x20]string{
	0x00: "<C-@>",
	0x01: "<C-a>",
	0x02: "<C-b>",
	0x03: "<C-c>",
	0x04: "<C-d>",
	0x05: "<C-e>",
	0x06: "<C-f>",
	0x07: "<C-g>",
	0x08: "<C-h>",
	0x0A: "<NL>",
	0x0B: "<C-k>",
	0x0C: "<C-l>",
	0x0D: "<Ret>",
	0x0E: "<C-n>",
	0x0F: "<C-o>",
	0x10: "<C-p>",
	0x11: "<C-q>",
	0x12: "<C-r>",
	0x13: "<C-s>",
	0x14: "<C-t>",
	0x15: "<C-u>",
	0x16: "<C-v>",
	0x17: "<C-w>",
	0x18: "<C-x>",
	0x19: "<C-y>",
	0x1A: "<C-z>",
	0x1B: "<Esc>",
	0x1C: `<C-\>`,
	0x1D: "<C-]>",
	0x1E: "<C-^>",
	0x1F: "<C-_>",
}

const altDelete = "<Del>"

// DisplayName returns the human-readable form of ch.
//
// Explicit Print and NoPrint lists win. Printable characters are shown as
// themselves. Control characters (below 0x20 and 0x7f) use caret notation,
// or the alternate table when AltNotation is set. Anything else is escaped
// in octal or hexadecimal, one byte per 8 bits of the character's width.
func DisplayName(ch rune, opts DisplayOptions, class CharClass) string {
	if class == nil {
		class = UnicodeClass{}
	}

	forced := false
	if strings.ContainsRune(opts.Print, ch) {
		return string(ch)
	}
	if strings.ContainsRune(opts.NoPrint, ch) {
		forced = true
	}
	if !forced && class.IsPrint(ch) {
		return string(ch)
	}

	if (ch >= 0 && ch < 0x20) || ch == 0x7f {
		if opts.AltNotation {
			if ch == 0x7f {
				return altDelete
			}
			if name := altNames[ch]; name != "" {
				return name
			}
		}
		if ch == 0x7f {
			return "^?"
		}
		return string([]rune{'^', '@' + ch})
	}

	width := byteWidth(ch)
	if opts.Octal {
		digits := (width*8 + 2) / 3
		return fmt.Sprintf("\\%0*o", digits, uint32(ch))
	}
	return fmt.Sprintf("\\x%0*x", width*2, uint32(ch))
}

// byteWidth is the number of bytes a character occupies in the widest
// fixed-size encoding that holds it.
func byteWidth(ch rune) int {
	switch {
	case ch >= 0 && ch <= 0xff:
		return 1
	case ch >= 0 && ch <= 0xffff:
		return 2
	default:
		return 4
	}
}

// SetDisplay changes the display options and rebuilds the name cache.
func (t *Table) SetDisplay(opts DisplayOptions) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.display = opts
	t.rebuildNames()
}

// Display returns the current display options.
func (t *Table) Display() DisplayOptions {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.display
}

func (t *Table) rebuildNames() {
	for ch := rune(0); ch <= MaxFastKey; ch++ {
		t.names[ch] = DisplayName(ch, t.display, t.class)
	}
}

// Name returns the display form of ch.
func (t *Table) Name(ch rune) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if ch >= 0 && ch <= MaxFastKey {
		return t.names[ch]
	}
	return DisplayName(ch, t.display, t.class)
}

// Len returns the length in characters of the display form of ch.
func (t *Table) Len(ch rune) int {
	return len([]rune(t.Name(ch)))
}

// Width returns the number of screen columns the display form of ch uses.
func (t *Table) Width(ch rune) int {
	name := t.Name(ch)
	if name == string(ch) {
		if w := t.Class().Width(ch); w > 0 {
			return w
		}
	}
	return len([]rune(name))
}

// String renders every character of s through Name.
func (t *Table) String(s []rune) string {
	var sb strings.Builder
	for _, ch := range s {
		sb.WriteString(t.Name(ch))
	}
	return sb.String()
}
