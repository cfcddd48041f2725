package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Notation errors.
var (
	ErrUnmatchedBracket = errors.New("unmatched < in key notation")
	ErrUnknownKey       = errors.New("unknown key in notation")
)

// notationNames maps the bracketed key names to characters. Lookups are
// case-insensitive.
var notationNames = map[string]rune{
	"nul":    0,
	"bs":     '\b',
	"tab":    '\t',
	"nl":     '\n',
	"cr":     '\r',
	"ret":    '\r',
	"return": '\r',
	"enter":  '\r',
	"esc":    '\x1b',
	"space":  ' ',
	"lt":     '<',
	"gt":     '>',
	"bar":    '|',
	"bslash": '\\',
	"del":    '\x7f',
}

// formatNames is the preferred spelling of each named character.
var formatNames = map[rune]string{
	0:      "<Nul>",
	'\b':   "<BS>",
	'\t':   "<Tab>",
	'\n':   "<NL>",
	'\r':   "<CR>",
	'\x1b': "<Esc>",
	'<':    "<lt>",
	'\x7f': "<Del>",
}

// ParseNotation decodes key notation into the characters it names.
// Bracketed names such as <Esc>, <CR> and <lt> stand for one character, and
// <C-x> is the control character for x. Everything else is literal. A <
// that does not start a complete bracketed name is an error; write <lt>.
func ParseNotation(s string) ([]rune, error) {
	out := make([]rune, 0, len(s))
	for len(s) > 0 {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			out = append(out, []rune(s)...)
			break
		}
		out = append(out, []rune(s[:i])...)
		s = s[i:]
		j := strings.IndexByte(s, '>')
		if j < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnmatchedBracket, s)
		}
		ch, err := parseName(s[1:j])
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
		s = s[j+1:]
	}
	return out, nil
}

func parseName(name string) (rune, error) {
	lower := strings.ToLower(name)
	if ch, ok := notationNames[lower]; ok {
		return ch, nil
	}
	if rest, ok := strings.CutPrefix(lower, "c-"); ok {
		r := []rune(rest)
		if len(r) == 1 {
			if ch, ok := controlOf(r[0]); ok {
				return ch, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: <%s>", ErrUnknownKey, name)
}

// controlOf returns the control character typed as ^ch.
func controlOf(ch rune) (rune, bool) {
	ch = unicode.ToUpper(ch)
	switch {
	case ch == '?':
		return '\x7f', true
	case ch >= '@' && ch <= '_':
		return ch - '@', true
	}
	return 0, false
}

// FormatNotation encodes characters in the notation ParseNotation reads.
// Printable characters other than < are written as themselves.
func FormatNotation(chars []rune) string {
	var b strings.Builder
	for _, ch := range chars {
		if name, ok := formatNames[ch]; ok {
			b.WriteString(name)
			continue
		}
		if ch < ' ' {
			b.WriteString("<C-")
			b.WriteRune(ch + '@')
			b.WriteByte('>')
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
