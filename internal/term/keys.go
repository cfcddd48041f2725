package term

import (
	"github.com/gdamore/tcell/v2"
)

// InterruptChar is the character that requests an interrupt.
const InterruptChar rune = '\003'

// escapes are the strings terminals send for keys that have no character.
var escapes = map[tcell.Key]string{
	tcell.KeyUp:     "\x1b[A",
	tcell.KeyDown:   "\x1b[B",
	tcell.KeyRight:  "\x1b[C",
	tcell.KeyLeft:   "\x1b[D",
	tcell.KeyHome:   "\x1b[H",
	tcell.KeyEnd:    "\x1b[F",
	tcell.KeyInsert: "\x1b[2~",
	tcell.KeyDelete: "\x1b[3~",
	tcell.KeyPgUp:   "\x1b[5~",
	tcell.KeyPgDn:   "\x1b[6~",
	tcell.KeyF1:     "\x1bOP",
	tcell.KeyF2:     "\x1bOQ",
	tcell.KeyF3:     "\x1bOR",
	tcell.KeyF4:     "\x1bOS",
	tcell.KeyF5:     "\x1b[15~",
	tcell.KeyF6:     "\x1b[17~",
	tcell.KeyF7:     "\x1b[18~",
	tcell.KeyF8:     "\x1b[19~",
	tcell.KeyF9:     "\x1b[20~",
	tcell.KeyF10:    "\x1b[21~",
	tcell.KeyF11:    "\x1b[23~",
	tcell.KeyF12:    "\x1b[24~",
}

// Binding maps a key's escape string to a vi command.
type Binding struct {
	Name   string
	Input  string
	Output string
}

// DefaultBindings are the command maps that make cursor keys move.
func DefaultBindings() []Binding {
	return []Binding{
		{"up", escapes[tcell.KeyUp], "k"},
		{"down", escapes[tcell.KeyDown], "j"},
		{"right", escapes[tcell.KeyRight], "l"},
		{"left", escapes[tcell.KeyLeft], "h"},
		{"home", escapes[tcell.KeyHome], "^"},
		{"end", escapes[tcell.KeyEnd], "$"},
		{"insert", escapes[tcell.KeyInsert], "i"},
		{"delete", escapes[tcell.KeyDelete], "x"},
		{"page up", escapes[tcell.KeyPgUp], "\x02"},
		{"page down", escapes[tcell.KeyPgDn], "\x06"},
	}
}

// keyRunes converts a key event to the characters a terminal would send.
// It returns nil for keys with no representation.
func keyRunes(ev *tcell.EventKey) []rune {
	k := ev.Key()
	if s, ok := escapes[k]; ok {
		return []rune(s)
	}

	var ch rune
	switch {
	case isControlKey(k):
		ch = rune(k)
	case ev.Modifiers()&tcell.ModCtrl != 0:
		// Depending on the terminal, ^C arrives as KeyCtrlC, as the key
		// 'C' or as KeyRune 'c', always with ModCtrl.
		ch = ev.Rune()
		if k != tcell.KeyRune {
			if k >= 128 {
				return nil
			}
			if ch == 0 || k < ' ' {
				ch = rune(k)
			}
		}
		if ch >= ' ' {
			ch = control(ch)
		}
	case k == tcell.KeyRune:
		ch = ev.Rune()
	case k < 128:
		// Control keys carry their ASCII code.
		ch = rune(k)
	default:
		return nil
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		return []rune{'\x1b', ch}
	}
	return []rune{ch}
}

// isControlKey reports whether k is a key that is itself a control
// character and keeps its code whatever the modifiers.
func isControlKey(k tcell.Key) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyTab, tcell.KeyBackspace, tcell.KeyBackspace2:
		return true
	}
	return false
}

// control returns the control character for ch, as typed with <control>
// held down, or ch itself when there is none.
func control(ch rune) rune {
	switch {
	case ch >= 'a' && ch <= 'z':
		return ch - 'a' + 1
	case ch >= '@' && ch <= '_':
		return ch - '@'
	case ch == '?':
		return 0x7f
	}
	return ch
}
