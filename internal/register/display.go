package register

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Namer renders a character for display.
type Namer interface {
	Name(ch rune) string
}

// Display writes every non-empty register: named registers, then numbered
// registers, then the default register. Each starts with a header line and
// shows one line per text, with characters rendered by namer.
func (m *Manager) Display(w io.Writer, namer Namer) error {
	bw := bufio.NewWriter(w)
	if m.Empty() {
		bw.WriteString("No cut buffers to display\n")
		return bw.Flush()
	}
	for _, kind := range []Kind{Named, Numbered} {
		for r := range m.Dump(kind) {
			writeRegister(bw, r, namer.Name(r.Name), namer)
		}
	}
	for r := range m.Dump(Default) {
		writeRegister(bw, r, "default buffer", namer)
	}
	return bw.Flush()
}

func writeRegister(w *bufio.Writer, r *Register, title string, namer Namer) {
	w.WriteString("********** ")
	w.WriteString(title)
	if r.LineMode {
		w.WriteString(" (line mode)\n")
	} else {
		w.WriteString(" (character mode)\n")
	}
	for _, t := range r.Texts {
		for data := t.Data; len(data) > 0; {
			ch, size := utf8.DecodeRune(data)
			if ch == utf8.RuneError && size == 1 {
				ch = rune(data[0])
			}
			w.WriteString(namer.Name(ch))
			data = data[size:]
		}
		w.WriteByte('\n')
	}
}
