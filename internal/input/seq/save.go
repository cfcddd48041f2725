package seq

import (
	"bufio"
	"io"
	"strings"

	"github.com/dshills/vicore/internal/input/key"
)

// literalNext is the character that quotes the next one in ex commands.
const literalNext = '\026'

// dumpTab is the column interval used to align dumped outputs.
const dumpTab = 6

// Namer renders a character for display.
type Namer interface {
	Name(ch rune) string
}

// Classifier assigns special-character values to raw characters.
type Classifier interface {
	Classify(ch rune) key.Value
}

var savePrefix = [numKinds]string{
	Abbrev:  "abbreviate ",
	Command: "map ",
	Input:   "map! ",
}

// Save writes every user-defined binding as an ex command that recreates it:
// abbreviations first, then command maps, then input maps. Characters that
// the ex parser would split or swallow are quoted with ^V, including
// whatever class reports as the newline character.
func (t *Table) Save(w io.Writer, class Classifier) error {
	bw := bufio.NewWriter(w)
	for _, kind := range []Kind{Abbrev, Command, Input} {
		for _, b := range t.All(kind) {
			if !b.UserDefined {
				continue
			}
			bw.WriteString(savePrefix[kind])
			writeQuoted(bw, b.Input, class)
			bw.WriteByte(' ')
			writeQuoted(bw, b.Output, class)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func writeQuoted(w *bufio.Writer, s []rune, class Classifier) {
	for _, ch := range s {
		if needsQuote(ch, class) {
			w.WriteRune(literalNext)
		}
		w.WriteRune(ch)
	}
}

func needsQuote(ch rune, class Classifier) bool {
	switch ch {
	case literalNext, '|', ' ', '\t':
		return true
	}
	if class == nil {
		return ch == '\n'
	}
	return class.Classify(ch) == key.NL
}

// Dump writes the bindings of kind in display form, one per line, with the
// output aligned to the next multiple of six columns after the input. It
// returns the number of bindings written.
func (t *Table) Dump(w io.Writer, kind Kind, namer Namer) (int, error) {
	var sb strings.Builder
	n := 0
	for _, b := range t.All(kind) {
		n++
		width := 0
		for _, ch := range b.Input {
			name := namer.Name(ch)
			sb.WriteString(name)
			width += len([]rune(name))
		}
		for pad := dumpTab - width%dumpTab; pad > 0; pad-- {
			sb.WriteByte(' ')
		}
		for _, ch := range b.Output {
			sb.WriteString(namer.Name(ch))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return n, err
}
