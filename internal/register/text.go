package register

import (
	"bytes"
	"slices"
)

// Termination records how interactive text input ended.
type Termination uint8

const (
	// TermOK means data is available.
	TermOK Termination = iota
	// TermBS means the user backspaced over the prompt.
	TermBS
	// TermCEdit means the user entered the command-line edit character.
	TermCEdit
	// TermCR means the user entered <carriage-return> with no data.
	TermCR
	// TermEsc means the user entered <escape> with no data.
	TermEsc
	// TermSearch means the input was an incremental search.
	TermSearch
)

var termNames = [...]string{
	TermOK:     "ok",
	TermBS:     "backspace",
	TermCEdit:  "cedit",
	TermCR:     "carriage-return",
	TermEsc:    "escape",
	TermSearch: "search",
}

// String returns the termination name.
func (t Termination) String() string {
	if int(t) < len(termNames) {
		return termNames[t]
	}
	return "unknown"
}

// Compose is the state of a line while it is being typed. It is only set
// on text that came from the input routine.
type Compose struct {
	AutoIndent  int // autoindent bytes
	Insert      int // bytes to insert (push)
	Offset      int // initial, unerasable characters
	Overwrite   int // characters to overwrite
	Erase       int // 'R' erase count
	SavedColumn int
	SavedLen    int
}

// Text is one line's worth of text.
type Text struct {
	Data []byte

	// Line is the 1-based file line the text came from.
	Line int

	// Column is the cursor column when the text was captured.
	Column int

	Term    Termination
	Compose *Compose
}

// NewText returns a Text holding a copy of data.
func NewText(data []byte, line, column int) Text {
	d := slices.Clone(data)
	if d == nil {
		d = []byte{}
	}
	return Text{Data: d, Line: line, Column: column}
}

// Len returns the length of the text in bytes.
func (t Text) Len() int { return len(t.Data) }

// Register is a named sequence of texts.
type Register struct {
	Name  rune
	Texts []Text

	// Len is the total length in bytes of every text.
	Len int

	// LineMode is set when the register was filled by a line-wise cut.
	LineMode bool
}

// Empty reports whether the register holds no text.
func (r *Register) Empty() bool {
	return r == nil || len(r.Texts) == 0
}

// Append adds texts to the end of the register.
func (r *Register) Append(texts ...Text) {
	for _, t := range texts {
		r.Texts = append(r.Texts, t)
		r.Len += len(t.Data)
	}
}

// Reset discards every text.
func (r *Register) Reset() {
	r.Texts = nil
	r.Len = 0
	r.LineMode = false
}

// Clone returns a deep copy of the register under a new name.
func (r *Register) Clone(name rune) *Register {
	c := &Register{Name: name, Len: r.Len, LineMode: r.LineMode}
	c.Texts = make([]Text, len(r.Texts))
	for i, t := range r.Texts {
		c.Texts[i] = t
		c.Texts[i].Data = slices.Clone(t.Data)
	}
	return c
}

// Bytes returns the texts joined with newlines. Line-mode registers end with
// a newline.
func (r *Register) Bytes() []byte {
	parts := make([][]byte, len(r.Texts))
	for i, t := range r.Texts {
		parts[i] = t.Data
	}
	b := bytes.Join(parts, []byte{'\n'})
	if r.LineMode && len(r.Texts) > 0 {
		b = append(b, '\n')
	}
	return b
}
