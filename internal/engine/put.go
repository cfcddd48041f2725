package engine

import (
	"github.com/dshills/vicore/internal/fault"
	"github.com/dshills/vicore/internal/register"
)

// Put inserts the text of r at at, after the position when after is set
// and before it otherwise. It returns the cursor position following the
// put: the first non-blank of the first new line for line-mode text, or
// the first inserted character.
func (m *Mutator) Put(r *register.Register, at Position, after bool) (Position, error) {
	if r.Empty() {
		return at, fault.UserWrap(register.ErrEmpty, "The default buffer is empty")
	}
	last, err := m.store.Last()
	if err != nil {
		return at, fault.Fatal("linestore.last", err)
	}

	// An empty file takes the text as lines whatever the mode.
	if at.Line == 1 && last == 0 {
		for i, t := range r.Texts {
			if err := m.appendLine(i, t.Data); err != nil {
				return at, err
			}
		}
		return Pos(1, 0), nil
	}

	if !r.LineMode && badColumn(at.Column) {
		return at, fault.UserWrap(ErrInvalidRange, "Invalid column %d", at.Column)
	}
	if r.LineMode {
		lno := at.Line - 1
		if after {
			lno = at.Line
		}
		start := lno + 1
		for _, t := range r.Texts {
			if err := m.appendLine(lno, t.Data); err != nil {
				return at, err
			}
			lno++
		}
		return m.firstNonBlank(start)
	}
	return m.putChars(r, at, after)
}

// putChars splits the line at the position, joining the left part with
// the first text and the right part with the last text. Texts in between
// become lines of their own.
func (m *Mutator) putChars(r *register.Register, at Position, after bool) (Position, error) {
	p, err := m.get(at.Line)
	if err != nil {
		return at, err
	}
	// EOL names the last character.
	col := at.Column
	if col == EOL {
		col = max(len(p)-1, 0)
	}
	split := 0
	if len(p) > 0 {
		split = min(col, len(p))
		if after {
			split = min(split+1, len(p))
		}
	}
	left, right := p[:split], p[split:]
	first := r.Texts[0].Data

	cursor := Pos(at.Line, 0)
	if len(p) > 0 {
		cursor.Column = col
		if after && len(first) > 0 {
			cursor.Column++
		}
	}

	if len(r.Texts) == 1 {
		if err := m.checkLength(at.Line, len(left), len(first), len(right)); err != nil {
			return at, err
		}
		line := make([]byte, 0, len(left)+len(first)+len(right))
		line = append(append(append(line, left...), first...), right...)
		return cursor, m.set(at.Line, line)
	}

	lastText := r.Texts[len(r.Texts)-1].Data
	if err := m.checkLength(at.Line, len(left), len(first)); err != nil {
		return at, err
	}
	if err := m.checkLength(at.Line, len(lastText), len(right)); err != nil {
		return at, err
	}
	head := append(clone(left), first...)
	tail := append(clone(lastText), right...)

	if err := m.set(at.Line, head); err != nil {
		return at, err
	}
	lno := at.Line
	for _, t := range r.Texts[1 : len(r.Texts)-1] {
		if err := m.appendLine(lno, t.Data); err != nil {
			return at, err
		}
		lno++
	}
	if err := m.appendLine(lno, tail); err != nil {
		return at, err
	}
	return cursor, nil
}

func (m *Mutator) checkLength(lno int, parts ...int) error {
	total := 0
	for _, n := range parts {
		if n > m.maxLine-total {
			return fault.FatalLine("engine.put", lno, ErrLineOverflow)
		}
		total += n
	}
	return nil
}

func (m *Mutator) appendLine(after int, p []byte) error {
	if err := m.store.Append(after, p); err != nil {
		return fault.FatalLine("linestore.append", after+1, err)
	}
	m.report.Added++
	return nil
}

// firstNonBlank returns the position of the first non-blank character of
// line lno, or its last column when the line is all blanks.
func (m *Mutator) firstNonBlank(lno int) (Position, error) {
	p, err := m.get(lno)
	if err != nil {
		return Pos(lno, 0), err
	}
	for i, c := range p {
		if c != ' ' && c != '\t' {
			return Pos(lno, i), nil
		}
	}
	return Pos(lno, max(len(p)-1, 0)), nil
}
