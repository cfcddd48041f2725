package engine

import (
	"github.com/dshills/vicore/internal/fault"
	"github.com/dshills/vicore/internal/register"
)

// CutFlags modify how Cut chooses its registers.
type CutFlags uint8

const (
	// CutLineMode copies whole lines.
	CutLineMode CutFlags = 1 << iota
	// CutNumOpt copies into register 1 when the cut is line-wise or spans
	// lines.
	CutNumOpt
	// CutNumReq always copies into register 1.
	CutNumReq
)

// Has reports whether every flag in o is set.
func (f CutFlags) Has(o CutFlags) bool { return f&o == o }

// Cut copies the text from from through to into registers. A name of
// register.Unnamed means no register was given. An uppercase name appends
// to its register; any other name replaces it. When numbering applies the
// numbered registers rotate and register 1 gets a copy as well. The last
// register written becomes the default.
func (m *Mutator) Cut(regs *register.Manager, name rune, from, to Position, flags CutFlags) error {
	lineMode := flags.Has(CutLineMode)
	texts, err := m.copyRange(from, to, lineMode)
	if err != nil {
		return err
	}
	numbered := flags.Has(CutNumReq) ||
		(flags.Has(CutNumOpt) && (lineMode || from.Line != to.Line))

	if name == register.Unnamed {
		if numbered {
			regs.Rotate()
			return m.fill(regs, '1', texts, lineMode, false)
		}
		return m.fill(regs, register.Unnamed, texts, lineMode, false)
	}

	if numbered {
		regs.Rotate()
	}
	appending := register.IsAppend(name)
	if err := m.fill(regs, name, texts, lineMode, appending); err != nil {
		return err
	}
	switch {
	case numbered:
		return m.fill(regs, '1', cloneTexts(texts), lineMode, false)
	case appending:
		return m.fill(regs, register.Unnamed, cloneTexts(texts), lineMode, false)
	}
	return nil
}

// Yank copies a range into a register without numbering and counts the
// yanked lines.
func (m *Mutator) Yank(regs *register.Manager, name rune, from, to Position, lineMode bool) error {
	var flags CutFlags
	if lineMode {
		flags = CutLineMode
	}
	if err := m.Cut(regs, name, from, to, flags); err != nil {
		return err
	}
	if lineMode {
		m.report.Yanked += to.Line - from.Line + 1
	}
	return nil
}

// DeleteInto cuts a range into registers the way a delete command does and
// then deletes it.
func (m *Mutator) DeleteInto(regs *register.Manager, name rune, from, to Position, lineMode bool) error {
	flags := CutNumOpt
	if lineMode {
		flags |= CutLineMode
	}
	if err := m.Cut(regs, name, from, to, flags); err != nil {
		return err
	}
	return m.Delete(from, to, lineMode)
}

func (m *Mutator) fill(regs *register.Manager, name rune, texts []register.Text, lineMode, appending bool) error {
	if !appending {
		regs.Clear(name)
	}
	_, err := regs.Cut(name, texts, lineMode)
	return err
}

// copyRange returns one text per line of the range.
func (m *Mutator) copyRange(from, to Position, lineMode bool) ([]register.Text, error) {
	bad := from.Line < 1 || from.Line > to.Line
	if !lineMode {
		bad = bad || badColumn(from.Column) || badColumn(to.Column)
	}
	if bad {
		return nil, fault.UserWrap(ErrInvalidRange, "Invalid range %d,%d to %d,%d",
			from.Line, from.Column, to.Line, to.Column)
	}
	texts := make([]register.Text, 0, to.Line-from.Line+1)
	for lno := from.Line; lno <= to.Line; lno++ {
		p, err := m.get(lno)
		if err != nil {
			return nil, err
		}
		start, end := 0, len(p)
		if !lineMode {
			if lno == from.Line {
				start = len(p)
				if from.Column != EOL {
					start = min(from.Column, len(p))
				}
			}
			if lno == to.Line && to.Column != EOL {
				end = min(to.Column+1, len(p))
			}
		}
		if end < start {
			end = start
		}
		texts = append(texts, register.NewText(p[start:end], lno, start))
	}
	return texts, nil
}

func cloneTexts(texts []register.Text) []register.Text {
	out := make([]register.Text, len(texts))
	for i, t := range texts {
		out[i] = register.NewText(t.Data, t.Line, t.Column)
	}
	return out
}
