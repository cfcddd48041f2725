package engine

import (
	"github.com/dshills/vicore/internal/engine/linestore"
	"github.com/dshills/vicore/internal/fault"
	"github.com/dshills/vicore/internal/logging"
)

// Mutator applies text operations to a line store.
// It is not safe for concurrent use.
type Mutator struct {
	store   linestore.Store
	report  *Report
	intr    Interrupter
	maxLine int
	logger  *logging.Logger
}

// NewMutator returns a mutator editing store.
func NewMutator(store linestore.Store, opts ...Option) *Mutator {
	m := &Mutator{
		store:   store,
		report:  &Report{},
		intr:    never{},
		maxLine: DefaultMaxLine,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the line store being edited.
func (m *Mutator) Store() linestore.Store { return m.store }

// Report returns the report collecting line counts.
func (m *Mutator) Report() *Report { return m.report }

// Delete removes the text from from through to, inclusive. In line mode the
// columns are ignored and whole lines are removed. A to column of EOL means
// the end of its line.
func (m *Mutator) Delete(from, to Position, lineMode bool) error {
	last, err := m.store.Last()
	if err != nil {
		return fault.Fatal("linestore.last", err)
	}
	bad := from.Compare(to) > 0
	if lineMode {
		bad = from.Line > to.Line
	} else {
		bad = bad || badColumn(from.Column) || badColumn(to.Column)
	}
	if bad || from.Line < 1 || from.Line > last {
		return fault.UserWrap(ErrInvalidRange, "Invalid range %d,%d to %d,%d",
			from.Line, from.Column, to.Line, to.Column)
	}
	m.logger.Debug("delete %d.%d-%d.%d line=%v", from.Line, from.Column, to.Line, to.Column, lineMode)

	if lineMode {
		return m.deleteLines(min(to.Line, last), from.Line-1)
	}
	if eof, err := m.pastEnd(to, last); err != nil {
		return err
	} else if eof {
		return m.truncate(from, min(to.Line, last))
	}
	if from.Line == to.Line {
		p, err := m.get(from.Line)
		if err != nil {
			return err
		}
		if len(p) != 0 {
			return m.splice(from, to, p)
		}
	}
	return m.join(from, to)
}

// pastEnd reports whether to lies beyond the last character of the file.
func (m *Mutator) pastEnd(to Position, last int) (bool, error) {
	if to.Line > last {
		return true, nil
	}
	if to.Line < last || to.Column == EOL {
		return false, nil
	}
	p, err := m.get(to.Line)
	if err != nil {
		return false, err
	}
	return to.Column >= len(p), nil
}

// truncate deletes from the start position through the end of the file,
// whose last line is last.
func (m *Mutator) truncate(from Position, last int) error {
	if err := m.deleteLines(last, from.Line); err != nil {
		return err
	}
	p, err := m.get(from.Line)
	if err != nil {
		return err
	}
	col := from.Column
	if col == EOL || col > len(p) {
		col = len(p)
	}
	return m.set(from.Line, clone(p[:col]))
}

// splice removes columns within one non-empty line.
func (m *Mutator) splice(from, to Position, p []byte) error {
	if from.Column == EOL || from.Column > len(p) {
		return fault.UserWrap(ErrInvalidRange, "Column %d is past the end of line %d", from.Column, from.Line)
	}
	end := lastColumn(to.Column, len(p))
	if from.Column > end {
		return nil
	}
	buf := make([]byte, 0, len(p)-(end+1-from.Column))
	buf = append(buf, p[:from.Column]...)
	buf = append(buf, p[end+1:]...)
	return m.set(from.Line, buf)
}

// join replaces the start line with its text before the start column
// followed by the end line's text after the end column, then removes the
// lines after the start line through the end line.
func (m *Mutator) join(from, to Position) error {
	var buf []byte
	if from.Column > 0 || from.Column == EOL {
		p, err := m.get(from.Line)
		if err != nil {
			return err
		}
		col := from.Column
		if col == EOL {
			col = len(p)
		}
		if col > len(p) {
			return fault.UserWrap(ErrInvalidRange, "Column %d is past the end of line %d", from.Column, from.Line)
		}
		buf = clone(p[:col])
	}

	p, err := m.get(to.Line)
	if err != nil {
		return err
	}
	if len(p) != 0 {
		if end := lastColumn(to.Column, len(p)); end != len(p)-1 {
			if len(p)-(end+1) > m.maxLine-len(buf) {
				return fault.FatalLine("engine.delete", from.Line, ErrLineOverflow)
			}
			buf = append(buf, p[end+1:]...)
		}
	}
	if buf == nil {
		buf = []byte{}
	}
	if err := m.set(from.Line, buf); err != nil {
		return err
	}
	return m.deleteLines(to.Line, from.Line)
}

// deleteLines removes lines hi down to lo+1, stopping early on interrupt.
func (m *Mutator) deleteLines(hi, lo int) error {
	for lno := hi; lno > lo; lno-- {
		if err := m.store.Delete(lno); err != nil {
			return fault.FatalLine("linestore.delete", lno, err)
		}
		m.report.Deleted++
		if lno%InterruptCheck == 0 && m.intr.Interrupted() {
			m.logger.Info("delete interrupted at line %d", lno)
			return nil
		}
	}
	return nil
}

func (m *Mutator) get(lno int) ([]byte, error) {
	p, err := m.store.Get(lno)
	if err != nil {
		return nil, fault.FatalLine("linestore.get", lno, err)
	}
	return p, nil
}

func (m *Mutator) set(lno int, p []byte) error {
	if err := m.store.Set(lno, p); err != nil {
		return fault.FatalLine("linestore.set", lno, err)
	}
	m.report.changed(lno)
	return nil
}

// badColumn reports a negative column other than EOL.
func badColumn(col int) bool {
	return col < 0 && col != EOL
}

// lastColumn resolves an inclusive end column against a line of length n.
// EOL and columns past the end mean the last character.
func lastColumn(col, n int) int {
	if col == EOL || col >= n {
		return n - 1
	}
	return col
}

func clone(p []byte) []byte {
	return append([]byte{}, p...)
}
