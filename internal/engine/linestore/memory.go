package linestore

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"slices"
)

// Linefeed is the line terminator a store writes.
type Linefeed uint8

const (
	LF Linefeed = iota
	CRLF
	CR
)

// Bytes returns the terminator sequence.
func (l Linefeed) Bytes() []byte {
	switch l {
	case CRLF:
		return []byte{'\r', '\n'}
	case CR:
		return []byte{'\r'}
	default:
		return []byte{'\n'}
	}
}

// Memory is an in-memory Store.
type Memory struct {
	lines    [][]byte
	linefeed Linefeed
	dirty    bool
}

// NewMemory returns a store holding a copy of lines.
func NewMemory(lines ...[]byte) *Memory {
	m := &Memory{lines: make([][]byte, 0, max(len(lines), 64))}
	for _, l := range lines {
		m.lines = append(m.lines, slices.Clone(l))
	}
	return m
}

// FromStrings returns a store holding lines.
func FromStrings(lines ...string) *Memory {
	m := &Memory{lines: make([][]byte, 0, max(len(lines), 64))}
	for _, l := range lines {
		m.lines = append(m.lines, []byte(l))
	}
	return m
}

// ReadFrom replaces the contents of m with the lines read from r. Lines
// may end in LF, CRLF or CR; the most common terminator is remembered and
// used by WriteTo.
func (m *Memory) ReadFrom(r io.Reader) (int64, error) {
	sc := &lineSplitter{}
	cr := &countingReader{r: r}
	scanner := bufio.NewScanner(cr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<30)
	scanner.Split(sc.split)

	lines := make([][]byte, 0, 64)
	for scanner.Scan() {
		lines = append(lines, slices.Clone(scanner.Bytes()))
	}
	if err := scanner.Err(); err != nil {
		return cr.n, fmt.Errorf("read lines: %w", err)
	}

	m.lines = lines
	m.linefeed = sc.majority()
	m.dirty = false
	return cr.n, nil
}

// WriteTo writes every line followed by the store's terminator.
func (m *Memory) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	eol := m.linefeed.Bytes()
	var n int64
	for _, l := range m.lines {
		k, err := bw.Write(l)
		n += int64(k)
		if err != nil {
			return n, err
		}
		k, err = bw.Write(eol)
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Linefeed returns the terminator used by WriteTo.
func (m *Memory) Linefeed() Linefeed { return m.linefeed }

// SetLinefeed changes the terminator used by WriteTo.
func (m *Memory) SetLinefeed(l Linefeed) { m.linefeed = l }

// Dirty reports whether the store changed since it was read or marked clean.
func (m *Memory) Dirty() bool { return m.dirty }

// MarkClean clears the dirty flag.
func (m *Memory) MarkClean() { m.dirty = false }

// Lines returns a copy of every line as a string.
func (m *Memory) Lines() []string {
	out := make([]string, len(m.lines))
	for i, l := range m.lines {
		out[i] = string(l)
	}
	return out
}

func (m *Memory) index(lno int) (int, error) {
	if lno < 1 || lno > len(m.lines) {
		return 0, fmt.Errorf("line %d: %w", lno, ErrNoLine)
	}
	return lno - 1, nil
}

// Get implements Store.
func (m *Memory) Get(lno int) ([]byte, error) {
	i, err := m.index(lno)
	if err != nil {
		return nil, err
	}
	return m.lines[i], nil
}

// Set implements Store.
func (m *Memory) Set(lno int, data []byte) error {
	i, err := m.index(lno)
	if err != nil {
		return err
	}
	m.lines[i] = slices.Clone(data)
	if m.lines[i] == nil {
		m.lines[i] = []byte{}
	}
	m.dirty = true
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(lno int) error {
	i, err := m.index(lno)
	if err != nil {
		return err
	}
	m.lines = slices.Delete(m.lines, i, i+1)
	m.dirty = true
	return nil
}

// Append implements Store.
func (m *Memory) Append(after int, data []byte) error {
	if after < 0 || after > len(m.lines) {
		return fmt.Errorf("append after line %d: %w", after, ErrNoLine)
	}
	line := slices.Clone(data)
	if line == nil {
		line = []byte{}
	}
	m.lines = slices.Insert(m.lines, after, line)
	m.dirty = true
	return nil
}

// Last implements Store.
func (m *Memory) Last() (int, error) {
	return len(m.lines), nil
}

// lineSplitter is a bufio.SplitFunc that strips LF, CRLF or CR terminators
// and counts each kind.
type lineSplitter struct {
	lf, crlf, cr int
}

func (s *lineSplitter) split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			s.lf++
			return i + 1, data[:i], nil
		}
		// A CR at the end of the buffer may be the first half of a CRLF.
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			s.crlf++
			return i + 2, data[:i], nil
		}
		s.cr++
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func (s *lineSplitter) majority() Linefeed {
	switch {
	case s.crlf > s.lf && s.crlf >= s.cr:
		return CRLF
	case s.cr > s.lf && s.cr > s.crlf:
		return CR
	default:
		return LF
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
