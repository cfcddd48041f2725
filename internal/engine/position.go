package engine

// EOL as a column means "the end of the line".
const EOL = -1

// Position is a 1-based line and a 0-based byte column.
type Position struct {
	Line   int
	Column int
}

// Pos is shorthand for Position{line, column}.
func Pos(line, column int) Position {
	return Position{Line: line, Column: column}
}

// Compare orders positions in the file. EOL sorts after every column.
func (p Position) Compare(q Position) int {
	switch {
	case p.Line < q.Line:
		return -1
	case p.Line > q.Line:
		return 1
	}
	pc, qc := p.Column, q.Column
	switch {
	case pc == qc:
		return 0
	case pc == EOL:
		return 1
	case qc == EOL:
		return -1
	case pc < qc:
		return -1
	}
	return 1
}
