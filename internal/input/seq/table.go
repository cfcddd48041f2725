package seq

import (
	"fmt"
	"slices"
)

// Kind distinguishes the three binding tables.
type Kind uint8

const (
	// Abbrev bindings expand words typed in input mode.
	Abbrev Kind = iota
	// Command bindings apply to command-mode keys (":map").
	Command
	// Input bindings apply to input-mode keys (":map!").
	Input

	numKinds
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Abbrev:
		return "abbreviate"
	case Command:
		return "command"
	case Input:
		return "input"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// MaxBit bounds the characters tracked by the first-character bitset.
// Larger characters are always searched.
const MaxBit = 256

// Binding maps an input sequence to its replacement.
type Binding struct {
	Kind Kind

	// Input is the triggering sequence; it is the key within its kind.
	Input []rune

	// Output is the replacement. Nil means the input maps to nothing.
	Output []rune

	// UserDefined marks bindings created by the user rather than installed
	// by the editor itself. Only these are saved.
	UserDefined bool
}

// String renders the binding for debugging.
func (b *Binding) String() string {
	if b.Output == nil {
		return fmt.Sprintf("%s %q -> <nothing>", b.Kind, string(b.Input))
	}
	return fmt.Sprintf("%s %q -> %q", b.Kind, string(b.Input), string(b.Output))
}

// Source is the queued input a lookup matches against. CharAt reports false
// past the end of the buffered input or at a non-character event.
type Source interface {
	Len() int
	CharAt(i int) (rune, bool)
}

type node struct {
	children map[rune]*node
	binding  *Binding
}

func (n *node) empty() bool {
	return n.binding == nil && len(n.children) == 0
}

// Table stores the bindings of every kind for one session.
// It is not safe for concurrent use.
type Table struct {
	roots [numKinds]*node
	bits  [MaxBit / 64]uint64
	count [numKinds]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	t := &Table{}
	for i := range t.roots {
		t.roots[i] = &node{children: make(map[rune]*node)}
	}
	return t
}

// Set installs or replaces the binding for input within kind. The slices are
// copied.
func (t *Table) Set(kind Kind, input, output []rune, userDefined bool) error {
	if len(input) == 0 {
		return ErrEmptyInput
	}
	if kind >= numKinds {
		return fmt.Errorf("set binding: unknown kind %d", kind)
	}

	n := t.roots[kind]
	for _, ch := range input {
		next, ok := n.children[ch]
		if !ok {
			next = &node{children: make(map[rune]*node)}
			n.children[ch] = next
		}
		n = next
	}

	b := &Binding{
		Kind:        kind,
		Input:       slices.Clone(input),
		UserDefined: userDefined,
	}
	if output != nil {
		b.Output = slices.Clone(output)
	}
	if n.binding == nil {
		t.count[kind]++
	}
	n.binding = b
	t.setBit(input[0])
	return nil
}

// Delete removes the binding for input within kind.
func (t *Table) Delete(kind Kind, input []rune) error {
	if kind >= numKinds || len(input) == 0 {
		return ErrNotMapped
	}

	path := make([]*node, 0, len(input)+1)
	n := t.roots[kind]
	path = append(path, n)
	for _, ch := range input {
		next, ok := n.children[ch]
		if !ok {
			return ErrNotMapped
		}
		n = next
		path = append(path, n)
	}
	if n.binding == nil {
		return ErrNotMapped
	}
	n.binding = nil
	t.count[kind]--

	// Prune nodes that no longer lead anywhere.
	for i := len(input); i > 0; i-- {
		if !path[i].empty() {
			break
		}
		delete(path[i-1].children, input[i-1])
	}
	t.refreshBit(input[0])
	return nil
}

// Lookup returns the binding whose input is exactly input.
func (t *Table) Lookup(kind Kind, input []rune) (*Binding, bool) {
	if kind >= numKinds {
		return nil, false
	}
	n := t.roots[kind]
	for _, ch := range input {
		next, ok := n.children[ch]
		if !ok {
			return nil, false
		}
		n = next
	}
	return n.binding, n.binding != nil
}

// Find matches the characters buffered in src against the bindings of kind.
//
// It returns the longest binding whose input is entirely present at the head
// of src, or nil. partial reports that src ran out while a longer binding
// could still match, so reading more input may change the answer.
func (t *Table) Find(kind Kind, src Source) (b *Binding, partial bool) {
	if kind >= numKinds {
		return nil, false
	}
	n := t.roots[kind]
	avail := src.Len()
	for i := 0; ; i++ {
		if i == avail {
			return b, len(n.children) > 0
		}
		ch, ok := src.CharAt(i)
		if !ok {
			return b, false
		}
		next, ok := n.children[ch]
		if !ok {
			return b, false
		}
		n = next
		if n.binding != nil {
			b = n.binding
		}
	}
}

// MayStart reports whether some binding of any kind begins with ch.
// It may report true for characters at or above MaxBit.
func (t *Table) MayStart(ch rune) bool {
	if ch < 0 {
		return false
	}
	if ch >= MaxBit {
		return true
	}
	return t.bits[ch/64]&(1<<(uint(ch)%64)) != 0
}

func (t *Table) setBit(ch rune) {
	if ch >= 0 && ch < MaxBit {
		t.bits[ch/64] |= 1 << (uint(ch) % 64)
	}
}

func (t *Table) refreshBit(ch rune) {
	if ch < 0 || ch >= MaxBit {
		return
	}
	for _, root := range t.roots {
		if _, ok := root.children[ch]; ok {
			return
		}
	}
	t.bits[ch/64] &^= 1 << (uint(ch) % 64)
}

// Len returns the number of bindings of kind.
func (t *Table) Len(kind Kind) int {
	if kind >= numKinds {
		return 0
	}
	return t.count[kind]
}

// All returns the bindings of kind ordered by input.
func (t *Table) All(kind Kind) []*Binding {
	if kind >= numKinds {
		return nil
	}
	out := make([]*Binding, 0, t.count[kind])
	var walk func(n *node)
	walk = func(n *node) {
		if n.binding != nil {
			out = append(out, n.binding)
		}
		keys := make([]rune, 0, len(n.children))
		for ch := range n.children {
			keys = append(keys, ch)
		}
		slices.Sort(keys)
		for _, ch := range keys {
			walk(n.children[ch])
		}
	}
	walk(t.roots[kind])
	return out
}

// Clear removes every binding of kind.
func (t *Table) Clear(kind Kind) {
	if kind >= numKinds {
		return
	}
	starts := make([]rune, 0, len(t.roots[kind].children))
	for ch := range t.roots[kind].children {
		starts = append(starts, ch)
	}
	t.roots[kind] = &node{children: make(map[rune]*node)}
	t.count[kind] = 0
	for _, ch := range starts {
		t.refreshBit(ch)
	}
}
