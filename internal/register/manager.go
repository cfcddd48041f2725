package register

import (
	"iter"
	"slices"
	"unicode"

	"github.com/dshills/vicore/internal/fault"
)

// Unnamed is the name of the unnamed register.
const Unnamed rune = 0

// Kind selects a section of the register dump.
type Kind uint8

const (
	// Named registers have non-digit names.
	Named Kind = iota
	// Numbered registers have digit names.
	Numbered
	// Default is the register most recently written.
	Default
)

// Normalize folds an uppercase name to lowercase.
func Normalize(name rune) rune {
	if unicode.IsUpper(name) {
		return unicode.ToLower(name)
	}
	return name
}

// IsAppend reports whether name asks for appending to its register.
func IsAppend(name rune) bool {
	return unicode.IsUpper(name)
}

// IsNumbered reports whether name is a numbered register.
func IsNumbered(name rune) bool {
	return name >= '0' && name <= '9'
}

// Manager owns the registers of an editing session.
// It is not safe for concurrent use.
type Manager struct {
	regs    map[rune]*Register
	unnamed *Register
	dflt    *Register
	clip    Clipboard
}

// NewManager returns a manager with no registers.
func NewManager() *Manager {
	return &Manager{regs: make(map[rune]*Register)}
}

// SetClipboard connects the '+' and '*' registers to c. Nil disconnects
// them, making them ordinary registers.
func (m *Manager) SetClipboard(c Clipboard) {
	m.clip = c
}

// register returns the register for a folded name, creating it.
func (m *Manager) register(name rune) *Register {
	if name == Unnamed {
		if m.unnamed == nil {
			m.unnamed = &Register{Name: Unnamed}
		}
		return m.unnamed
	}
	r, ok := m.regs[name]
	if !ok {
		r = &Register{Name: name}
		m.regs[name] = r
	}
	return r
}

// Cut appends texts to the register called name and makes it the default.
// An uppercase name writes the lowercase register. A line-mode cut marks the
// register line mode. Clipboard registers are also copied to the clipboard.
func (m *Manager) Cut(name rune, texts []Text, lineMode bool) (*Register, error) {
	name = Normalize(name)
	r := m.register(name)
	if r.Empty() {
		r.LineMode = lineMode
	} else if lineMode {
		r.LineMode = true
	}
	r.Append(texts...)
	m.dflt = r

	if IsClipboard(name) && m.clip != nil {
		if err := m.clip.WriteAll(string(r.Bytes())); err != nil {
			return r, fault.UserWrap(err, "clipboard: %v", err)
		}
	}
	return r, nil
}

// Lookup returns the register called name. Clipboard registers are read
// from the clipboard.
func (m *Manager) Lookup(name rune) (*Register, bool) {
	name = Normalize(name)
	if IsClipboard(name) && m.clip != nil {
		s, err := m.clip.ReadAll()
		if err != nil {
			return nil, false
		}
		r := fromClipboard(name, s)
		m.regs[name] = r
		return r, !r.Empty()
	}
	if name == Unnamed {
		return m.unnamed, m.unnamed != nil
	}
	r, ok := m.regs[name]
	return r, ok
}

// Get returns the non-empty register called name, or the default register
// for Unnamed. A missing or empty register is a user error.
func (m *Manager) Get(name rune) (*Register, error) {
	if name == Unnamed {
		if m.dflt.Empty() {
			return nil, fault.UserWrap(ErrEmpty, "The default buffer is empty")
		}
		return m.dflt, nil
	}
	r, ok := m.Lookup(name)
	if !ok || r.Empty() {
		return nil, fault.UserWrap(ErrEmpty, "Buffer %s is empty", string(name))
	}
	return r, nil
}

// Default returns the most recently written register, or nil.
func (m *Manager) Default() *Register {
	return m.dflt
}

// Clear empties the register called name, keeping it in place.
func (m *Manager) Clear(name rune) {
	if r, ok := m.Lookup(name); ok {
		r.Reset()
	}
}

// Set installs r under name, replacing any register there.
func (m *Manager) Set(name rune, r *Register) {
	name = Normalize(name)
	r.Name = name
	if m.dflt != nil && m.dflt.Name == name {
		m.dflt = r
	}
	if name == Unnamed {
		m.unnamed = r
		return
	}
	m.regs[name] = r
}

// Rotate shifts the numbered registers up by one: 1 becomes 2 and so on,
// and 9 is discarded. Register 1 is left unset.
func (m *Manager) Rotate() {
	if r, ok := m.regs['9']; ok {
		delete(m.regs, '9')
		if m.dflt == r {
			m.dflt = nil
		}
	}
	for name := '8'; name >= '1'; name-- {
		r, ok := m.regs[name]
		if !ok {
			continue
		}
		delete(m.regs, name)
		r.Name = name + 1
		m.regs[name+1] = r
	}
}

// Dump yields the non-empty registers of a section: named registers in name
// order, numbered registers from 0 to 9, or the default register.
func (m *Manager) Dump(kind Kind) iter.Seq[*Register] {
	return func(yield func(*Register) bool) {
		if kind == Default {
			if !m.dflt.Empty() {
				yield(m.dflt)
			}
			return
		}
		names := make([]rune, 0, len(m.regs))
		for name, r := range m.regs {
			if r.Empty() || IsNumbered(name) != (kind == Numbered) {
				continue
			}
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			if !yield(m.regs[name]) {
				return
			}
		}
	}
}

// Empty reports whether no register holds text.
func (m *Manager) Empty() bool {
	if !m.unnamed.Empty() {
		return false
	}
	for _, r := range m.regs {
		if !r.Empty() {
			return false
		}
	}
	return true
}
