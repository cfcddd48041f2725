package seq

import (
	"github.com/dshills/vicore/internal/fault"
	"github.com/dshills/vicore/internal/input/key"
)

// ValidateAbbrev checks that lhs can be recognised as an abbreviation.
//
// Abbreviations are triggered by the transition from a word character to a
// non-word character, so lhs must end with a word character, may not contain
// blanks, and may only switch between word and non-word characters at its
// last two characters.
func ValidateAbbrev(lhs []rune, class key.CharClass) error {
	if len(lhs) == 0 {
		return fault.UserWrap(ErrEmptyInput, "Usage: abbreviate [lhs rhs]")
	}
	if class == nil {
		class = key.UnicodeClass{}
	}
	if !class.IsWord(lhs[len(lhs)-1]) {
		return fault.UserWrap(ErrBadAbbrev, "Abbreviations must end with a \"word\" character")
	}
	for _, ch := range lhs {
		if ch == ' ' || ch == '\t' {
			return fault.UserWrap(ErrBadAbbrev, "Abbreviations may not contain tabs or spaces")
		}
	}
	for i := 0; i+2 < len(lhs); i++ {
		if class.IsWord(lhs[i]) != class.IsWord(lhs[i+1]) {
			return fault.UserWrap(ErrBadAbbrev,
				"Abbreviations may not mix word/non-word characters, except at the end")
		}
	}
	return nil
}

// Abbreviate validates lhs and installs it as a user abbreviation.
func (t *Table) Abbreviate(lhs, rhs []rune, class key.CharClass) error {
	if err := ValidateAbbrev(lhs, class); err != nil {
		return err
	}
	return t.Set(Abbrev, lhs, rhs, true)
}

// Unabbreviate removes a user abbreviation.
func (t *Table) Unabbreviate(lhs []rune) error {
	if err := t.Delete(Abbrev, lhs); err != nil {
		return fault.UserWrap(err, "\"%s\" is not an abbreviation", string(lhs))
	}
	return nil
}

// Unmap removes a command or input mapping.
func (t *Table) Unmap(kind Kind, lhs []rune) error {
	if err := t.Delete(kind, lhs); err != nil {
		return fault.UserWrap(err, "\"%s\" isn't currently mapped", string(lhs))
	}
	return nil
}
