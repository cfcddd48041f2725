package key

import "fmt"

// Value is the symbolic identity of an input character, independent of
// the raw byte the terminal sent. Characters with no special meaning
// classify as NotUsed.
type Value uint8

const (
	// NotUsed marks a character with no special meaning.
	NotUsed Value = iota
	Backslash
	Carat
	CntrlD
	CntrlR
	CntrlT
	CntrlZ
	Colon
	CR
	Escape
	FormFeed
	HexChar
	NL
	RightBrace
	RightParen
	Tab
	VErase
	VKill
	VLNext
	VWErase
	Zero
)

var valueNames = [...]string{
	NotUsed:    "NotUsed",
	Backslash:  "Backslash",
	Carat:      "Carat",
	CntrlD:     "CntrlD",
	CntrlR:     "CntrlR",
	CntrlT:     "CntrlT",
	CntrlZ:     "CntrlZ",
	Colon:      "Colon",
	CR:         "CR",
	Escape:     "Escape",
	FormFeed:   "FormFeed",
	HexChar:    "HexChar",
	NL:         "NL",
	RightBrace: "RightBrace",
	RightParen: "RightParen",
	Tab:        "Tab",
	VErase:     "VErase",
	VKill:      "VKill",
	VLNext:     "VLNext",
	VWErase:    "VWErase",
	Zero:       "Zero",
}

// String returns the name of the value.
func (v Value) String() string {
	if int(v) < len(valueNames) {
		return valueNames[v]
	}
	return fmt.Sprintf("Value(%d)", v)
}

// NotDigit is the raw character returned by the resolver when a count is
// terminated by a mapped non-digit. It is outside the range of characters a
// terminal can produce.
const NotDigit rune = -1
