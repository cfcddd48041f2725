package key

import (
	"sort"
	"sync"
)

// MaxFastKey is the largest raw character classified and named through the
// direct lookup arrays. Larger characters fall back to binary search and to
// computing their display name on demand.
const MaxFastKey = 254

type binding struct {
	ch    rune
	value Value
}

// historical lists the characters vi always treats specially, regardless
// of the terminal's settings. ^Q and ^V both quote the next character.
var historical = []binding{
	{'\\', Backslash},
	{'^', Carat},
	{'\004', CntrlD},
	{'\022', CntrlR},
	{'\024', CntrlT},
	{'\032', CntrlZ},
	{':', Colon},
	{'\r', CR},
	{'\033', Escape},
	{'\f', FormFeed},
	{'\030', HexChar},
	{'\n', NL},
	{'}', RightBrace},
	{')', RightParen},
	{'\t', Tab},
	{'\b', VErase},
	{'\025', VKill},
	{'\021', VLNext},
	{'\026', VLNext},
	{'\027', VWErase},
	{'0', Zero},
}

// SpecialChars are the editing characters reported by the terminal.
// A zero rune means the terminal has no such character.
type SpecialChars struct {
	EOF       rune
	Erase     rune
	Kill      rune
	WordErase rune
}

// Table classifies raw characters and renders them for display.
//
// A Table is built once per session group and rebuilt when the terminal's
// special characters or the display options change. Reads are safe for
// concurrent use; the editing core itself is single-threaded.
type Table struct {
	mu sync.RWMutex

	// sorted by ch; later registrations override earlier ones
	keys   []binding
	fast   [MaxFastKey + 1]Value
	maxKey rune

	class   CharClass
	display DisplayOptions
	names   [MaxFastKey + 1]string
}

// NewTable builds a table from the historical bindings plus the terminal's
// special characters, using class for printability decisions. A nil class
// selects UnicodeClass.
func NewTable(specials SpecialChars, class CharClass) *Table {
	if class == nil {
		class = UnicodeClass{}
	}
	t := &Table{class: class}
	t.build(specials)
	t.rebuildNames()
	return t
}

// SetSpecials rebuilds the classification from new terminal characters.
func (t *Table) SetSpecials(specials SpecialChars) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.build(specials)
}

func (t *Table) build(specials SpecialChars) {
	keys := make([]binding, len(historical), len(historical)+4)
	copy(keys, historical)

	keys = addSpecial(keys, CntrlD, specials.EOF)
	keys = addSpecial(keys, VErase, specials.Erase)
	keys = addSpecial(keys, VKill, specials.Kill)
	keys = addSpecial(keys, VWErase, specials.WordErase)

	sort.SliceStable(keys, func(i, j int) bool { return keys[i].ch < keys[j].ch })

	t.keys = keys
	t.fast = [MaxFastKey + 1]Value{}
	t.maxKey = 0
	for _, k := range keys {
		if k.ch > t.maxKey {
			t.maxKey = k.ch
		}
		if k.ch >= 0 && k.ch <= MaxFastKey {
			t.fast[k.ch] = k.value
		}
	}
}

// addSpecial installs a terminal character. A character that already has a
// binding is reassigned instead of duplicated.
func addSpecial(keys []binding, v Value, ch rune) []binding {
	if ch == 0 {
		return keys
	}
	for i := range keys {
		if keys[i].ch == ch {
			keys[i].value = v
			return keys
		}
	}
	return append(keys, binding{ch: ch, value: v})
}

// Classify returns the symbolic value of a raw character.
func (t *Table) Classify(ch rune) Value {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if ch >= 0 && ch <= MaxFastKey {
		return t.fast[ch]
	}
	if ch < 0 || ch > t.maxKey {
		return NotUsed
	}
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i].ch >= ch })
	if i < len(t.keys) && t.keys[i].ch == ch {
		return t.keys[i].value
	}
	return NotUsed
}

// Class returns the character classification in use.
func (t *Table) Class() CharClass {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.class
}
