// Package seq holds the key-sequence bindings of an editing session:
// command-mode maps, input-mode maps and abbreviations.
//
// Bindings of each kind are indexed in a prefix tree keyed by character, so
// the resolver can ask, for the characters currently queued, which binding
// matches completely and whether a longer binding could still match if more
// input arrived:
//
//	t := seq.NewTable()
//	t.Set(seq.Command, []rune("ab"), []rune("XY"), true)
//	b, partial := t.Find(seq.Command, queue)
//
// A nil Output means the input maps to nothing and simply disappears.
package seq
