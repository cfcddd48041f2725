// Package key classifies raw input characters.
//
// Every character read from the terminal is stamped with a symbolic Value
// (CR, Escape, VErase, ...) so the command and text-input layers can test
// for special keys without caring which byte the terminal used. The table
// combines the fixed historical vi bindings with the erase, kill, word-erase
// and EOF characters the terminal reports; a terminal character that
// coincides with a historical binding replaces it.
//
// The package also renders characters for display:
//
//	t := key.NewTable(key.SpecialChars{Erase: 0x7f}, nil)
//	t.Name(0x01)                                  // "^A"
//	t.SetDisplay(key.DisplayOptions{AltNotation: true})
//	t.Name(0x01)                                  // "<C-a>"
//
// ParseNotation and FormatNotation convert between characters and the
// bracketed notation used in configuration files.
package key
