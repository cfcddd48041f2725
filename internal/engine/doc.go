// Package engine implements the text operations of the editing core on top
// of a line store.
//
// # Delete
//
// Mutator.Delete removes the text between two positions, inclusive of both
// ends. Four cases apply, checked in order:
//
//   - Line mode: every line from the start line to the end line is removed.
//   - Through end of file: when the range runs past the last character of
//     the last line, the lines after the start line are removed and the
//     start line is truncated at the start column.
//   - Within one line: the characters between the columns are spliced out.
//   - Across lines: the text before the start column is joined with the
//     text after the end column, and the lines in between are removed.
//
// Line removal runs from the highest line down and checks for an interrupt
// every InterruptCheck lines. An interrupted delete stops early and still
// succeeds, leaving the lines already removed gone.
//
// # Cut and Put
//
// Cut copies a range into a register following vi conventions: an
// uppercase name appends, line-wise and multi-line cuts go to the numbered
// registers, and every cut becomes the default register. Put inserts a
// register's text before or after a position.
//
// # Errors
//
// Storage failures and line length overflow are fatal (see fault.IsFatal).
// Bad ranges and empty registers are user errors.
package engine
