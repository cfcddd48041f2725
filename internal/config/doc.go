// Package config loads the options and definitions of an editing session.
//
// A configuration file is TOML:
//
//	[options]
//	remap = true
//	timeout = true
//	keytime = 1000     # milliseconds
//	escapetime = 600   # milliseconds
//	report = 5
//
//	[[map]]
//	lhs = "Q"
//	rhs = "dd"
//	mode = "command"   # or "input"
//
//	[[abbreviate]]
//	lhs = "teh"
//	rhs = "the"
//
// Map and abbreviation strings may use key notation such as <Esc>, <CR> or
// <C-b>; write <lt> for a literal <. Options missing from the file keep
// their defaults. Unknown keys are
// errors. Parse and validation failures are returned as *ParseError.
//
// Watch reloads a file whenever it is written and hands the result to a
// callback.
package config
