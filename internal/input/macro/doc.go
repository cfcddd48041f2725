// Package macro executes registers as typed input and records typed input
// into registers.
//
// # Execution
//
// Executing a register (the vi @x command) pushes its text onto the front
// of the event queue, where the resolver reads it as if it had been typed.
// Line-mode registers get a newline after every text; character-mode
// registers get one after every text but the last. A count is pushed in
// front of the text and so applies to the first command.
//
// The names @ and * re-execute the last register executed.
//
// Execution is not grouped for undo: each command the register produces is
// a separate change.
//
// # Recording
//
// A Recorder captures the characters returned by the resolver while it is
// active and stores them in a register when stopped, so that executing the
// register replays them.
//
// # Thread Safety
//
// Executor and Recorder are safe for concurrent use. The queue and the
// register manager they are given are not, so callers must serialize access
// to those.
package macro
