// Package register stores cut and yanked text.
//
// A register is named by a single character. Uppercase names fold to their
// lowercase register, digit names form the numbered set, and the zero name
// is the unnamed register. Registers are created on first write and live
// for the whole process.
//
// The default register is whichever register was written last; commands
// that take no register name read it. The manager itself never rotates the
// numbered registers or decides between appending and replacing: that
// policy belongs to the engine.
//
// The '+' and '*' registers are backed by the system clipboard when one is
// configured.
package register
