// Package app owns the per-session state of the editing core and ties the
// packages together.
//
// A Session holds everything one editing session needs: its options, key
// table, event queue, map tables, registers, open documents and the
// resolver that reads input. Several sessions may share a Host, which can
// flush every open document of every session. The resolver calls the Host
// before reporting a fatal input error, so no edits are lost when the
// terminal goes away.
//
// A Session is used from a single goroutine. Configuration reloads arrive on
// the watcher goroutine and are applied by the session the next time it
// reads input.
package app
