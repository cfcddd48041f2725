// Package term reads raw input from the terminal for the input resolver.
//
// Source wraps a tcell screen. A goroutine polls the screen and hands
// events to NextEvent over a channel, so NextEvent can honour timeouts
// and context cancellation. Keys become characters; cursor and function
// keys become the ANSI escape strings a terminal would send, which the
// session maps to vi commands.
//
// The interrupt character (^C) is noticed as soon as the polling goroutine
// reads it, so PollInterrupt reports it even while earlier input is still
// waiting to be consumed.
//
// SpecialChars reads the erase, kill, word-erase and end-of-file characters
// from the terminal driver where the platform supports it.
package term
