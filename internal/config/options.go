package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/dshills/vicore/internal/fault"
)

// Default option values.
const (
	DefaultEscapeTime = 600 * time.Millisecond
	DefaultKeyTime    = 1000 * time.Millisecond
	DefaultReport     = 5
)

// Options are the session options the editing core reads.
type Options struct {
	// AltNotation displays control characters as <C-x> instead of ^X.
	AltNotation bool
	// Octal displays unprintable characters in octal.
	Octal bool
	// Remap re-applies maps to the output of maps.
	Remap bool
	// Timeout bounds the wait for the rest of a partially typed map.
	Timeout bool
	// EscapeTime is the wait when the pending map starts with <escape>.
	EscapeTime time.Duration
	// KeyTime is the wait for every other pending map.
	KeyTime time.Duration
	// Print lists characters always displayed as themselves.
	Print string
	// NoPrint lists characters never displayed as themselves.
	NoPrint string
	// Report is the number of changed lines that triggers a message.
	Report int
}

// DefaultOptions returns the historical defaults.
func DefaultOptions() Options {
	return Options{
		Remap:      true,
		Timeout:    true,
		EscapeTime: DefaultEscapeTime,
		KeyTime:    DefaultKeyTime,
		Report:     DefaultReport,
	}
}

// Names returns the option names accepted by Set.
func Names() []string {
	return []string{
		"altnotation", "escapetime", "keytime", "noprint", "octal",
		"print", "remap", "report", "timeout",
	}
}

// Set assigns an option from its text form. Boolean options accept the
// forms of strconv.ParseBool; times are milliseconds. An unknown name or a
// malformed value is a user error.
func (o *Options) Set(name, value string) error {
	switch strings.ToLower(name) {
	case "altnotation":
		return setBool(&o.AltNotation, name, value)
	case "octal":
		return setBool(&o.Octal, name, value)
	case "remap":
		return setBool(&o.Remap, name, value)
	case "timeout", "to":
		return setBool(&o.Timeout, name, value)
	case "escapetime":
		return setMillis(&o.EscapeTime, name, value)
	case "keytime":
		return setMillis(&o.KeyTime, name, value)
	case "print":
		o.Print = value
	case "noprint":
		o.NoPrint = value
	case "report":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fault.UserWrap(ErrBadValue, "set: %s requires a number: %q", name, value)
		}
		o.Report = n
	default:
		return fault.UserWrap(ErrUnknownOption, "set: no %s option", name)
	}
	return nil
}

func setBool(dst *bool, name, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fault.UserWrap(ErrBadValue, "set: %s requires true or false: %q", name, value)
	}
	*dst = b
	return nil
}

func setMillis(dst *time.Duration, name, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fault.UserWrap(ErrBadValue, "set: %s requires milliseconds: %q", name, value)
	}
	*dst = time.Duration(n) * time.Millisecond
	return nil
}
