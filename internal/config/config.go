package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/vicore/internal/input/key"
)

// Map modes.
const (
	ModeCommand = "command"
	ModeInput   = "input"
)

// MapEntry is one [[map]] definition.
type MapEntry struct {
	LHS  string `toml:"lhs"`
	RHS  string `toml:"rhs"`
	Mode string `toml:"mode,omitempty"`
}

// Input reports whether the map applies in input mode.
func (m MapEntry) Input() bool { return m.Mode == ModeInput }

// AbbrevEntry is one [[abbreviate]] definition.
type AbbrevEntry struct {
	LHS string `toml:"lhs"`
	RHS string `toml:"rhs"`
}

// Config is the content of a configuration file.
type Config struct {
	// Path is the file the configuration came from, if any.
	Path string

	Options Options
	Maps    []MapEntry
	Abbrevs []AbbrevEntry
}

// Default returns a configuration with default options and no definitions.
func Default() *Config {
	return &Config{Options: DefaultOptions()}
}

// fileOptions mirrors Options as it appears in a file. Nil fields keep
// their defaults.
type fileOptions struct {
	AltNotation *bool   `toml:"altnotation,omitempty"`
	Octal       *bool   `toml:"octal,omitempty"`
	Remap       *bool   `toml:"remap,omitempty"`
	Timeout     *bool   `toml:"timeout,omitempty"`
	EscapeTime  *int64  `toml:"escapetime,omitempty"`
	KeyTime     *int64  `toml:"keytime,omitempty"`
	Print       *string `toml:"print,omitempty"`
	NoPrint     *string `toml:"noprint,omitempty"`
	Report      *int    `toml:"report,omitempty"`
}

type file struct {
	Options fileOptions   `toml:"options"`
	Maps    []MapEntry    `toml:"map,omitempty"`
	Abbrevs []AbbrevEntry `toml:"abbreviate,omitempty"`
}

// Load reads the configuration file at path. A missing file yields the
// default configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.Path = path
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes configuration data. source names the data in errors.
func Parse(source string, data []byte) (*Config, error) {
	var f file
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}

	cfg := Default()
	if err := f.Options.apply(&cfg.Options); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	for i, m := range f.Maps {
		if m.Mode == "" {
			m.Mode = ModeCommand
		}
		if m.Mode != ModeCommand && m.Mode != ModeInput {
			return nil, &ParseError{Path: source, Message: fmt.Sprintf("map %d: mode must be %q or %q", i+1, ModeCommand, ModeInput)}
		}
		if m.LHS == "" {
			return nil, &ParseError{Path: source, Message: fmt.Sprintf("map %d: empty lhs", i+1)}
		}
		if err := decodeKeys(&m.LHS, &m.RHS); err != nil {
			return nil, &ParseError{Path: source, Message: fmt.Sprintf("map %d: %v", i+1, err), Err: err}
		}
		cfg.Maps = append(cfg.Maps, m)
	}
	for i, a := range f.Abbrevs {
		if a.LHS == "" || a.RHS == "" {
			return nil, &ParseError{Path: source, Message: fmt.Sprintf("abbreviate %d: lhs and rhs are required", i+1)}
		}
		if err := decodeKeys(&a.LHS, &a.RHS); err != nil {
			return nil, &ParseError{Path: source, Message: fmt.Sprintf("abbreviate %d: %v", i+1, err), Err: err}
		}
		cfg.Abbrevs = append(cfg.Abbrevs, a)
	}
	return cfg, nil
}

// decodeKeys replaces key notation such as <Esc> in each string with the
// characters it names.
func decodeKeys(fields ...*string) error {
	for _, f := range fields {
		chars, err := key.ParseNotation(*f)
		if err != nil {
			return err
		}
		*f = string(chars)
	}
	return nil
}

func (f fileOptions) apply(o *Options) error {
	setB := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setB(&o.AltNotation, f.AltNotation)
	setB(&o.Octal, f.Octal)
	setB(&o.Remap, f.Remap)
	setB(&o.Timeout, f.Timeout)
	if f.Print != nil {
		o.Print = *f.Print
	}
	if f.NoPrint != nil {
		o.NoPrint = *f.NoPrint
	}
	for _, t := range []struct {
		name string
		v    *int64
		dst  *time.Duration
	}{
		{"escapetime", f.EscapeTime, &o.EscapeTime},
		{"keytime", f.KeyTime, &o.KeyTime},
	} {
		if t.v == nil {
			continue
		}
		if *t.v < 0 {
			return fmt.Errorf("%s must not be negative", t.name)
		}
		*t.dst = time.Duration(*t.v) * time.Millisecond
	}
	if f.Report != nil {
		if *f.Report < 0 {
			return errors.New("report must not be negative")
		}
		o.Report = *f.Report
	}
	return nil
}

// Encode writes cfg as TOML in the form Parse reads.
func (c *Config) Encode(w io.Writer) error {
	o := c.Options
	esc := o.EscapeTime.Milliseconds()
	keyMs := o.KeyTime.Milliseconds()
	f := file{
		Options: fileOptions{
			AltNotation: &o.AltNotation,
			Octal:       &o.Octal,
			Remap:       &o.Remap,
			Timeout:     &o.Timeout,
			EscapeTime:  &esc,
			KeyTime:     &keyMs,
			Print:       &o.Print,
			NoPrint:     &o.NoPrint,
			Report:      &o.Report,
		},
	}
	for _, m := range c.Maps {
		m.LHS = key.FormatNotation([]rune(m.LHS))
		m.RHS = key.FormatNotation([]rune(m.RHS))
		f.Maps = append(f.Maps, m)
	}
	for _, a := range c.Abbrevs {
		a.LHS = key.FormatNotation([]rune(a.LHS))
		a.RHS = key.FormatNotation([]rune(a.RHS))
		f.Abbrevs = append(f.Abbrevs, a)
	}
	return toml.NewEncoder(w).Encode(f)
}
