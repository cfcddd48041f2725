package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/vicore/internal/fault"
)

const sample = `
[options]
remap = false
keytime = 250
report = 0
print = "é"

[[map]]
lhs = "Q"
rhs = "dd"

[[map]]
lhs = "jj"
rhs = "\u001b"
mode = "input"

[[map]]
lhs = "<C-x>"
rhs = ":q<CR>"

[[abbreviate]]
lhs = "teh"
rhs = "the"
`

func TestParse(t *testing.T) {
	cfg, err := Parse("sample", []byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	o := cfg.Options
	if o.Remap || !o.Timeout {
		t.Errorf("Remap = %v, Timeout = %v", o.Remap, o.Timeout)
	}
	if o.KeyTime != 250*time.Millisecond || o.EscapeTime != DefaultEscapeTime {
		t.Errorf("KeyTime = %v, EscapeTime = %v", o.KeyTime, o.EscapeTime)
	}
	if o.Report != 0 || o.Print != "é" {
		t.Errorf("Report = %d, Print = %q", o.Report, o.Print)
	}
	if len(cfg.Maps) != 3 || cfg.Maps[0].Mode != ModeCommand || !cfg.Maps[1].Input() || cfg.Maps[1].RHS != "\x1b" {
		t.Errorf("Maps = %+v", cfg.Maps)
	}
	if m := cfg.Maps[2]; m.LHS != "\x18" || m.RHS != ":q\r" {
		t.Errorf("notation map = %+v", m)
	}
	if len(cfg.Abbrevs) != 1 || cfg.Abbrevs[0].RHS != "the" {
		t.Errorf("Abbrevs = %+v", cfg.Abbrevs)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[options\nremap = true"},
		{"unknown key", "[options]\ncolour = 3"},
		{"bad mode", "[[map]]\nlhs = \"a\"\nrhs = \"b\"\nmode = \"visual\""},
		{"empty lhs", "[[map]]\nrhs = \"b\""},
		{"negative time", "[options]\nkeytime = -1"},
		{"abbreviation without rhs", "[[abbreviate]]\nlhs = \"x\""},
		{"bad notation", "[[map]]\nlhs = \"<Hyper>\"\nrhs = \"b\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.toml", []byte(tt.data))
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Path != "bad.toml" {
				t.Errorf("Parse() error = %v, want *ParseError", err)
			}
		})
	}

	_, err := Parse("bad.toml", []byte("[options]\nremap = tru"))
	var pe *ParseError
	if errors.As(err, &pe) && pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != path || cfg.Options != DefaultOptions() {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg, err := Parse("sample", []byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := Parse("encoded", buf.Bytes())
	if err != nil {
		t.Fatalf("Parse(Encode()) error = %v\n%s", err, buf.String())
	}
	if back.Options != cfg.Options || len(back.Maps) != 3 || back.Maps[1] != cfg.Maps[1] || back.Maps[2] != cfg.Maps[2] {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}

func TestOptionsSet(t *testing.T) {
	o := DefaultOptions()
	steps := []struct {
		name, value string
	}{
		{"remap", "false"},
		{"KeyTime", "300"},
		{"escapetime", "0"},
		{"report", "2"},
		{"altnotation", "1"},
		{"noprint", "x"},
	}
	for _, s := range steps {
		if err := o.Set(s.name, s.value); err != nil {
			t.Fatalf("Set(%s, %s) error = %v", s.name, s.value, err)
		}
	}
	want := DefaultOptions()
	want.Remap = false
	want.KeyTime = 300 * time.Millisecond
	want.EscapeTime = 0
	want.Report = 2
	want.AltNotation = true
	want.NoPrint = "x"
	if o != want {
		t.Errorf("Options = %+v, want %+v", o, want)
	}

	if err := o.Set("colour", "x"); !errors.Is(err, ErrUnknownOption) || !fault.IsUser(err) {
		t.Errorf("Set(colour) error = %v", err)
	}
	if err := o.Set("remap", "maybe"); !errors.Is(err, ErrBadValue) {
		t.Errorf("Set(remap, maybe) error = %v", err)
	}
	if err := o.Set("keytime", "-5"); !errors.Is(err, ErrBadValue) {
		t.Errorf("Set(keytime, -5) error = %v", err)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vicore.toml")
	if err := os.WriteFile(path, []byte("[options]\nreport = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan *Config, 4)
	w, err := Watch(path, func(cfg *Config, err error) {
		if err != nil {
			return
		}
		select {
		case got <- cfg:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[options]\nreport = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.Options.Report == 9 {
				return
			}
		case <-deadline:
			t.Fatal("no reload after write")
		}
	}
}
