package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/vicore/internal/fault"
)

type fakeEditor struct {
	calls []string
}

func (e *fakeEditor) record(parts ...string) error {
	e.calls = append(e.calls, strings.Join(parts, " "))
	return nil
}

func (e *fakeEditor) Map(lhs, rhs string, input bool) error {
	if input {
		return e.record("map!", lhs, rhs)
	}
	return e.record("map", lhs, rhs)
}

func (e *fakeEditor) Unmap(lhs string, input bool) error {
	if lhs == "zz" {
		return fault.User("\"zz\" isn't currently mapped")
	}
	if input {
		return e.record("unmap!", lhs)
	}
	return e.record("unmap", lhs)
}

func (e *fakeEditor) Abbreviate(lhs, rhs string) error { return e.record("ab", lhs, rhs) }

func (e *fakeEditor) Unabbreviate(lhs string) error { return e.record("unab", lhs) }

func (e *fakeEditor) Set(name, value string) error { return e.record("set", name, value) }

func TestRunString(t *testing.T) {
	ed := &fakeEditor{}
	s := NewState(ed)
	defer s.Close()

	code := `
map("Q", "dd")
map_input("jj", "\27")
unmap("Q")
unmap("jj", true)
abbreviate("teh", "the")
unabbreviate("teh")
set("remap", false)
set("keytime", 250)
set("report", "3")
`
	if err := s.RunString(context.Background(), "init", code); err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
	want := []string{
		"map Q dd",
		"map! jj \x1b",
		"unmap Q",
		"unmap! jj",
		"ab teh the",
		"unab teh",
		"set remap false",
		"set keytime 250",
		"set report 3",
	}
	if strings.Join(ed.calls, "|") != strings.Join(want, "|") {
		t.Errorf("calls = %q, want %q", ed.calls, want)
	}
}

func TestRunStringErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"syntax", "map(", "init"},
		{"editor error", `unmap("zz")`, "isn't currently mapped"},
		{"bad option value", `set("remap", {})`, "boolean, number or string expected"},
		{"missing argument", `map("x")`, "string expected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(&fakeEditor{})
			defer s.Close()
			err := s.RunString(context.Background(), "init", tt.code)
			if !fault.IsUser(err) {
				t.Fatalf("RunString() error = %v, want user error", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestSandbox(t *testing.T) {
	s := NewState(&fakeEditor{})
	defer s.Close()
	for _, name := range []string{"dofile", "loadfile", "load", "require", "io", "os"} {
		code := "assert(" + name + " == nil)"
		if err := s.RunString(context.Background(), name, code); err != nil {
			t.Errorf("%s is reachable: %v", name, err)
		}
	}
}

func TestTimeout(t *testing.T) {
	s := NewState(&fakeEditor{}, WithTimeout(20*time.Millisecond))
	defer s.Close()
	err := s.RunString(context.Background(), "loop", "while true do end")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("RunString() error = %v, want deadline exceeded", err)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`map("g", "1G")`), 0o644); err != nil {
		t.Fatal(err)
	}
	ed := &fakeEditor{}
	s := NewState(ed)
	defer s.Close()
	if err := s.RunFile(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if len(ed.calls) != 1 || ed.calls[0] != "map g 1G" {
		t.Errorf("calls = %q", ed.calls)
	}

	s.Close()
	if err := s.RunFile(context.Background(), path); !errors.Is(err, ErrClosed) {
		t.Errorf("RunFile() after Close error = %v", err)
	}
}
