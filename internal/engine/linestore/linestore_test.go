package linestore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMemoryOperations(t *testing.T) {
	m := FromStrings("one", "two", "three")

	if last, _ := m.Last(); last != 3 {
		t.Fatalf("Last() = %d, want 3", last)
	}
	if got, _ := m.Get(2); string(got) != "two" {
		t.Errorf("Get(2) = %q", got)
	}

	if err := m.Set(2, []byte("TWO")); err != nil {
		t.Fatal(err)
	}
	if err := m.Append(0, []byte("zero")); err != nil {
		t.Fatal(err)
	}
	if err := m.Append(4, []byte("four")); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(2); err != nil {
		t.Fatal(err)
	}

	want := []string{"zero", "TWO", "three", "four"}
	got := m.Lines()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
	if !m.Dirty() {
		t.Error("Dirty() = false after edits")
	}
}

func TestMemoryBounds(t *testing.T) {
	m := FromStrings("a")
	if _, err := m.Get(0); !errors.Is(err, ErrNoLine) {
		t.Errorf("Get(0) error = %v", err)
	}
	if _, err := m.Get(2); !errors.Is(err, ErrNoLine) {
		t.Errorf("Get(2) error = %v", err)
	}
	if err := m.Delete(5); !errors.Is(err, ErrNoLine) {
		t.Errorf("Delete(5) error = %v", err)
	}
	if err := m.Append(2, nil); !errors.Is(err, ErrNoLine) {
		t.Errorf("Append(2) error = %v", err)
	}
}

func TestMemorySetCopies(t *testing.T) {
	m := FromStrings("a")
	buf := []byte("xyz")
	m.Set(1, buf)
	buf[0] = 'q'
	if got, _ := m.Get(1); string(got) != "xyz" {
		t.Errorf("Set did not copy: %q", got)
	}
	m.Set(1, nil)
	if got, _ := m.Get(1); got == nil || len(got) != 0 {
		t.Errorf("Set(nil) = %#v, want empty line", got)
	}
}

func TestReadFromLinefeeds(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		lines []string
		lf    Linefeed
	}{
		{"lf", "a\nb\n", []string{"a", "b"}, LF},
		{"no final newline", "a\nb", []string{"a", "b"}, LF},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}, CRLF},
		{"cr", "a\rb\r", []string{"a", "b"}, CR},
		{"empty lines", "\n\nx\n", []string{"", "", "x"}, LF},
		{"empty", "", nil, LF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory()
			if _, err := m.ReadFrom(strings.NewReader(tt.in)); err != nil {
				t.Fatal(err)
			}
			got := m.Lines()
			if strings.Join(got, "|") != strings.Join(tt.lines, "|") || len(got) != len(tt.lines) {
				t.Errorf("lines = %q, want %q", got, tt.lines)
			}
			if m.Linefeed() != tt.lf {
				t.Errorf("Linefeed() = %v, want %v", m.Linefeed(), tt.lf)
			}
		})
	}
}

func TestWriteToRoundTrip(t *testing.T) {
	m := NewMemory()
	in := "x\r\ny\r\n"
	m.ReadFrom(strings.NewReader(in))
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != in {
		t.Errorf("WriteTo() = %q, want %q", buf.String(), in)
	}
}

func TestFileSync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open(missing) error = %v", err)
	}
	if last, _ := f.Last(); last != 0 {
		t.Fatalf("new file Last() = %d", last)
	}
	f.Append(0, []byte("hello"))
	f.Append(1, []byte("world"))
	if err := f.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello\nworld\n" {
		t.Errorf("file = %q", data)
	}
	if f.Dirty() {
		t.Error("Dirty() = true after Sync")
	}

	g, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Lines(); len(got) != 2 || got[1] != "world" {
		t.Errorf("reopened lines = %v", got)
	}
}

func TestOpenDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("Open(directory) succeeded")
	}
}
