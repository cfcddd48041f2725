package app

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/vicore/internal/engine"
	"github.com/dshills/vicore/internal/engine/linestore"
)

// Document is an open file and the mutator editing it.
type Document struct {
	ID   uuid.UUID
	Name string

	file    *linestore.File
	mem     *linestore.Memory
	mutator *engine.Mutator
}

// Store returns the document's lines.
func (d *Document) Store() linestore.Store {
	if d.file != nil {
		return d.file
	}
	return d.mem
}

// Lines returns a copy of every line.
func (d *Document) Lines() []string {
	if d.file != nil {
		return d.file.Lines()
	}
	return d.mem.Lines()
}

// Path returns the backing file, or "" for a scratch document.
func (d *Document) Path() string {
	if d.file != nil {
		return d.file.Path()
	}
	return ""
}

// Modified reports whether the document has unsaved changes.
func (d *Document) Modified() bool {
	if d.file != nil {
		return d.file.Dirty()
	}
	return d.mem.Dirty()
}

// Mutator returns the mutator editing the document.
func (d *Document) Mutator() *engine.Mutator { return d.mutator }

// Save writes a modified file-backed document. Scratch documents have
// nowhere to go and are skipped.
func (d *Document) Save() error {
	if d.file == nil {
		return nil
	}
	if err := d.file.Sync(); err != nil {
		return &FileError{Op: "save", Path: d.file.Path(), Err: err}
	}
	return nil
}

func openDocument(path string, opts ...engine.Option) (*Document, error) {
	f, err := linestore.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	return &Document{
		ID:      uuid.New(),
		Name:    filepath.Base(path),
		file:    f,
		mutator: engine.NewMutator(f, opts...),
	}, nil
}

func scratchDocument(lines []string, opts ...engine.Option) *Document {
	m := linestore.FromStrings(lines...)
	return &Document{
		ID:      uuid.New(),
		Name:    "Untitled",
		mem:     m,
		mutator: engine.NewMutator(m, opts...),
	}
}
