package linestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a Memory store bound to a path on disk.
type File struct {
	*Memory
	path string
	mode fs.FileMode
}

// Open reads path into a new File. A missing file yields an empty store
// that will be created on the first Sync.
func Open(path string) (*File, error) {
	f := &File{Memory: NewMemory(), path: path, mode: 0o644}

	fp, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fp.Close()

	if info, err := fp.Stat(); err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("open %s: is a directory", path)
		}
		f.mode = info.Mode().Perm()
	}
	if _, err := f.ReadFrom(fp); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Path returns the file's path.
func (f *File) Path() string { return f.path }

// Sync writes the lines to disk if they changed. The file is written to a
// temporary file in the same directory and renamed into place.
func (f *File) Sync() error {
	if !f.Dirty() {
		return nil
	}
	return f.WriteFile(f.path)
}

// WriteFile writes the lines to path and marks the store clean.
func (f *File) WriteFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { os.Remove(tmpName) }

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, f.mode); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	f.MarkClean()
	return nil
}
