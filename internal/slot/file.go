package slot

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/workoutlog/internal/fsops"
)

// File stores each key as <dir>/<key>.json.
type File struct {
	fs  fsops.FS
	dir string
}

// NewFile creates a File slot rooted at dir.
func NewFile(fs fsops.FS, dir string) (*File, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create slot directory %s: %w", dir, err)
	}
	return &File{fs: fs, dir: dir}, nil
}

func (f *File) path(key string) (string, error) {
	if err := f.fs.ValidateIdentifier(key); err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidKey, key, err)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *File) Get(key string) ([]byte, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, false, err
	}

	exists, err := f.fs.Exists(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to stat slot file: %w", err)
	}
	if !exists {
		return nil, false, nil
	}

	data, err := f.fs.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot file: %w", err)
	}
	return data, true, nil
}

func (f *File) Set(key string, data []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	if err := f.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write slot file: %w", err)
	}
	return nil
}
