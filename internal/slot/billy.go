package slot

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	billyutil "github.com/go-git/go-billy/v5/util"
)

// Billy stores each key as <key>.json at the root of a billy filesystem.
type Billy struct {
	fs billy.Filesystem
}

// NewBilly creates a Billy slot on fs (osfs.New(dir), memfs.New(), ...).
func NewBilly(fs billy.Filesystem) *Billy {
	return &Billy{fs: fs}
}

func fileName(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return key + ".json", nil
}

func (b *Billy) Get(key string) ([]byte, bool, error) {
	name, err := fileName(key)
	if err != nil {
		return nil, false, err
	}

	data, err := billyutil.ReadFile(b.fs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	return data, true, nil
}

func (b *Billy) Set(key string, data []byte) error {
	name, err := fileName(key)
	if err != nil {
		return err
	}

	// Readers never observe a partially written list.
	tmp := "." + name + ".tmp"
	if err := billyutil.WriteFile(b.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := b.fs.Rename(tmp, name); err != nil {
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
