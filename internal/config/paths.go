// Package config resolves workoutlog's filesystem paths and settings.
//
// Everything lives under a single root directory, ~/.workoutlog by default,
// which can be moved with WORKOUTLOG_ROOT. Settings are read from
// WORKOUTLOG_* environment variables; command-line flags override them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by workoutlog.
type Paths struct {
	// Root is the base directory for all workoutlog data (default: ~/.workoutlog)
	Root string

	// Slots holds one JSON file per slot key for the file and billy backends
	Slots string

	// History is the git repository used by the git backend
	History string

	// Database is the SQLite database file used by the sqlite backend
	Database string
}

// DefaultPaths returns the default paths for workoutlog.
// WORKOUTLOG_ROOT overrides the root directory.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("WORKOUTLOG_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".workoutlog")
	}

	return PathsAt(root), nil
}

// PathsAt lays out the paths under root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:     root,
		Slots:    filepath.Join(root, "slots"),
		History:  filepath.Join(root, "history"),
		Database: filepath.Join(root, "workoutlog.db"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		p.Slots,
		p.History,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
