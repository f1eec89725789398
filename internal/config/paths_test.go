package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	t.Run("returns paths based on home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("WORKOUTLOG_ROOT", "")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root != filepath.Join(home, ".workoutlog") {
			t.Errorf("Root = %s, want %s", paths.Root, filepath.Join(home, ".workoutlog"))
		}
		if paths.Slots != filepath.Join(paths.Root, "slots") {
			t.Errorf("Slots path incorrect: got %s", paths.Slots)
		}
		if paths.History != filepath.Join(paths.Root, "history") {
			t.Errorf("History path incorrect: got %s", paths.History)
		}
		if paths.Database != filepath.Join(paths.Root, "workoutlog.db") {
			t.Errorf("Database path incorrect: got %s", paths.Database)
		}
	})

	t.Run("respects WORKOUTLOG_ROOT", func(t *testing.T) {
		customRoot := "/custom/workoutlog/path"
		t.Setenv("WORKOUTLOG_ROOT", customRoot)

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root != customRoot {
			t.Errorf("Expected root %s, got %s", customRoot, paths.Root)
		}
		if paths.Slots != filepath.Join(customRoot, "slots") {
			t.Errorf("Slots should be under custom root, got: %s", paths.Slots)
		}
	})
}

func TestEnsureDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	paths := PathsAt(root)

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	// Idempotent.
	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("second EnsureDirectories failed: %v", err)
	}

	for _, dir := range []string{paths.Root, paths.Slots, paths.History} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("expected %s to exist: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", dir)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("WORKOUTLOG_ROOT", t.TempDir())
		t.Setenv("WORKOUTLOG_BACKEND", "")
		t.Setenv("WORKOUTLOG_PAGE_SIZE", "")
		t.Setenv("WORKOUTLOG_ADDR", "")

		s, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.Backend != DefaultBackend {
			t.Errorf("Backend = %q, want %q", s.Backend, DefaultBackend)
		}
		if s.PageSize != DefaultPageSize {
			t.Errorf("PageSize = %d, want %d", s.PageSize, DefaultPageSize)
		}
		if s.Addr != DefaultAddr {
			t.Errorf("Addr = %q, want %q", s.Addr, DefaultAddr)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("WORKOUTLOG_ROOT", t.TempDir())
		t.Setenv("WORKOUTLOG_BACKEND", "sqlite")
		t.Setenv("WORKOUTLOG_PAGE_SIZE", "5")
		t.Setenv("WORKOUTLOG_ADDR", "127.0.0.1:9000")
		t.Setenv("WORKOUTLOG_POSTGRES_DSN", "postgres://localhost/workouts")

		s, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.Backend != "sqlite" || s.PageSize != 5 || s.Addr != "127.0.0.1:9000" {
			t.Errorf("unexpected settings: %+v", s)
		}
		if s.PostgresDSN != "postgres://localhost/workouts" {
			t.Errorf("PostgresDSN = %q", s.PostgresDSN)
		}
	})

	t.Run("rejects bad page size", func(t *testing.T) {
		t.Setenv("WORKOUTLOG_ROOT", t.TempDir())
		for _, v := range []string{"zero", "0", "-3"} {
			t.Setenv("WORKOUTLOG_PAGE_SIZE", v)
			if _, err := Load(); err == nil {
				t.Errorf("Load with WORKOUTLOG_PAGE_SIZE=%q should fail", v)
			}
		}
	})
}
