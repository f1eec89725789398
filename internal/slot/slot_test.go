package slot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/danieljhkim/workoutlog/internal/clock"
	"github.com/danieljhkim/workoutlog/internal/config"
	"github.com/danieljhkim/workoutlog/internal/fsops"
)

// backends returns a fresh instance of every backend that runs without
// external services.
func backends(t *testing.T) map[string]Slot {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFile(fsops.NewRealFS(), filepath.Join(dir, "slots"))
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}

	git, err := NewGit(memfs.New(), clock.NewFakeClock(time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("NewGit failed: %v", err)
	}

	sqlite, err := NewSQLite(filepath.Join(dir, "workoutlog.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Slot{
		BackendMemory: NewMemory(),
		BackendFile:   file,
		BackendBilly:  NewBilly(memfs.New()),
		BackendGit:    git,
		BackendSQLite: sqlite,
	}
}

func TestSlot_RoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get("workouts"); err != nil || ok {
				t.Fatalf("Get on empty slot = ok %v, err %v; want absent", ok, err)
			}

			first := []byte(`[{"date":"2024-01-05","description":"Run"}]`)
			if err := s.Set("workouts", first); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			second := []byte(`[{"date":"2024-01-06","description":"Swim"}]`)
			if err := s.Set("workouts", second); err != nil {
				t.Fatalf("second Set failed: %v", err)
			}

			got, ok, err := s.Get("workouts")
			if err != nil || !ok {
				t.Fatalf("Get = ok %v, err %v", ok, err)
			}
			if string(got) != string(second) {
				t.Errorf("Get = %s, want %s", got, second)
			}

			if _, ok, _ := s.Get("other"); ok {
				t.Error("keys should be independent")
			}
		})
	}
}

func TestSlot_RejectsUnsafeKeys(t *testing.T) {
	dir := t.TempDir()
	file, err := NewFile(fsops.NewRealFS(), dir)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}

	fileBacked := map[string]Slot{
		BackendFile:  file,
		BackendBilly: NewBilly(memfs.New()),
	}

	for name, s := range fileBacked {
		for _, key := range []string{"", "..", "../escape", "a/b"} {
			if err := s.Set(key, []byte("[]")); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("%s: Set(%q) error = %v, want ErrInvalidKey", name, key, err)
			}
			if _, _, err := s.Get(key); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("%s: Get(%q) error = %v, want ErrInvalidKey", name, key, err)
			}
		}
	}
}

func TestMemory_FailSet(t *testing.T) {
	m := NewMemory()
	boom := errors.New("disk full")
	m.FailSet = boom

	if err := m.Set("workouts", []byte("[]")); !errors.Is(err, boom) {
		t.Errorf("Set error = %v, want %v", err, boom)
	}
	if _, ok, _ := m.Get("workouts"); ok {
		t.Error("failed Set must not store data")
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	m := NewMemory()
	_ = m.Set("workouts", []byte("[]"))

	got, _, _ := m.Get("workouts")
	got[0] = 'x'

	again, _, _ := m.Get("workouts")
	if string(again) != "[]" {
		t.Errorf("stored value was mutated through Get: %s", again)
	}
}

func TestGit_History(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC))
	g, err := NewGit(memfs.New(), clk)
	if err != nil {
		t.Fatalf("NewGit failed: %v", err)
	}

	revs, err := g.History(0)
	if err != nil {
		t.Fatalf("History on empty repo failed: %v", err)
	}
	if len(revs) != 0 {
		t.Fatalf("expected no revisions, got %d", len(revs))
	}

	payloads := []string{
		`[{"date":"2024-01-05","description":"Run"}]`,
		`[{"date":"2024-01-05","description":"Run"},{"date":"2024-01-06","description":"Swim"}]`,
		`[{"date":"2024-01-06","description":"Swim"}]`,
	}
	for _, p := range payloads {
		if err := g.Set("workouts", []byte(p)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		clk.Advance(time.Hour)
	}

	revs, err = History(g, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(revs) != len(payloads) {
		t.Fatalf("expected %d revisions, got %d", len(payloads), len(revs))
	}
	if !revs[0].When.After(revs[len(revs)-1].When) {
		t.Errorf("revisions should be newest first: %v then %v", revs[0].When, revs[len(revs)-1].When)
	}
	if revs[0].Message != "Update workouts" {
		t.Errorf("Message = %q, want %q", revs[0].Message, "Update workouts")
	}

	limited, err := g.History(2)
	if err != nil {
		t.Fatalf("History(2) failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("History(2) returned %d revisions", len(limited))
	}
}

func TestGit_UnchangedSetIsNotAnError(t *testing.T) {
	g, err := NewGit(memfs.New(), clock.NewFakeClock(time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("NewGit failed: %v", err)
	}

	data := []byte(`[]`)
	if err := g.Set("workouts", data); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := g.Set("workouts", data); err != nil {
		t.Fatalf("Set with identical data failed: %v", err)
	}
}

// brokenGitDir wraps a filesystem so that writes under .git fail while
// *broken is set. The worktree itself stays writable.
type brokenGitDir struct {
	billy.Filesystem
	broken *bool
}

func (b brokenGitDir) Chroot(path string) (billy.Filesystem, error) {
	fs, err := b.Filesystem.Chroot(path)
	if err != nil || path != ".git" {
		return fs, err
	}
	return failingWrites{Filesystem: fs, broken: b.broken}, nil
}

type failingWrites struct {
	billy.Filesystem
	broken *bool
}

var errDiskFull = errors.New("disk full")

func (f failingWrites) Create(name string) (billy.File, error) {
	if *f.broken {
		return nil, errDiskFull
	}
	return f.Filesystem.Create(name)
}

func (f failingWrites) OpenFile(name string, flag int, perm os.FileMode) (billy.File, error) {
	if *f.broken && flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0 {
		return nil, errDiskFull
	}
	return f.Filesystem.OpenFile(name, flag, perm)
}

func (f failingWrites) TempFile(dir, prefix string) (billy.File, error) {
	if *f.broken {
		return nil, errDiskFull
	}
	return f.Filesystem.TempFile(dir, prefix)
}

func TestGit_FailedCommitRestoresPreviousValue(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC))

	t.Run("previous value", func(t *testing.T) {
		broken := false
		g, err := NewGit(brokenGitDir{Filesystem: memfs.New(), broken: &broken}, clk)
		if err != nil {
			t.Fatalf("NewGit failed: %v", err)
		}

		first := []byte(`[{"date":"2024-01-05","description":"Run"}]`)
		if err := g.Set("workouts", first); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		broken = true
		second := []byte(`[{"date":"2024-01-05","description":"Run"},{"date":"2024-01-06","description":"Swim"}]`)
		if err := g.Set("workouts", second); err == nil {
			t.Fatal("Set should fail when the repository cannot be written")
		}

		got, ok, err := g.Get("workouts")
		if err != nil || !ok || string(got) != string(first) {
			t.Errorf("Get after failed Set = %q, %v, %v; want %q", got, ok, err, first)
		}

		broken = false
		revs, err := g.History(0)
		if err != nil || len(revs) != 1 {
			t.Errorf("History after failed Set = %d revisions, err %v; want 1", len(revs), err)
		}

		if err := g.Set("workouts", second); err != nil {
			t.Fatalf("Set after recovery failed: %v", err)
		}
		if got, _, _ := g.Get("workouts"); string(got) != string(second) {
			t.Errorf("Get after recovery = %q, want %q", got, second)
		}
	})

	t.Run("no previous value", func(t *testing.T) {
		broken := false
		g, err := NewGit(brokenGitDir{Filesystem: memfs.New(), broken: &broken}, clk)
		if err != nil {
			t.Fatalf("NewGit failed: %v", err)
		}

		broken = true
		if err := g.Set("workouts", []byte(`[]`)); err == nil {
			t.Fatal("Set should fail when the repository cannot be written")
		}
		if _, ok, err := g.Get("workouts"); err != nil || ok {
			t.Errorf("Get after failed first Set = ok %v, err %v; want absent", ok, err)
		}
	})
}

func TestGit_ReopensExistingRepository(t *testing.T) {
	dir := t.TempDir()
	clk := clock.NewFakeClock(time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC))

	first, err := NewGit(osfs.New(dir), clk)
	if err != nil {
		t.Fatalf("NewGit failed: %v", err)
	}
	if err := first.Set("workouts", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	second, err := NewGit(osfs.New(dir), clk)
	if err != nil {
		t.Fatalf("reopening NewGit failed: %v", err)
	}
	got, ok, err := second.Get("workouts")
	if err != nil || !ok || string(got) != "[]" {
		t.Errorf("Get after reopen = %q, %v, %v", got, ok, err)
	}
	revs, err := second.History(0)
	if err != nil || len(revs) != 1 {
		t.Errorf("History after reopen = %d revisions, err %v", len(revs), err)
	}
}

func TestHistory_UnsupportedBackend(t *testing.T) {
	if _, err := History(NewMemory(), 0); !errors.Is(err, ErrNoHistory) {
		t.Errorf("History(memory) error = %v, want ErrNoHistory", err)
	}
}

func TestOpen(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		backend string
		wantErr error
	}{
		{backend: BackendMemory},
		{backend: BackendFile},
		{backend: BackendBilly},
		{backend: BackendGit},
		{backend: BackendSQLite},
		{backend: "redis", wantErr: ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			paths := config.PathsAt(t.TempDir())
			if err := paths.EnsureDirectories(); err != nil {
				t.Fatalf("EnsureDirectories failed: %v", err)
			}
			s, err := Open(&config.Settings{Paths: *paths, Backend: tt.backend}, clk)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Open error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer Close(s)

			if err := s.Set("workouts", []byte("[]")); err != nil {
				t.Errorf("Set failed: %v", err)
			}
		})
	}
}

func TestOpen_PostgresRequiresDSN(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	_, err := Open(&config.Settings{Paths: *paths, Backend: BackendPostgres}, &clock.RealClock{})
	if err == nil {
		t.Fatal("Open(postgres) without a DSN should fail")
	}
}
