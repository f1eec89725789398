package slot

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	gogitfs "github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/danieljhkim/workoutlog/internal/clock"
)

// Revision is one commit of the git slot.
type Revision struct {
	Hash    string    `json:"hash"`
	When    time.Time `json:"when"`
	Message string    `json:"message"`
}

// Historian is implemented by backends that keep past versions.
type Historian interface {
	History(limit int) ([]Revision, error)
}

// History returns the newest-first revisions of s, or ErrNoHistory.
func History(s Slot, limit int) ([]Revision, error) {
	h, ok := s.(Historian)
	if !ok {
		return nil, ErrNoHistory
	}
	return h.History(limit)
}

// Git is a Billy slot whose directory is a git repository. Every Set is
// committed, so the log of the repository is the edit history of the slot.
type Git struct {
	*Billy
	repo  *gogit.Repository
	clock clock.Clock
}

// NewGit opens the repository at the root of fs, initializing it if needed.
func NewGit(fs billy.Filesystem, clk clock.Clock) (*Git, error) {
	if err := fs.MkdirAll(".git", 0o755); err != nil {
		return nil, fmt.Errorf("create .git dir: %w", err)
	}
	dotGitFS, err := fs.Chroot(".git")
	if err != nil {
		return nil, fmt.Errorf("chroot .git dir: %w", err)
	}

	storage := gogitfs.NewStorage(dotGitFS, cache.NewObjectLRUDefault())

	repo, err := gogit.Init(storage, fs)
	if errors.Is(err, gogit.ErrRepositoryAlreadyExists) {
		repo, err = gogit.Open(storage, fs)
	}
	if err != nil {
		return nil, fmt.Errorf("open git slot: %w", err)
	}

	return &Git{Billy: NewBilly(fs), repo: repo, clock: clk}, nil
}

// Set writes data and commits it. If staging or committing fails, the
// previous contents are put back so the slot still holds the last
// committed value.
func (g *Git) Set(key string, data []byte) error {
	prev, existed, err := g.Billy.Get(key)
	if err != nil {
		return err
	}

	if err := g.Billy.Set(key, data); err != nil {
		return err
	}

	if err := g.commit(key); err != nil {
		if rerr := g.restore(key, prev, existed); rerr != nil {
			return fmt.Errorf("%w (restore failed: %v)", err, rerr)
		}
		return err
	}
	return nil
}

func (g *Git) commit(key string) error {
	w, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	name := key + ".json"
	if _, err := w.Add(name); err != nil {
		return fmt.Errorf("failed to stage %s: %w", name, err)
	}

	_, err = w.Commit(
		fmt.Sprintf("Update %s", key),
		&gogit.CommitOptions{
			Author: &object.Signature{
				Name:  "workoutlog",
				Email: "workoutlog@localhost",
				When:  g.clock.Now(),
			},
		},
	)
	if err != nil && !errors.Is(err, gogit.ErrEmptyCommit) {
		return fmt.Errorf("failed to commit %s: %w", name, err)
	}
	return nil
}

func (g *Git) restore(key string, prev []byte, existed bool) error {
	if existed {
		return g.Billy.Set(key, prev)
	}
	err := g.fs.Remove(key + ".json")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// History returns up to limit commits, newest first. limit <= 0 means all.
func (g *Git) History(limit int) ([]Revision, error) {
	head, err := g.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	iter, err := g.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	var revs []Revision
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(revs) >= limit {
			return storer.ErrStop
		}
		revs = append(revs, Revision{
			Hash:    c.Hash.String(),
			When:    c.Author.When,
			Message: strings.TrimSpace(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk log: %w", err)
	}
	return revs, nil
}
