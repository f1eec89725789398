package slot

import (
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/danieljhkim/workoutlog/internal/clock"
	"github.com/danieljhkim/workoutlog/internal/config"
	"github.com/danieljhkim/workoutlog/internal/fsops"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendBilly    = "billy"
	BackendGit      = "git"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Backends lists the accepted backend names.
var Backends = []string{
	BackendMemory,
	BackendFile,
	BackendBilly,
	BackendGit,
	BackendSQLite,
	BackendPostgres,
}

// Open builds the backend named by s.Backend.
func Open(s *config.Settings, clk clock.Clock) (Slot, error) {
	switch s.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(fsops.NewRealFS(), s.Paths.Slots)
	case BackendBilly:
		return NewBilly(osfs.New(s.Paths.Slots)), nil
	case BackendGit:
		return NewGit(osfs.New(s.Paths.History), clk)
	case BackendSQLite:
		return NewSQLite(s.Paths.Database)
	case BackendPostgres:
		return NewPostgres(s.PostgresDSN)
	default:
		return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownBackend, s.Backend, Backends)
	}
}
