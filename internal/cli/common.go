package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/workoutlog/internal/clock"
	"github.com/danieljhkim/workoutlog/internal/config"
	"github.com/danieljhkim/workoutlog/internal/slot"
	"github.com/danieljhkim/workoutlog/internal/workout"
)

// appClock supplies "today"; tests replace it.
var appClock clock.Clock = &clock.RealClock{}

// rootOptions holds the global flags.
type rootOptions struct {
	jsonOutput bool
	backend    string
	root       string
}

// settings resolves configuration from the environment, then applies flags.
func (o *rootOptions) settings() (*config.Settings, error) {
	s, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if o.root != "" {
		s.Paths = *config.PathsAt(o.root)
	}
	if o.backend != "" {
		s.Backend = o.backend
	}
	return s, nil
}

// session is an opened store together with its backend.
type session struct {
	store    *workout.Store
	slot     slot.Slot
	settings *config.Settings
}

func (s *session) Close() error {
	return slot.Close(s.slot)
}

// openSession opens the configured backend and loads the workout list.
func (o *rootOptions) openSession(cmd *cobra.Command) (*session, error) {
	s, err := o.settings()
	if err != nil {
		return nil, err
	}

	if err := s.Paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	sl, err := slot.Open(s, appClock)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", s.Backend, err)
	}

	store := workout.NewStore(sl)
	if lerr := store.LoadError(); lerr != nil {
		PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("Ignoring unreadable workout data: %v", lerr))
	}

	return &session{store: store, slot: sl, settings: s}, nil
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
