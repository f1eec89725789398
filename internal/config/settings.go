package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// DefaultBackend is the slot backend used when none is configured.
	DefaultBackend = "file"

	// DefaultPageSize matches the number of workouts shown per page.
	DefaultPageSize = 12

	// DefaultAddr is the listen address of the web UI.
	DefaultAddr = ":8080"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	Paths Paths

	// Backend names the slot backend: memory, file, billy, git, sqlite, postgres.
	Backend string

	// PostgresDSN is the connection string of the postgres backend.
	PostgresDSN string

	// PageSize is the number of workouts per page.
	PageSize int

	// Addr is the listen address of `workoutlog serve`.
	Addr string
}

// Load resolves settings from the environment:
//   - WORKOUTLOG_ROOT: data directory
//   - WORKOUTLOG_BACKEND: slot backend
//   - WORKOUTLOG_POSTGRES_DSN: postgres connection string
//   - WORKOUTLOG_PAGE_SIZE: workouts per page
//   - WORKOUTLOG_ADDR: web listen address
func Load() (*Settings, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Paths:       *paths,
		Backend:     envOr("WORKOUTLOG_BACKEND", DefaultBackend),
		PostgresDSN: os.Getenv("WORKOUTLOG_POSTGRES_DSN"),
		PageSize:    DefaultPageSize,
		Addr:        envOr("WORKOUTLOG_ADDR", DefaultAddr),
	}

	if v := os.Getenv("WORKOUTLOG_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid WORKOUTLOG_PAGE_SIZE %q: must be a positive integer", v)
		}
		s.PageSize = n
	}

	return s, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
