package workout

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/danieljhkim/workoutlog/internal/slot"
)

// DefaultKey is the slot key holding the serialized workout list.
const DefaultKey = "workouts"

// Store holds the ordered workout list and rewrites the whole list to its
// slot after every mutation.
type Store struct {
	mu       sync.Mutex
	slot     slot.Slot
	key      string
	workouts []Workout
	loadErr  error
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the slot key (default "workouts").
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// NewStore creates a Store backed by sl and loads the persisted list.
// Absent, unreadable, or corrupt data leaves the store empty; the cause is
// kept in LoadError.
func NewStore(sl slot.Slot, opts ...Option) *Store {
	s := &Store{
		slot: sl,
		key:  DefaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.workouts, s.loadErr = s.load()
	return s
}

func (s *Store) load() ([]Workout, error) {
	data, ok, err := s.slot.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", s.key, err)
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}

	var workouts []Workout
	if err := json.Unmarshal(data, &workouts); err != nil {
		return nil, fmt.Errorf("failed to parse slot %q: %w", s.key, err)
	}
	return workouts, nil
}

// LoadError returns why the persisted list could not be loaded, or nil.
func (s *Store) LoadError() error {
	return s.loadErr
}

// Add validates and appends a workout, then persists the full list.
func (s *Store) Add(date, description string) error {
	w := Workout{Date: date, Description: description}
	if err := w.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Workout, len(s.workouts), len(s.workouts)+1)
	copy(next, s.workouts)
	next = append(next, w)

	return s.commit(next)
}

// Delete removes the entry at index of the full list and persists the
// result. An out-of-range index leaves the list unchanged.
func (s *Store) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Workout, 0, len(s.workouts))
	for i, w := range s.workouts {
		if i != index {
			next = append(next, w)
		}
	}

	return s.commit(next)
}

// commit persists next and swaps it in; on failure the list is untouched.
func (s *Store) commit(next []Workout) error {
	if next == nil {
		next = []Workout{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal workouts: %w", err)
	}
	if err := s.slot.Set(s.key, data); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", s.key, err)
	}

	s.workouts = next
	return nil
}

// List returns a copy of the current list in insertion order.
func (s *Store) List() []Workout {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Workout, len(s.workouts))
	copy(out, s.workouts)
	return out
}

// Len returns the number of workouts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workouts)
}

// DatesWithWorkouts returns the days that have at least one workout.
// Entries whose date does not parse are skipped.
func (s *Store) DatesWithWorkouts() DateSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(DateSet, len(s.workouts))
	for _, w := range s.workouts {
		day, err := w.Day()
		if err != nil {
			continue
		}
		set[day.Format(DateLayout)] = struct{}{}
	}
	return set
}
