// Package workout holds the workout log: the Workout record, the Store that
// keeps the ordered list in sync with its persisted slot, and the pure
// pagination helpers used by the front-ends.
package workout

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format of Workout.Date.
const DateLayout = "2006-01-02"

// ErrValidation indicates a workout was rejected before being added.
var ErrValidation = errors.New("validation failed")

// Workout is a single logged (date, description) pair.
type Workout struct {
	// Date is the calendar day of the workout, "YYYY-MM-DD".
	Date string `json:"date"`

	// Description is free text describing the workout.
	Description string `json:"description"`
}

// ValidationError reports which required fields were empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("both fields are required: missing %v", e.Fields)
}

// Is makes errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks that both fields are non-empty.
func (w Workout) Validate() error {
	var missing []string
	if w.Date == "" {
		missing = append(missing, "date")
	}
	if w.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Day parses Date as a UTC calendar day.
func (w Workout) Day() (time.Time, error) {
	return ParseDate(w.Date)
}

// ParseDate parses a "YYYY-MM-DD" string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DateSet is the set of calendar days that have at least one workout,
// keyed by their "YYYY-MM-DD" form.
type DateSet map[string]struct{}

// Has reports whether any workout was logged on the calendar day of t.
func (s DateSet) Has(t time.Time) bool {
	_, ok := s[t.Format(DateLayout)]
	return ok
}

// Days returns the set members as UTC midnights, in no particular order.
func (s DateSet) Days() []time.Time {
	days := make([]time.Time, 0, len(s))
	for key := range s {
		day, err := time.Parse(DateLayout, key)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	return days
}
