// Package calendar lays out month grids and marks the days that have
// workouts logged on them.
//
// Logged days are kept in an interval search tree, one closed interval per
// day, so a month (or any other range) is answered with a single
// intersection query instead of a scan of the whole log.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/rdleal/intervalst/interval"

	"github.com/danieljhkim/workoutlog/internal/workout"
)

// MonthLayout is the "YYYY-MM" form used to select a month.
const MonthLayout = "2006-01"

// Index answers which logged days fall within a time range.
type Index struct {
	tree *interval.SearchTree[time.Time, time.Time]
	days []time.Time
}

// NewIndex indexes the days in dates.
func NewIndex(dates workout.DateSet) *Index {
	idx := &Index{
		tree: interval.NewSearchTree[time.Time](func(x, y time.Time) int { return x.Compare(y) }),
	}
	for _, day := range dates.Days() {
		start, end := dayBounds(day)
		if err := idx.tree.Insert(start, end, start); err != nil {
			continue
		}
		idx.days = append(idx.days, start)
	}
	sort.Slice(idx.days, func(i, j int) bool { return idx.days[i].Before(idx.days[j]) })
	return idx
}

// Len returns the number of indexed days.
func (idx *Index) Len() int {
	return len(idx.days)
}

// All returns every indexed day, ascending.
func (idx *Index) All() []time.Time {
	out := make([]time.Time, len(idx.days))
	copy(out, idx.days)
	return out
}

// dayBounds returns the closed interval covering the UTC day of t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Between returns the logged days in [from, to), ascending.
func (idx *Index) Between(from, to time.Time) []time.Time {
	if !from.Before(to) {
		return nil
	}
	hits, ok := idx.tree.AllIntersections(from, to.Add(-time.Nanosecond))
	if !ok {
		return nil
	}

	days := make([]time.Time, 0, len(hits))
	for _, day := range hits {
		if _, end := dayBounds(day); end.Before(from) || !day.Before(to) {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Day is one cell of a month grid.
type Day struct {
	Date        time.Time `json:"date"`
	InMonth     bool      `json:"inMonth"`
	Highlighted bool      `json:"highlighted"`
	Today       bool      `json:"today"`
}

// Number is the day of the month.
func (d Day) Number() int { return d.Date.Day() }

// Key is the "YYYY-MM-DD" form of the day.
func (d Day) Key() string { return d.Date.Format(workout.DateLayout) }

// MonthView is a Monday-first grid of whole weeks covering one month.
type MonthView struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Weeks [][7]Day   `json:"weeks"`
}

// FirstOfMonth returns midnight UTC of the first day of year/month.
func FirstOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// Month lays out the grid for year/month. Every logged day visible in the
// grid is highlighted, including the spill-over days of adjacent months.
func (idx *Index) Month(year int, month time.Month, today time.Time) MonthView {
	first := FirstOfMonth(year, month)
	offset := (int(first.Weekday()) + 6) % 7
	gridStart := first.AddDate(0, 0, -offset)

	next := first.AddDate(0, 1, 0)
	cells := offset + int(next.Sub(first).Hours()/24)
	weeks := (cells + 6) / 7
	gridEnd := gridStart.AddDate(0, 0, weeks*7)

	logged := make(map[string]bool)
	for _, day := range idx.Between(gridStart, gridEnd) {
		logged[day.Format(workout.DateLayout)] = true
	}

	todayStart, _ := dayBounds(today)
	view := MonthView{Year: first.Year(), Month: first.Month(), Weeks: make([][7]Day, weeks)}
	for w := 0; w < weeks; w++ {
		for d := 0; d < 7; d++ {
			date := gridStart.AddDate(0, 0, w*7+d)
			view.Weeks[w][d] = Day{
				Date:        date,
				InMonth:     date.Month() == first.Month(),
				Highlighted: logged[date.Format(workout.DateLayout)],
				Today:       date.Equal(todayStart),
			}
		}
	}
	return view
}

// Title is the heading of the view, e.g. "January 2024".
func (v MonthView) Title() string {
	return fmt.Sprintf("%s %d", v.Month, v.Year)
}

// Param is the "YYYY-MM" form of the month.
func (v MonthView) Param() string {
	return v.first().Format(MonthLayout)
}

// Prev is the "YYYY-MM" form of the previous month.
func (v MonthView) Prev() string {
	return v.first().AddDate(0, -1, 0).Format(MonthLayout)
}

// Next is the "YYYY-MM" form of the following month.
func (v MonthView) Next() string {
	return v.first().AddDate(0, 1, 0).Format(MonthLayout)
}

// Highlighted returns the highlighted days of the grid, ascending.
func (v MonthView) Highlighted() []Day {
	var days []Day
	for _, week := range v.Weeks {
		for _, d := range week {
			if d.Highlighted {
				days = append(days, d)
			}
		}
	}
	return days
}

func (v MonthView) first() time.Time {
	return FirstOfMonth(v.Year, v.Month)
}

// ParseMonth parses "YYYY-MM". An empty string selects the month of today.
func ParseMonth(s string, today time.Time) (int, time.Month, error) {
	if s == "" {
		return today.Year(), today.Month(), nil
	}
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}

// Weekdays are the column headings of a Monday-first grid.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
