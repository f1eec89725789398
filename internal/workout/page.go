package workout

// DefaultPageSize is the number of workouts shown per page.
const DefaultPageSize = 12

// PageCount returns ceil(total/pageSize). A non-positive page size has no pages.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns items[pageIndex*pageSize : (pageIndex+1)*pageSize],
// clamped to the bounds of items.
func Paginate[T any](items []T, pageSize, pageIndex int) []T {
	if pageSize <= 0 || pageIndex < 0 {
		return nil
	}
	start := pageIndex * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ClampPage keeps page within [0, pageCount-1]; with no pages it is 0.
func ClampPage(page, pageCount int) int {
	if page >= pageCount {
		page = pageCount - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}

// Entry is a workout together with its index in the full list. Deletes
// must use Index, never the position on the page.
type Entry struct {
	Index int `json:"index"`
	Workout
}

// Page is one page of the workout list.
type Page struct {
	Index   int     `json:"page"`
	Count   int     `json:"pages"`
	Size    int     `json:"pageSize"`
	Total   int     `json:"total"`
	Entries []Entry `json:"entries"`
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Index > 0 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Index < p.Count-1 }

// Number is the 1-based page number for display.
func (p Page) Number() int { return p.Index + 1 }

// PageOf builds page pageIndex (clamped) of workouts.
func PageOf(workouts []Workout, pageSize, pageIndex int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	count := PageCount(len(workouts), pageSize)
	pageIndex = ClampPage(pageIndex, count)

	items := Paginate(workouts, pageSize, pageIndex)
	entries := make([]Entry, len(items))
	for i, w := range items {
		entries[i] = Entry{Index: pageIndex*pageSize + i, Workout: w}
	}

	return Page{
		Index:   pageIndex,
		Count:   count,
		Size:    pageSize,
		Total:   len(workouts),
		Entries: entries,
	}
}
