package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/danieljhkim/workoutlog/internal/calendar"
	"github.com/danieljhkim/workoutlog/internal/clock"
	"github.com/danieljhkim/workoutlog/internal/workout"
)

const (
	alertRequired = "Both fields are required!"
	alertBadDate  = "Date must be in YYYY-MM-DD format."
)

func viewFrom(values interface{ Get(string) string }) view {
	page, _ := strconv.Atoi(values.Get("page"))
	return view{Page: page, Month: values.Get("month")}
}

// pageFor assembles the index page for v.
func (s *Server) pageFor(v view) (pageData, error) {
	today := clock.Today(s.clock)
	year, month, err := calendar.ParseMonth(v.Month, today)
	if err != nil {
		return pageData{}, err
	}

	page := workout.PageOf(s.store.List(), s.pageSize, v.Page)
	cal := calendar.NewIndex(s.store.DatesWithWorkouts()).Month(year, month, today)

	return pageData{
		Page:     page,
		Calendar: cal,
		Weekdays: calendar.Weekdays,
		View:     view{Page: page.Index, Month: cal.Param()},
	}, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := s.pageFor(viewFrom(r.URL.Query()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	v := viewFrom(r.PostForm)
	form := workout.Workout{
		Date:        r.PostFormValue("date"),
		Description: r.PostFormValue("description"),
	}

	alert := ""
	err := form.Validate()
	if err == nil {
		if _, perr := workout.ParseDate(form.Date); perr != nil {
			alert = alertBadDate
		} else {
			err = s.store.Add(form.Date, form.Description)
		}
	}
	switch {
	case errors.Is(err, workout.ErrValidation):
		alert = alertRequired
	case err == nil:
	default:
		log.Printf("failed to add workout: %v", err)
		http.Error(w, "failed to save workout", http.StatusInternalServerError)
		return
	}

	if alert == "" {
		http.Redirect(w, r, v.query(), http.StatusSeeOther)
		return
	}

	data, perr := s.pageFor(v)
	if perr != nil {
		http.Error(w, perr.Error(), http.StatusBadRequest)
		return
	}
	data.Alert = alert
	data.Form = form
	s.render(w, http.StatusUnprocessableEntity, data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid workout index", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if err := s.store.Delete(index); err != nil {
		log.Printf("failed to delete workout %d: %v", index, err)
		http.Error(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, viewFrom(r.PostForm).query(), http.StatusSeeOther)
}

func (s *Server) handleListJSON(w http.ResponseWriter, r *http.Request) {
	v := viewFrom(r.URL.Query())
	respondJSON(w, workout.PageOf(s.store.List(), s.pageSize, v.Page), http.StatusOK)
}

func (s *Server) handleDatesJSON(w http.ResponseWriter, r *http.Request) {
	set := s.store.DatesWithWorkouts()
	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	respondJSON(w, dates, http.StatusOK)
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
