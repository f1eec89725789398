// Package web serves the workout log as a single HTML page: the add form,
// the month calendar and the paginated list with per-entry delete.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/danieljhkim/workoutlog/internal/calendar"
	"github.com/danieljhkim/workoutlog/internal/clock"
	"github.com/danieljhkim/workoutlog/internal/workout"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server renders the workout log over HTTP.
type Server struct {
	store    *workout.Store
	clock    clock.Clock
	pageSize int
	tmpl     *template.Template
}

// New creates a Server for store. A non-positive pageSize uses the default.
func New(store *workout.Store, clk clock.Clock, pageSize int) (*Server, error) {
	if pageSize <= 0 {
		pageSize = workout.DefaultPageSize
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		store:    store,
		clock:    clk,
		pageSize: pageSize,
		tmpl:     tmpl,
	}, nil
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/workouts", s.handleAdd)
	r.Post("/workouts/{index}/delete", s.handleDelete)

	r.Route("/api", func(r chi.Router) {
		r.Get("/workouts", s.handleListJSON)
		r.Get("/dates", s.handleDatesJSON)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("workoutlog listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// view is the navigation state carried through forms and redirects.
type view struct {
	Page  int
	Month string
}

func (v view) query() string {
	q := "/?page=" + strconv.Itoa(v.Page)
	if v.Month != "" {
		q += "&month=" + v.Month
	}
	return q
}

// pageData is the template data of the index page.
type pageData struct {
	Page     workout.Page
	Calendar calendar.MonthView
	Weekdays [7]string
	Alert    string
	Form     workout.Workout
	View     view
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("failed to render page: %v", err)
	}
}
