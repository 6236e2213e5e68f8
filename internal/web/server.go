// Package web exposes the scheduling pipeline over HTTP.
//
// The API is a thin shell around pipeline.Runner: it decodes a plan and
// options from the request body, runs the pipeline, and encodes the result.
// All scheduling semantics live in the engine packages; handlers only map
// error codes to status codes.
package web

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/CursiveCrow/cadence/pkg/pipeline"
	"github.com/CursiveCrow/cadence/pkg/store"
)

// Server is the HTTP API server.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// NewServer creates a server around a pipeline runner and a schedule store.
// A nil store disables the saved-schedule endpoints (they return 404).
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/schedule", s.handleSchedule)
		r.Post("/render", s.handleRender)

		if s.store != nil {
			r.Route("/schedules", func(r chi.Router) {
				r.Post("/", s.handleSaveSchedule)
				r.Get("/", s.handleListSchedules)
				r.Get("/{id}", s.handleGetSchedule)
				r.Delete("/{id}", s.handleDeleteSchedule)
			})
		}
	})

	s.router = r
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server on addr until the listener fails.
// Timeouts are set so that a stalled client cannot hold a connection open
// indefinitely.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.logger.Info("listening", "addr", addr)
	return srv.ListenAndServe()
}
