// Package server exposes the tracing pipeline and the contour-set store
// over HTTP.
//
// Routes:
//
//	GET    /healthz          liveness probe
//	POST   /v1/contours      trace a field and return the contours
//	POST   /v1/sets          trace a field and persist the result
//	GET    /v1/sets          list persisted sets
//	GET    /v1/sets/{id}     fetch one persisted set
//	DELETE /v1/sets/{id}     delete one persisted set
//
// Tracing requests carry pipeline options as JSON. The server only
// accepts inline value matrices; file paths are rejected so a request
// can never read from the server's filesystem.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mhersche/isoline/pkg/pipeline"
	"github.com/mhersche/isoline/pkg/store"
)

// Server wires the pipeline runner and the set store into an HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. The runner and store must be non-nil; the
// logger defaults to the package-level default when nil.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/contours", s.handleTrace)
		r.Route("/sets", func(r chi.Router) {
			r.Get("/", s.handleListSets)
			r.Post("/", s.handleCreateSet)
			r.Get("/{id}", s.handleGetSet)
			r.Delete("/{id}", s.handleDeleteSet)
		})
	})
	return r
}

// ListenAndServe runs the server on addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
