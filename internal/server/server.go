// Package server exposes the release dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rokucommunity/release-dashboard/pkg/projects"
	"github.com/rokucommunity/release-dashboard/pkg/render"
	"github.com/rokucommunity/release-dashboard/pkg/status"
)

const (
	// DefaultStatusTTL is how long a collected status snapshot is served
	// before the next request triggers a new collection.
	DefaultStatusTTL = time.Minute

	shutdownTimeout = 5 * time.Second
)

// Server serves the registry, release statuses and dependency graph.
type Server struct {
	router    chi.Router
	collector *status.Collector
	logger    *log.Logger
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	snapshot []*status.ProjectStatus
	takenAt  time.Time

	svgMu sync.Mutex
	svg   *render.SVGRenderer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStatusTTL sets how long a status snapshot is reused. Zero collects
// on every request.
func WithStatusTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

// New creates a server backed by collector.
func New(collector *status.Collector, opts ...Option) *Server {
	s := &Server{
		collector: collector,
		logger:    log.Default(),
		ttl:       DefaultStatusTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(accessLog(s.logger))

	r.Get("/healthz", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.listProjects)
		r.Get("/projects/order", s.releaseOrder)
		r.Get("/status", s.projectStatus)
		r.Get("/graph.svg", s.graph)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.logger, notFound(r.URL.Path))
	})
	s.router = r
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Registry returns the registry being served.
func (s *Server) Registry() *projects.Registry { return s.collector.Registry() }

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer s.closeRenderer()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// statuses returns the current snapshot, collecting a new one when it is
// missing, stale or refresh is set.
func (s *Server) statuses(ctx context.Context, refresh bool) ([]*status.ProjectStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !refresh && s.snapshot != nil && s.now().Sub(s.takenAt) < s.ttl {
		return s.snapshot, nil
	}
	got, err := s.collector.Collect(ctx, nil)
	if err != nil {
		return nil, err
	}
	s.snapshot, s.takenAt = got, s.now()
	return got, nil
}

// renderSVG lays out dot with a renderer shared across requests, started on
// first use.
func (s *Server) renderSVG(ctx context.Context, dot string) ([]byte, error) {
	s.svgMu.Lock()
	if s.svg == nil {
		r, err := render.NewSVGRenderer(context.WithoutCancel(ctx))
		if err != nil {
			s.svgMu.Unlock()
			return nil, err
		}
		s.svg = r
	}
	r := s.svg
	s.svgMu.Unlock()
	return r.Render(ctx, dot)
}

func (s *Server) closeRenderer() {
	s.svgMu.Lock()
	defer s.svgMu.Unlock()
	if s.svg != nil {
		s.svg.Close()
		s.svg = nil
	}
}
