// Package server exposes plant layouts and saved designs over HTTP.
//
// Routes are served by a chi router. Callers are identified by the
// X-Owner-ID header, which an upstream gateway sets after authenticating
// the request; admin routes additionally require the stored user to hold
// the admin role. The /api/live WebSocket streams a fresh scene for every
// parameter snapshot a client sends.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/design"
	"github.com/plantforge/plantforge/pkg/pipeline"
)

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
	maxBodyBytes      = 1 << 20
)

// Config configures a Server.
type Config struct {
	// Designs serves the design, profile and admin routes.
	Designs *design.Service

	// Runner computes layouts and renders artifacts.
	Runner *pipeline.Runner

	// StylePolicy is "default" or "reject" and governs unknown layout styles
	// on the stateless layout routes and the live stream.
	StylePolicy string

	// Tuning overrides the layout constants. Nil uses the defaults.
	Tuning *plant.Tuning

	// Gatherer backs /metrics. Nil leaves the route unmounted.
	Gatherer prometheus.Gatherer

	Logger *log.Logger
}

// Server is the PlantForge HTTP service.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New builds a Server and its routes.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.instrument)

	if s.cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Get("/live", s.handleLive)

		r.Group(func(r chi.Router) {
			r.Use(s.requireOwner)

			r.Route("/designs", func(r chi.Router) {
				r.Get("/", s.handleListDesigns)
				r.Post("/", s.handleCreateDesign)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetDesign)
					r.Patch("/", s.handleUpdateDesign)
					r.Delete("/", s.handleDeleteDesign)
					r.Get("/layout", s.handleDesignLayout)
				})
			})

			r.Get("/user/profile", s.handleGetProfile)
			r.Patch("/user/profile", s.handleUpdateProfile)

			r.Route("/admin", func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/users", s.handleAdminUsers)
				r.Get("/designs", s.handleAdminDesigns)
				r.Get("/analytics", s.handleAdminAnalytics)
				r.Delete("/users/{id}", s.handleAdminDeleteUser)
				r.Delete("/designs/{id}", s.handleAdminDeleteDesign)
			})
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// pipelineOptions returns pipeline options for raw with the server's
// layout configuration applied.
func (s *Server) pipelineOptions(raw plant.RawParams) pipeline.Options {
	return pipeline.Options{
		Params:      raw,
		StylePolicy: s.cfg.StylePolicy,
		Tuning:      s.cfg.Tuning,
	}
}
