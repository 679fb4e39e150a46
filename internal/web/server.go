// Package web serves the browser UI and JSON API for poster generation.
//
// Routes:
//
//	GET  /                 page with palette and style selects
//	GET  /poster.png       rendered poster (palette, style, seed, width query)
//	GET  /poster.svg       same, as SVG
//	GET  /api/v1/palettes  palette catalog
//	GET  /api/v1/styles    style profiles
//	POST /api/v1/posters   compose a poster, respond with its layers
//	GET  /healthz          liveness
//	GET  /metrics          Prometheus metrics, when enabled
//
// Images are generated per request and never stored.
package web

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/pipeline"
)

// Server holds the handler dependencies.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	metrics  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the poster options used when a request leaves a field
// empty.
func WithDefaults(o pipeline.Options) Option { return func(s *Server) { s.defaults = o } }

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option { return func(s *Server) { s.metrics = h } }

// NewServer creates a server backed by runner.
func NewServer(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{runner: runner, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(s.logger)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/poster.png", s.handlePoster(pipeline.FormatPNG))
	r.Get("/poster.svg", s.handlePoster(pipeline.FormatSVG))
	r.Get("/healthz", handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/palettes", handlePalettes)
		r.Get("/styles", handleStyles)
		r.Post("/posters", s.handleCreatePoster)
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, string(errors.ErrCodeNotFound), "not found")
	})
	return r
}
