// Package server exposes the planner over HTTP.
//
// Routes:
//
//	GET  /healthz               liveness and build version
//	POST /api/room              compose a room, returns the layout as JSON
//	POST /api/room/render       compose and render (?format=svg|json|png)
//	POST /api/wall              place one wall from inline module lists
//	POST /api/measure           measure one rectangle
//	POST /api/place             forward an ad-hoc placement to the catalog
//
// Errors are JSON objects {"code", "message"}. Configuration and input
// errors map to 400, NOT_FOUND to 404, upstream failures to 502 and
// everything else to 500.
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

	"github.com/cabinext/cabinext/pkg/catalog"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/pipeline"
)

// Server limits.
const (
	maxBodyBytes    = 1 << 20
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Placer forwards ad-hoc placements. *catalog.Client implements it.
type Placer interface {
	PlaceCabinet(ctx context.Context, req catalog.PlaceRequest) (catalog.PlacedCabinet, error)
}

var _ Placer = (*catalog.Client)(nil)

// Config configures a [Server].
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Placer Placer         // nil disables /api/place
	Engine *layout.Config // engine constants for /api/wall and /api/measure; nil uses defaults
	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	addr   string
	runner *pipeline.Runner
	placer Placer
	engine layout.Config
	logger *log.Logger
	router chi.Router
}

// New builds the router. cfg.Runner is required.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	engine := layout.DefaultConfig()
	if cfg.Engine != nil {
		engine = *cfg.Engine
	}
	s := &Server{
		addr:   cfg.Addr,
		runner: cfg.Runner,
		placer: cfg.Placer,
		engine: engine,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/room", s.handleRoom)
		r.Post("/room/render", s.handleRender)
		r.Post("/wall", s.handleWall)
		r.Post("/measure", s.handleMeasure)
		r.Post("/place", s.handlePlace)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", s.addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}
