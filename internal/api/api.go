// Package api implements the Cardwall layout HTTP service.
//
// The service exposes the layout pipeline over REST: stateless one-shot
// builds for clients that manage their own state, and sessions for clients
// that want the server to hold the item collection, viewport, and latest
// snapshot between requests.
//
// # Routes
//
//	GET    /healthz                                   liveness + version
//	POST   /v1/layout                                 stateless build
//	POST   /v1/sessions                               create session + first build
//	GET    /v1/sessions/{id}                          fetch session
//	DELETE /v1/sessions/{id}                          delete session
//	PUT    /v1/sessions/{id}/viewport                 resize + rebuild
//	PATCH  /v1/sessions/{id}/items/{key}/size         report measured size
//	GET    /v1/sessions/{id}/items/{key}/neighbors    spatial navigation query
//
// # Usage
//
//	srv := api.New(api.Config{Addr: ":8080"}, store.NewMemoryStore(), runner, logger)
//	if err := srv.ListenAndServe(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Errors are returned as a JSON envelope:
//
//	{"error": {"code": "SESSION_NOT_FOUND", "message": "session abc not found"}}
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cardwall/pkg/pipeline"
	"github.com/matzehuels/cardwall/pkg/store"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	shutdownTimeout = 10 * time.Second
)

// Config holds server settings.
type Config struct {
	// Addr is the listen address (host:port). Defaults to ":8080".
	Addr string
}

// Server is the layout HTTP service.
type Server struct {
	cfg    Config
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server.
// If st is nil, an in-memory store is used.
// If runner is nil, an uncached runner is used.
func New(cfg Config, st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if logger == nil {
		logger = log.Default()
	}
	if st == nil {
		st = store.NewMemoryStore()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{
		cfg:    cfg,
		store:  st,
		runner: runner,
		logger: logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Put("/viewport", s.handleUpdateViewport)
				r.Patch("/items/{key}/size", s.handleUpdateItemSize)
				r.Get("/items/{key}/neighbors", s.handleNeighbors)
			})
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
