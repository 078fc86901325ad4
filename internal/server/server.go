// Package server is the HTTP shell: it maps every enabled tool's route and
// aliases to its page-wrapped widget, and exposes the registry, the
// widgets and the store as a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mesh-intelligence/toolbox/internal/page"
	"github.com/mesh-intelligence/toolbox/internal/registry"
	"github.com/mesh-intelligence/toolbox/internal/widgets/text"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Defaults applied by New.
const (
	DefaultAddr           = "127.0.0.1:8080"
	DefaultMaxUploadBytes = 32 << 20
	shutdownTimeout       = 10 * time.Second
)

// Config tunes the HTTP shell.
type Config struct {
	Addr string

	// RateLimit is the sustained request rate per second across all
	// clients; zero disables limiting.
	RateLimit float64
	Burst     int

	MaxUploadBytes int64
}

// Tables is the part of a types.Store the store API needs.
type Tables interface {
	GetTable(name string) (types.Table, error)
}

// Deps are the collaborators the server routes to.
type Deps struct {
	Registry *registry.Registry

	// Toggles defaults to an in-memory set with every tool enabled.
	Toggles *registry.Toggles

	// Store backs the /api/store endpoints; nil answers them with 503.
	Store Tables

	// Pages defaults to the embedded templates.
	Pages *page.Renderer

	Logger *zap.Logger
}

// Server routes requests to tools.
type Server struct {
	cfg     Config
	reg     *registry.Registry
	toggles *registry.Toggles
	store   Tables
	pages   *page.Renderer
	log     *zap.Logger
	limiter *rate.Limiter
	router  chi.Router
}

// New builds the server and its routes.
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Registry == nil {
		return nil, errors.New("server: registry is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Toggles == nil {
		t, err := registry.NewToggles(deps.Registry, nil)
		if err != nil {
			return nil, err
		}
		deps.Toggles = t
	}
	if deps.Pages == nil {
		p, err := page.New(text.NewMarkdown())
		if err != nil {
			return nil, err
		}
		deps.Pages = p
	}

	s := &Server{
		cfg:     cfg,
		reg:     deps.Registry,
		toggles: deps.Toggles,
		store:   deps.Store,
		pages:   deps.Pages,
		log:     deps.Logger,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(cfg.RateLimit) + 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)
	r.Use(s.logRequests)
	r.Use(securityHeaders)
	r.Use(s.rateLimit)

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", page.Static()))

	r.Route("/api", func(r chi.Router) {
		r.Get("/tools", s.handleListTools)
		r.Get("/tools/{id}", s.handleGetTool)
		r.Post("/tools/{id}/run", s.handleRunTool)
		r.Put("/tools/{id}/enabled", s.handleSetEnabled)
		r.Get("/sidebar", s.handleSidebar)

		r.Route("/store/{table}", func(r chi.Router) {
			r.Get("/", s.handleStoreList)
			r.Post("/", s.handleStoreCreate)
			r.Get("/{id}", s.handleStoreGet)
			r.Put("/{id}", s.handleStorePut)
			r.Delete("/{id}", s.handleStoreDelete)
		})
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found", "no such endpoint")
		})
	})

	r.Get("/", s.handleIndex)
	r.Get("/{route}", s.handleToolPage)
	r.Post("/{route}", s.handleToolSubmit)
	r.NotFound(s.handleNotFound)
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "tools": s.reg.Len()})
}
