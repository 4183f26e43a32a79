// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/taskboard/internal/core/task"
	"github.com/taibuivan/taskboard/internal/platform/config"
	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/metrics"
	"github.com/taibuivan/taskboard/internal/platform/middleware"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/users/account"
	"github.com/taibuivan/taskboard/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 only when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration and login.
	Auth *auth.Handler

	// Account handles /api/me and the admin user directory.
	Account *account.Handler

	// Task handles the task board and admin task listings.
	Task *task.Handler
}

// # Server Initialization

/*
NewServer constructs the chi router with the full middleware chain and
registers all route groups.

Parameters:
  - context: context.Context (stops the rate limiter's sweeper when cancelled)
  - cfg: *config.Config
  - log: *slog.Logger
  - resolver: middleware.IdentityResolver (bearer token to identity)
  - registry: *metrics.Registry (HTTP and identity metrics, served on /metrics)
  - h: Handlers

Returns:
  - *Server: Ready to ListenAndServe
*/
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	resolver middleware.IdentityResolver,
	registry *metrics.Registry,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(registry.Instrument)
	r.Use(chimw.CleanPath)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(context, middleware.RateLimitConfig{
		RPS:               cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	}))
	r.Use(middleware.Authenticate(resolver, registry))

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", registry.Handler())

	// # Public API
	r.Mount("/auth", h.Auth.Routes())

	// # Authenticated API
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.RequireAuth)

		api.Mount("/tasks", h.Task.Routes())

		api.Route("/admin/users", func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleAdmin))
			h.Account.AdminRoutes(admin)
			h.Task.AdminRoutes(admin)
		})

		api.Mount("/", h.Account.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
