// Copyright (c) 2026 Yomira. All rights reserved.
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

	"github.com/taibuivan/yomira-board/internal/forum/board"
	"github.com/taibuivan/yomira-board/internal/forum/comment"
	"github.com/taibuivan/yomira-board/internal/platform/config"
	"github.com/taibuivan/yomira-board/internal/platform/constants"
	"github.com/taibuivan/yomira-board/internal/platform/metrics"
	"github.com/taibuivan/yomira-board/internal/platform/middleware"
	"github.com/taibuivan/yomira-board/internal/users/account"
	"github.com/taibuivan/yomira-board/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in the serve command with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 only when every dependency answers.
	Readiness http.HandlerFunc

	// Auth handles registration, login and logout.
	Auth *auth.Handler

	// Account handles profiles, passwords and per-user listings.
	Account *account.Handler

	// Board handles the posts.
	Board *board.Handler

	// Comment handles replies, mounted below a board.
	Comment *comment.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// m may be nil, in which case /metrics is not served.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	resolver middleware.PrincipalResolver,
	m *metrics.Metrics,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	// Load has already validated the list; an unvalidated one trusts nobody.
	trustedProxies, _ := cfg.TrustedProxyPrefixes()

	r.Use(middleware.ClientIP(trustedProxies))
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	if m != nil {
		r.Use(m.Middleware())
	}
	r.Use(middleware.CORS(cfg, cfg.AllowedOrigins))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Authenticate(resolver, log))
	r.Use(middleware.Authorize(RouteTable()))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Account.Routes())
		api.Route("/boards", func(boards chi.Router) {
			h.Board.RegisterRoutes(boards)
			boards.Route("/{boardId}/comments", h.Comment.RegisterRoutes)
		})
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
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
