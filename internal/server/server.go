// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer: it connects stores, services, handlers,
// middleware and routes. It is the "composition root": every dependency is
// created here (or passed in) rather than scattered across the codebase.
//
// DEPENDENCY INJECTION FLOW:
//
//	main.go creates:  Config, logger, seed data → server.New
//	server.New:       memory stores → services → handlers → routes
//
// The stores live exactly as long as the Server. Nothing is global, so tests
// can build as many independent servers as they like.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/pastebin/internal/config"
	"github.com/sakif/pastebin/internal/handler"
	"github.com/sakif/pastebin/internal/metrics"
	"github.com/sakif/pastebin/internal/middleware"
	"github.com/sakif/pastebin/internal/repository/memory"
	"github.com/sakif/pastebin/internal/service"
)

// Server represents the HTTP server and all its dependencies.
type Server struct {
	router  *chi.Mux
	config  *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	pastes  *memory.PasteStore
	users   *memory.UserStore
}

// New creates a Server whose stores start out holding seed.
func New(cfg *config.Config, logger *slog.Logger, seed *memory.Seed) (*Server, error) {
	if seed == nil {
		return nil, errors.New("server: seed data is required")
	}

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
		pastes:  memory.NewPasteStore(seed.Pastes),
		users:   memory.NewUserStore(seed.Users),
	}
	s.setupRoutes()

	logger.Info("stores seeded",
		slog.Int("pastes", len(seed.Pastes)),
		slog.Int("users", len(seed.Users)),
	)
	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /pastes                  → List pastes (optional ?user_id=)
// POST   /pastes                  → Create paste
// GET    /pastes/{pasteId}        → Read paste
// PUT    /pastes/{pasteId}        → Update paste
// DELETE /pastes/{pasteId}        → Delete paste
// GET    /users                   → List users
// GET    /users/{userId}          → Read user
// GET    /users/{userId}/pastes   → List one user's pastes
// GET    /metrics                 → Prometheus metrics (when enabled)
//
// Anything else, including a known path with the wrong method, is a 404
// {"error": "Not found: <url>"}.
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns an id that the logger and error boundary report
// 2. RealIP: extracts real client IP from proxy headers
// 3. Logger: logs each request with timing info
// 4. Metrics: observes duration per route pattern
// 5. Recoverer: turns panics into JSON 500s; innermost so 1-4 see the 500
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger, "/metrics"))
	s.router.Use(middleware.Metrics(s.metrics))
	s.router.Use(middleware.Recoverer(s.logger, handler.DefaultErrorMessage))

	notFound := handler.NotFound(s.logger)
	s.router.NotFound(notFound)
	s.router.MethodNotAllowed(notFound)

	pasteService := service.NewPasteService(s.pastes, s.metrics, s.logger)
	userService := service.NewUserService(s.users, s.logger)
	pasteHandler := handler.NewPasteHandler(pasteService, userService, s.config.MaxBodyBytes, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)

	s.router.Route("/pastes", func(r chi.Router) {
		r.Get("/", pasteHandler.HandleList)
		r.Post("/", pasteHandler.HandleCreate)
		r.Get("/{pasteId}", pasteHandler.HandleGet)
		r.Put("/{pasteId}", pasteHandler.HandleUpdate)
		r.Delete("/{pasteId}", pasteHandler.HandleDelete)
	})

	s.router.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.HandleList)
		r.Get("/{userId}", userHandler.HandleGet)
		r.Get("/{userId}/pastes", pasteHandler.HandleList)
	})

	if s.config.MetricsEnabled {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
}

// Start runs the HTTP server until ctx is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new connections
// 2. Wait up to ShutdownTimeout for in-flight requests to finish
// The in-memory stores need no flushing; they go away with the process.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("environment", s.config.Environment),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully",
			slog.Int("pastes", s.pastes.Len()),
		)
	}

	return nil
}
