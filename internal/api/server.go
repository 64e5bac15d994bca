// Package api exposes the insight operations over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spendlens/spendlens-backend/internal/api/handlers"
	"github.com/spendlens/spendlens-backend/internal/api/middleware"
	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	Currency       string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		Currency:       "USD",
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
	insights   *service.InsightsService
}

// NewServer creates a new API server.
func NewServer(cfg Config, repo storage.Repository, insights *service.InsightsService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:   cfg,
		router:   chi.NewRouter(),
		logger:   logger,
		repo:     repo,
		insights: insights,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}
	s.router.Use(middleware.CORS(corsConfig))

	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)

	s.router.Route("/api", func(r chi.Router) {
		// Reports
		reportsHandler := handlers.NewReportsHandler(s.insights, s.config.Currency)
		r.Route("/reports", func(r chi.Router) {
			r.Get("/spending", reportsHandler.Spending)
			r.Get("/income", reportsHandler.Income)
			r.Get("/trends", reportsHandler.Trends)
			r.Get("/analysis", reportsHandler.Analysis)
			r.Get("/categories/{name}", reportsHandler.CategoryDeepDive)
			r.Get("/burn-rate", reportsHandler.BurnRate)
		})

		// Subscriptions
		subscriptionsHandler := handlers.NewSubscriptionsHandler(s.insights, s.config.Currency)
		r.Get("/subscriptions", subscriptionsHandler.List)

		// Stored transactions
		transactionsHandler := handlers.NewTransactionsHandler(s.insights, s.repo)
		r.Get("/transactions", transactionsHandler.List)
		r.Post("/transactions", transactionsHandler.Ingest)

		// Stats
		statsHandler := handlers.NewStatsHandler(s.insights, s.config.Currency)
		r.Get("/stats", statsHandler.Get)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
