package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"options-trade-log-go/internal/auth"
	"options-trade-log-go/internal/config"
	"options-trade-log-go/internal/trades"
)

// Server is the HTTP API for the trade log. It is stateless: every request
// runs its repository operation to completion before responding.
type Server struct {
	httpServer  *http.Server
	credentials *auth.CredentialStore
	tokens      *auth.TokenIssuer
	repo        *trades.Repository
	logger      *zap.Logger
}

// NewServer wires the router and middleware around the given collaborators.
func NewServer(cfg *config.Config, creds *auth.CredentialStore, tokens *auth.TokenIssuer, repo *trades.Repository, logger *zap.Logger) *Server {
	s := &Server{
		credentials: creds,
		tokens:      tokens,
		repo:        repo,
		logger:      logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CorsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.requestLogger)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/trades", s.handleListTrades)
			r.Post("/trades", s.handleCreateTrade)
			r.Put("/trades/{id}", s.handleUpdateTrade)
			r.Delete("/trades/{id}", s.handleDeleteTrade)
		})
	})

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("Starting API server", zap.String("address", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
