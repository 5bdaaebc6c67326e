package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/wonny/flowrank/pkg/config"
	"github.com/wonny/flowrank/pkg/logger"
)

// Server represents the HTTP API server
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	config     *config.Config
}

// New creates a new API server. Timeouts come from the SERVER_* config
// knobs; zero values fall back so a partial config cannot produce a server
// without timeouts.
func New(cfg *config.Config, log *logger.Logger, router http.Handler) *Server {
	srv := cfg.Server
	if srv.ReadTimeout <= 0 {
		srv.ReadTimeout = 15 * time.Second
	}
	if srv.WriteTimeout <= 0 {
		srv.WriteTimeout = 15 * time.Second
	}
	if srv.IdleTimeout <= 0 {
		srv.IdleTimeout = 60 * time.Second
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  srv.ReadTimeout,
			WriteTimeout: srv.WriteTimeout,
			IdleTimeout:  srv.IdleTimeout,
		},
		logger: log,
		config: cfg,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithFields(map[string]interface{}{
		"port": s.config.Port,
		"env":  s.config.Env,
	}).Info("Starting API server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
