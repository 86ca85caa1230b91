// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prasertk/stockd/internal/api/handler"
	"github.com/prasertk/stockd/internal/api/middleware"
	"github.com/prasertk/stockd/internal/config"
	"github.com/prasertk/stockd/internal/metrics"
	"github.com/prasertk/stockd/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server for the stock-data API.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new HTTP server wired with the middleware chain:
// request-id/access-log, CORS, then metrics.
func NewServer(cfg *config.Config, svc *service.Service, reg *metrics.Registry, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	h := handler.New(svc, logger)
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /status", h.Status)
	mux.HandleFunc("POST /stock-data", h.StockData)
	mux.HandleFunc("GET /stock/{symbol}", h.Stock)
	mux.HandleFunc("GET /historical/{symbol}", h.Historical)
	mux.HandleFunc("GET /analysis/{symbol}", h.Analysis)

	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, promhttp.HandlerFor(reg.Registry, promhttp.HandlerOpts{}))
	}

	var root http.Handler = mux
	root = metrics.HTTPMiddleware(reg)(root)
	root = middleware.CORS(cfg.CORS.AllowedOrigins)(root)
	root = middleware.RequestID(logger)(root)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      root,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the composed handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
