// Package server provides the HTTP server for the coach API
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/forkcast/forkcast/internal/infrastructure/config"
	"github.com/forkcast/forkcast/internal/infrastructure/http/handlers"
	"github.com/forkcast/forkcast/internal/infrastructure/http/middleware"
	"github.com/forkcast/forkcast/internal/infrastructure/monitoring"
	"github.com/forkcast/forkcast/internal/ports/inbound"
	"github.com/forkcast/forkcast/internal/ports/outbound"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// Server represents the HTTP server
type Server struct {
	config       *config.Config
	logger       *zap.Logger
	router       *chi.Mux
	server       *http.Server
	coachService inbound.CoachService
	events       outbound.EventRepository
	metrics      *monitoring.Metrics
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	coachService inbound.CoachService,
	events outbound.EventRepository,
	metrics *monitoring.Metrics,
) *Server {
	s := &Server{
		config:       cfg,
		logger:       logger,
		coachService: coachService,
		events:       events,
		metrics:      metrics,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(s.metrics))
	r.Use(middleware.NewRateLimiter(s.config.Server.RateLimit, s.logger).Handler())

	r.Use(chimiddleware.Timeout(60 * time.Second))

	h := handlers.NewCoachHandlers(s.coachService, s.events, s.metrics, s.config.App.Version, s.logger)

	// Generated audio clips are served from disk, not embedded, since
	// the speech client writes new files at runtime
	audioHandler := http.FileServer(http.Dir(s.config.Server.StaticDir))
	r.Handle("/audio/*", http.StripPrefix("/", audioHandler))

	r.Get(s.config.Monitoring.HealthCheckPath, h.HealthCheck)
	if s.config.Monitoring.EnableMetrics {
		r.Handle(s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	// API routes
	r.Route("/api/v1/coach", func(r chi.Router) {
		r.Post("/message", h.HandleMessage)
		r.Post("/feedback", h.HandleFeedback)
		r.Get("/users/{userID}/events", h.HandleHistory)
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	// Enable HTTP/2
	if err := http2.ConfigureServer(s.server, nil); err != nil {
		s.logger.Error("Failed to configure HTTP/2", zap.Error(err))
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
