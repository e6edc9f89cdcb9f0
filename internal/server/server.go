// Package server exposes the record form rules over HTTP so a rendered form
// can delegate its field synchronization.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cleared-dev/tiers/internal/accounts"
	"github.com/cleared-dev/tiers/internal/form"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	chart      *accounts.Service
	store      *Store
	metrics    *Metrics
}

// Config holds server configuration.
type Config struct {
	Port   int
	Chart  *accounts.Service
	Mode   form.Mode
	Logger *zap.Logger

	// Registry collects the server metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// New creates a new HTTP server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	s := &Server{
		logger:  logger,
		chart:   cfg.Chart,
		store:   NewStore(cfg.Chart, cfg.Mode, logger),
		metrics: NewMetrics(registry),
	}
	s.store.metrics = s.metrics

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.zapLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.healthCheck)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/classify", s.classify)
		r.Post("/codes", s.generateCode)
		r.Get("/accounts", s.listAccounts)

		r.Post("/forms", s.createForm)
		r.Get("/forms/{id}", s.getForm)
		r.Delete("/forms/{id}", s.deleteForm)
		r.Post("/forms/{id}/events", s.formEvent)
		r.Get("/forms/{id}/submission", s.formSubmission)
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Store returns the open form sessions.
func (s *Server) Store() *Store {
	return s.store
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"accounts": len(s.chart.All()),
		"forms":    s.store.Len(),
	})
}

// zapLogger is a middleware that logs requests using zap.
func (s *Server) zapLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
