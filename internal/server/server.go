// Package server exposes the solvers over a small JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexshd/rootfind"
	"github.com/alexshd/rootfind/internal/config"
	"github.com/alexshd/rootfind/internal/history"
	"github.com/alexshd/rootfind/internal/metrics"
)

// Server is the thin HTTP layer over the solvers. It owns the results
// history; the solvers themselves stay stateless.
type Server struct {
	eq       rootfind.Equation
	cfg      *config.Config
	history  *history.Log
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	logger   *slog.Logger
}

// New builds a server solving eq with defaults from cfg.
func New(eq rootfind.Equation, cfg *config.Config, logger *slog.Logger) *Server {
	reg := prometheus.NewRegistry()

	return &Server{
		eq:       eq,
		cfg:      cfg,
		history:  history.New(cfg.Server.HistorySize),
		metrics:  metrics.New(reg),
		registry: reg,
		logger:   logger,
	}
}

// Routes wires all endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/sample", s.handleSample)
		r.Get("/brackets", s.handleBrackets)
		r.Get("/history", s.handleHistory)
		r.Delete("/history", s.handleClearHistory)
	})

	return r
}

// HTTPServer builds an *http.Server for the configured address.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.Routes(),
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout.Duration,
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		level := slog.LevelInfo
		if ww.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
