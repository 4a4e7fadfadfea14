// Package ui exposes the bootstrap engine and run ledger as a JSON API.
package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bootstat/internal"
	"bootstat/internal/engine"
	"bootstat/ports"
)

// Server represents the HTTP API server
type Server struct {
	router *chi.Mux
	ledger ports.RunLedgerPort
	log    *internal.Logger

	// engine defaults applied when a request omits a knob
	defaultAlpha     float64
	defaultResamples int
}

// Config holds server configuration
type Config struct {
	Port             string
	DefaultAlpha     float64
	DefaultResamples int
}

// NewServer creates the API server over a run ledger
func NewServer(config Config, ledger ports.RunLedgerPort) *Server {
	if config.DefaultAlpha == 0 {
		config.DefaultAlpha = engine.DefaultAlpha
	}
	if config.DefaultResamples == 0 {
		config.DefaultResamples = engine.DefaultResamples
	}

	s := &Server{
		router:           chi.NewRouter(),
		ledger:           ledger,
		log:              internal.DefaultLogger,
		defaultAlpha:     config.DefaultAlpha,
		defaultResamples: config.DefaultResamples,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/statistics", s.handleListStatistics)
		r.Post("/tests", s.handleRunTest)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Get("/runs/{id}/report", s.handleRunReport)
	})
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server on the configured port
func (s *Server) Start(port string) error {
	addr := fmt.Sprintf(":%s", port)
	s.log.Info("bootstat API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}
