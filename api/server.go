// Package api exposes the listing advisor over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"listing-advisor/utils"
)

// Server is the HTTP front end of the advisor.
type Server struct {
	httpServer *http.Server
	logger     *utils.Logger
}

// NewRouter builds the route tree around handlers.
func NewRouter(handlers *Handlers, logger *utils.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.HandleHealth)
	r.Get("/map", handlers.HandleMap)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/suburbs", handlers.HandleSuburbs)
		r.Get("/listings/{id}", handlers.HandleShowListing)

		r.Post("/recommend", handlers.HandleRecommend)
		r.Delete("/recommend", handlers.HandleCloseRecommend)
		r.Post("/evaluate", handlers.HandleEvaluate)
		r.Delete("/evaluate", handlers.HandleCloseEvaluate)
	})

	return r
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, handlers *Handlers, logger *utils.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(handlers, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info("[api] Starting HTTP server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("[api] Could not start server: %v", err)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("[api] Stopping HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
