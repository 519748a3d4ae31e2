package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/haguru/filmdb/internal/interfaces"
)

var (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 30 * time.Second
)

var _ interfaces.Server = (*Server)(nil)

type Server struct {
	Port   string
	Host   string
	server *http.Server
	router chi.Router
	Logger interfaces.Logger
}

// NewServer creates a new Server instance with the specified host and port.
// Every request gets a request id and panics are turned into 500s.
func NewServer(host, port string, logger interfaces.Logger) *Server {
	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)

	server := &http.Server{
		Addr:         host + ":" + port,
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	return &Server{
		Host:   host,
		Port:   port,
		server: server,
		router: router,
		Logger: logger,
	}
}

// AddRoute registers handler for method and pattern. middlewares wrap only this route.
func (s *Server) AddRoute(method, pattern string, handler http.HandlerFunc, middlewares ...func(http.Handler) http.Handler) error {
	if pattern == "" || handler == nil {
		return fmt.Errorf("invalid route %s %q", method, pattern)
	}

	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return fmt.Errorf("unsupported method %q for route %s", method, pattern)
	}

	s.router.With(middlewares...).Method(method, pattern, handler)
	s.Logger.Info("Route added", "method", method, "route", pattern)
	return nil
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until it stops.
// A server stopped by Shutdown returns nil.
func (s *Server) ListenAndServe() error {
	s.Logger.Info("Starting server", "host", s.Host, "port", s.Port)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.Logger.Error("Failed to start server", "error", err)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("Shutting down server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
