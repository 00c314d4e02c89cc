// Package web serves the dashboard directory over HTTP.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options configures the dashboard server.
type Options struct {
	// Addr is the listen address in host:port form.
	Addr string
	// Dir is the directory served at the root path.
	Dir string
	// ReadTimeout bounds reading a request.
	ReadTimeout time.Duration
	// IdleTimeout is the keep-alive timeout.
	IdleTimeout time.Duration
}

// Server is a static file server for the dashboard.
type Server struct {
	opts   Options
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new Server instance.
func NewServer(opts Options) *Server {
	s := &Server{
		opts:   opts,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Handler:     s.router,
		ReadTimeout: opts.ReadTimeout,
		IdleTimeout: opts.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	// The dashboard re-fetches a file that is regenerated in place.
	s.router.Use(middleware.NoCache)
}

// setupRoutes serves every path from the configured directory.
func (s *Server) setupRoutes() {
	s.router.Handle("/*", http.FileServer(http.Dir(s.opts.Dir)))
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until Shutdown.
// It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	slog.Info("server listening", "addr", ln.Addr().String(), "dir", s.opts.Dir)
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
