package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
)

const defaultShutdownTimeout = 10 * time.Second

// Server is the API listener.
type Server struct {
	HTTP *http.Server

	shutdownTimeout time.Duration
	log             logger.Logger
}

// NewServer wraps handler in an http.Server listening on cfg.Host:cfg.Port.
func NewServer(cfg Config, handler http.Handler, log logger.Logger) *Server {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	shutdown := cfg.ShutdownTimeout
	if shutdown == 0 {
		shutdown = defaultShutdownTimeout
	}

	return &Server{
		HTTP: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
		},
		shutdownTimeout: shutdown,
		log:             log,
	}
}

// Start binds the listener and serves in the background. A bind failure is
// returned.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.HTTP.Addr, err)
	}

	s.log.Info("Starting HTTP server", nil, map[string]interface{}{"address": ln.Addr().String()})
	go func() {
		if err := s.HTTP.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server stopped unexpectedly", err, nil)
		}
	}()
	return nil
}

// Shutdown drains in-flight requests, waiting at most the configured
// shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	s.log.Info("Shutting down HTTP server", nil, nil)
	return s.HTTP.Shutdown(ctx)
}
