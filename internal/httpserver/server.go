package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ErrNotListening is returned by Serve when Listen has not succeeded.
var ErrNotListening = errors.New("httpserver: not listening")

// Server wraps http.Server with validation and graceful shutdown.
type Server struct {
	server   *http.Server
	mutex    sync.Mutex
	listener net.Listener
}

// New creates a new HTTP server with the given address and handler.
// The address is validated before creating the server.
func New(addr string, handler http.Handler, logger *slog.Logger) (*Server, error) {
	if err := validateHost(addr); err != nil {
		return nil, err
	}

	srv := &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
	}

	return srv, nil
}

// Listen binds the configured address without serving yet, so bind
// failures surface before the process reports itself as started.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	s.listener = ln
	s.mutex.Unlock()

	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Serve accepts connections on the listener opened by Listen.
// Returns an error unless the server is shut down cleanly.
func (s *Server) Serve() error {
	s.mutex.Lock()
	ln := s.listener
	s.mutex.Unlock()

	if ln == nil {
		return ErrNotListening
	}

	err := s.server.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Start listens and serves in one call.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown gracefully shuts down the server with a 5-second timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

func validateHost(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)

	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cant be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}
