package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// HTTPServer runs a handler on a TCP listener.
type HTTPServer struct {
	Addr    string
	Handler http.Handler

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	errc   chan error
	closed bool
}

// NewHTTPServer creates a server for h on addr.
func NewHTTPServer(addr string, h http.Handler) *HTTPServer {
	return &HTTPServer{Addr: addr, Handler: h}
}

// Start begins listening and serving in the background.
func (s *HTTPServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("web server already stopped")
	}
	if s.srv != nil {
		return nil
	}

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		s.srv = nil
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	s.ln = ln
	s.errc = make(chan error, 1)

	srv, errc := s.srv, s.errc
	go func() {
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	return nil
}

// ListenAddr returns the bound address, or "" before Start.
func (s *HTTPServer) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Run starts the server and blocks until ctx is done or serving fails.
func (s *HTTPServer) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	s.mu.Lock()
	errc := s.errc
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return s.Stop()
	case err, ok := <-errc:
		_ = s.Stop()
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}

// Stop shuts the server down gracefully. It is safe to call more than once.
func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
