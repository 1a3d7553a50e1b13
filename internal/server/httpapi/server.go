// Package httpapi is the server's HTTP surface: the reachability token
// endpoint, the self-test history, request logging, and the listener
// lifecycle.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/nasomail/internal/common"
	"github.com/dmitrijs2005/nasomail/internal/ctest"
	"github.com/dmitrijs2005/nasomail/internal/logging"
	"github.com/dmitrijs2005/nasomail/internal/server/repositories/checks"
)

const readHeaderTimeout = 5 * time.Second

// HTTPServer serves the nasomail HTTP API on a single listener.
type HTTPServer struct {
	address         string
	logger          logging.Logger
	srv             *http.Server
	shutdownTimeout time.Duration

	mu sync.Mutex
	ln net.Listener
}

// NewHTTPServer builds the server. token is called on every token request;
// repo may be nil, in which case the history endpoint is not registered.
func NewHTTPServer(address string, l logging.Logger, token func() string, repo checks.Repository, shutdownTimeout time.Duration) *HTTPServer {
	s := &HTTPServer{
		address:         address,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}

	mux := http.NewServeMux()
	mux.Handle("GET "+common.CTestPath, ctest.TokenHandler(token))
	if repo != nil {
		mux.Handle("GET "+common.ChecksPath, &checksHandler{repo: repo, logger: s.logger})
	}

	s.srv = &http.Server{
		Handler:           s.logRequests(mux),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.srv.Handler
}

// Listen binds the listener. Once it returns without error, connections are
// queued by the kernel and will be answered as soon as Run starts serving.
func (s *HTTPServer) Listen() (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln != nil {
		return s.ln.Addr(), nil
	}

	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", s.address, err)
	}
	s.ln = ln
	return ln.Addr(), nil
}

// Run serves until ctx is done and then shuts down gracefully. It binds the
// listener itself if Listen was not called.
func (s *HTTPServer) Run(ctx context.Context) error {
	addr, err := s.Listen()
	if err != nil {
		return err
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		stopped <- s.srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", addr.String())

	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-stopped; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
