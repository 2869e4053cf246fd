// File: server/server.go
// Package server implements the listener/acceptor facade: socket
// ownership, the accept loop, admission into the worker pool, and
// graceful shutdown.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-httpd/api"
	"github.com/momentics/hioload-httpd/control"
	"github.com/momentics/hioload-httpd/internal/concurrency"
)

// NewServer builds the Server facade. A worker pool sized from cfg and
// an empty metrics registry are constructed unless options supply them.
func NewServer(cfg *Config, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Server{cfg: cfg}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.pool == nil {
		s.pool = concurrency.NewWorkerPool(cfg.CoreWorkers, cfg.MaxWorkers, cfg.QueueCapacity, s.logger)
	}
	if s.metrics == nil {
		s.metrics = control.NewMetrics()
	}
	return s
}

// Start binds the listening socket and spawns the accept loop. It
// returns once the socket is listening; a bind failure (port in use,
// permissions) is returned wrapped and is fatal to startup.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running.Load() {
		return api.ErrAlreadyRunning
	}

	lc := net.ListenConfig{Control: listenControl}
	ln, err := lc.Listen(context.Background(), "tcp", s.cfg.ListenAddr)
	if err != nil {
		return api.WrapError(api.ErrCodeBind, "listen failed", err).
			WithContext("addr", s.cfg.ListenAddr)
	}

	s.ln = ln.(*net.TCPListener)
	s.running.Store(true)
	s.acceptWG.Add(1)
	go s.acceptLoop()

	s.logger.Info("server started",
		zap.String("addr", s.ln.Addr().String()),
		zap.Int("core_workers", s.cfg.CoreWorkers),
		zap.Int("max_workers", s.cfg.MaxWorkers),
		zap.Int("queue_capacity", s.cfg.QueueCapacity))
	return nil
}

// acceptLoop accepts connections until the running flag drops. Each
// accept blocks at most AcceptTimeout so the flag is observed promptly.
// A connection the pool refuses is closed without a response; that drop
// is the sole backpressure signal.
func (s *Server) acceptLoop() {
	defer s.acceptWG.Done()
	s.logger.Info("acceptor started, waiting for connections")

	for s.running.Load() {
		s.ln.SetDeadline(time.Now().Add(s.cfg.AcceptTimeout))
		conn, err := s.ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if s.running.Load() {
				s.logger.Error("accept failed", zap.Error(err))
			}
			continue
		}

		s.accepted.Add(1)
		s.metrics.ConnAccepted()
		conn.SetDeadline(time.Now().Add(s.cfg.IOTimeout))

		c := conn
		if err := s.pool.Submit(func() { s.handleConn(c) }); err != nil {
			s.metrics.ConnRejected()
			s.logger.Warn("connection dropped",
				zap.Error(api.WrapError(api.ErrCodeAdmissionRejected, "pool saturated", err).
					WithContext("remote", conn.RemoteAddr().String())))
			conn.Close()
		}
	}

	s.logger.Info("acceptor stopped")
}

// Stop flips the running flag, closes the listening socket, joins the
// acceptor with a bounded wait, then shuts the worker pool down
// gracefully. Idempotent and safe from any goroutine.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running.Load() {
		return nil
	}
	s.running.Store(false)
	s.ln.Close()

	joined := make(chan struct{})
	go func() {
		s.acceptWG.Wait()
		close(joined)
	}()
	select {
	case <-joined:
	case <-time.After(s.cfg.ShutdownTimeout):
		s.logger.Warn("acceptor did not stop within shutdown timeout")
	}

	s.pool.Shutdown(s.cfg.ShutdownTimeout)
	s.logger.Info("server stopped",
		zap.Uint64("connections_handled", s.accepted.Load()))
	return nil
}

// SetHandlers replaces the handler chain. Handlers that read the
// server's pool statistics are wired after construction through this
// setter. Must be called before Start.
func (s *Server) SetHandlers(h []api.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = h
}

// IsRunning reports whether the accept loop is live.
func (s *Server) IsRunning() bool {
	return s.running.Load()
}

// Addr returns the bound listen address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Accepted returns the total connections accepted since Start.
func (s *Server) Accepted() uint64 {
	return s.accepted.Load()
}

// PoolStats returns a read-only snapshot of the worker pool counters.
func (s *Server) PoolStats() api.PoolStats {
	return s.pool.Stats()
}

// Metrics returns the server's metrics registry.
func (s *Server) Metrics() *control.Metrics {
	return s.metrics
}
