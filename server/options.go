// File: server/options.go
// Package server defines functional options for the Server facade.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-httpd/api"
	"github.com/momentics/hioload-httpd/control"
)

// ServerOption customizes server initialization.
type ServerOption func(*Server)

// WithLogger injects the structured logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHandlers registers the ordered handler set; first match wins.
func WithHandlers(handlers ...api.Handler) ServerOption {
	return func(s *Server) {
		s.handlers = append(s.handlers, handlers...)
	}
}

// WithPool substitutes the worker pool implementation.
func WithPool(pool api.Pool) ServerOption {
	return func(s *Server) {
		s.pool = pool
	}
}

// WithMetrics attaches a shared metrics registry.
func WithMetrics(m *control.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}
