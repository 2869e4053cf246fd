// File: api/handler.go
// Package api defines the Handler interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "github.com/momentics/hioload-httpd/protocol"

// Handler is a request-handling capability. Handlers are tried in
// registration order; the first one whose CanHandle returns true
// receives the request. There is no fallthrough.
type Handler interface {
	// CanHandle reports whether this handler serves the request.
	CanHandle(req *protocol.Request) bool

	// Handle produces the response for the request. A non-nil error is
	// converted to a 500 response at the connection boundary.
	Handle(req *protocol.Request) (*protocol.Response, error)
}

// HandlerFunc adapts a predicate and an action into a Handler.
type HandlerFunc struct {
	Match func(req *protocol.Request) bool
	Serve func(req *protocol.Request) (*protocol.Response, error)
}

func (h HandlerFunc) CanHandle(req *protocol.Request) bool {
	return h.Match(req)
}

func (h HandlerFunc) Handle(req *protocol.Request) (*protocol.Response, error) {
	return h.Serve(req)
}
