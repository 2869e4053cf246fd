// File: protocol/request.go
// Package protocol implements the HTTP/1.x wire codec.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

import "fmt"

// Request is a parsed HTTP request. It is immutable once constructed
// and owned solely by the connection task that created it.
type Request struct {
	Method  string
	Path    string
	Version string

	// Headers maps lowercased, trimmed header names to values.
	// On duplicate names the last occurrence wins.
	Headers map[string]string

	// Cookies holds the name/value pairs parsed from the Cookie header.
	Cookies map[string]string

	// Body is the raw request body, empty unless a numeric
	// Content-Length header was supplied.
	Body string
}

// Header returns the value for name, case-insensitively.
func (r *Request) Header(name string) string {
	return r.Headers[lower(name)]
}

// Cookie returns the named cookie value, or "" if absent.
func (r *Request) Cookie(name string) string {
	return r.Cookies[name]
}

func (r *Request) String() string {
	return fmt.Sprintf("Request{method=%s, path=%s, version=%s}", r.Method, r.Path, r.Version)
}
