// File: api/errors.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error types shared across the hioload-httpd packages.

package api

import (
	"fmt"
	"sort"
	"strings"
)

// Common errors used across the server.
var (
	ErrPoolSaturated  = fmt.Errorf("worker pool saturated")
	ErrPoolClosed     = fmt.Errorf("worker pool is closed")
	ErrAlreadyRunning = fmt.Errorf("server already running")
)

// ErrorCode classifies failure modes for logging and monitoring.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeBind
	ErrCodeAdmissionRejected
	ErrCodeParse
	ErrCodeHandlerFailure
	ErrCodeIO
)

// String returns the code's wire/log name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeBind:
		return "bind"
	case ErrCodeAdmissionRejected:
		return "admission_rejected"
	case ErrCodeParse:
		return "parse"
	case ErrCodeHandlerFailure:
		return "handler_failure"
	case ErrCodeIO:
		return "io"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Error classifies a failure with a code, an optional wrapped cause,
// and key/value context. errors.Is/As see through it via Unwrap.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" [")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.Context[k])
		}
		b.WriteString("]")
	}
	return b.String()
}

// Unwrap exposes the cause to the errors package.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a structured error with no cause.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError builds a structured error around a cause.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// WithContext attaches a key/value pair and returns the error for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
