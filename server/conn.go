// File: server/conn.go
// Package server: per-connection protocol handling.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A connection task reads exactly one request, dispatches it to the
// first matching handler, writes the response, and closes the socket.
// Single-shot, non-keep-alive semantics: the write completes the
// interaction on every path.

package server

import (
	"bufio"
	"io"
	"net"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/momentics/hioload-httpd/api"
	"github.com/momentics/hioload-httpd/protocol"
)

// handleConn executes once per accepted connection. The socket is
// closed on every exit path; failures stay contained to this task.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()

	raw, err := readRequest(bufio.NewReader(conn))
	if err != nil && raw == "" {
		// Connection died before a single line arrived; nothing to answer.
		s.logger.Warn("read failed",
			zap.Error(api.WrapError(api.ErrCodeIO, "request read", err).
				WithContext("remote", remote)))
		return
	}

	req, err := protocol.ParseRequest(raw)
	if err != nil {
		s.logger.Warn("malformed request",
			zap.Error(api.WrapError(api.ErrCodeParse, "request parse", err).
				WithContext("remote", remote)))
		s.writeResponse(conn, remote, protocol.NewErrorResponse(400, err.Error()))
		return
	}

	s.logger.Debug("request parsed",
		zap.String("remote", remote),
		zap.String("method", req.Method),
		zap.String("path", req.Path))

	resp := s.dispatch(req)
	s.writeResponse(conn, remote, resp)
}

// dispatch routes the request to the first handler whose predicate
// accepts it. No match yields 404; a handler error or panic yields 500.
// Nothing escapes into the worker pool.
func (s *Server) dispatch(req *protocol.Request) (resp *protocol.Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panicked",
				zap.String("path", req.Path),
				zap.Any("panic", r))
			resp = protocol.NewErrorResponse(500, "internal server error while processing request")
		}
	}()

	for _, h := range s.handlers {
		if !h.CanHandle(req) {
			continue
		}
		out, err := h.Handle(req)
		if err != nil {
			s.logger.Error("handler failed",
				zap.Error(api.WrapError(api.ErrCodeHandlerFailure, "handler", err).
					WithContext("path", req.Path)))
			return protocol.NewErrorResponse(500,
				"internal server error while processing request: "+err.Error())
		}
		return out
	}

	s.logger.Warn("no handler matched",
		zap.String("method", req.Method),
		zap.String("path", req.Path))
	return protocol.NewErrorResponse(404,
		"The requested resource '"+req.Path+"' was not found on this server.")
}

// writeResponse serializes and writes resp; write errors terminate only
// this connection's task.
func (s *Server) writeResponse(conn net.Conn, remote string, resp *protocol.Response) {
	if _, err := io.WriteString(conn, protocol.FormatResponse(resp)); err != nil {
		s.logger.Warn("write failed",
			zap.String("remote", remote),
			zap.Error(err))
		return
	}
	s.logger.Debug("response sent",
		zap.String("remote", remote),
		zap.Int("status", resp.StatusCode))
}

// maxBodyBytes caps the allocation a declared Content-Length can force;
// anything past it stays unread on the socket.
const maxBodyBytes = 4 << 20

// readRequest accumulates the header section up to the terminating
// blank line, then reads exactly the declared Content-Length bytes as
// the body, capped at maxBodyBytes. An unparsable Content-Length counts
// as zero.
func readRequest(r *bufio.Reader) (string, error) {
	var b strings.Builder
	contentLength := 0

	for {
		line, err := r.ReadString('\n')
		b.WriteString(line)
		if err != nil {
			if b.Len() == 0 {
				return "", err
			}
			return b.String(), err
		}

		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			break
		}
		if v, ok := headerValueFold(trimmed, "content-length"); ok {
			if n, convErr := strconv.Atoi(strings.TrimSpace(v)); convErr == nil {
				contentLength = n
			}
		}
	}

	if contentLength > maxBodyBytes {
		contentLength = maxBodyBytes
	}
	if contentLength > 0 {
		body := make([]byte, contentLength)
		n, err := io.ReadFull(r, body)
		b.Write(body[:n])
		if err != nil {
			return b.String(), err
		}
	}
	return b.String(), nil
}

// headerValueFold returns the value of line when its name matches,
// case-insensitively.
func headerValueFold(line, name string) (string, bool) {
	if len(line) <= len(name) || line[len(name)] != ':' {
		return "", false
	}
	if !strings.EqualFold(line[:len(name)], name) {
		return "", false
	}
	return line[len(name)+1:], true
}
