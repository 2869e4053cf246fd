// File: protocol/response.go
// Package protocol implements the HTTP/1.x wire codec.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

import (
	"fmt"
	"strconv"
)

// ServerToken identifies the server in the default header set.
const ServerToken = "hioload-httpd/1.0"

// Cookie is a response cookie with optional attributes. A negative
// MaxAge omits the Max-Age attribute; an empty Path omits Path.
type Cookie struct {
	Value  string
	MaxAge int
	Path   string
}

// Response is an HTTP response under construction. It is owned by the
// single handler invocation that builds it, handed to FormatResponse,
// and then discarded.
type Response struct {
	StatusCode    int
	StatusMessage string
	Headers       map[string]string
	Cookies       map[string]Cookie
	Body          string
}

// NewResponse returns a 200 OK response carrying the default headers
// for a single-shot connection.
func NewResponse() *Response {
	r := &Response{
		StatusCode:    200,
		StatusMessage: "OK",
		Headers:       make(map[string]string),
		Cookies:       make(map[string]Cookie),
	}
	r.SetHeader("Server", ServerToken)
	r.SetHeader("Connection", "close")
	return r
}

// SetHeader sets or replaces a response header.
func (r *Response) SetHeader(name, value string) {
	r.Headers[name] = value
}

// SetCookie sets a bare name=value cookie.
func (r *Response) SetCookie(name, value string) {
	r.Cookies[name] = Cookie{Value: value, MaxAge: -1}
}

// SetCookieAttrs sets a cookie with Max-Age and Path attributes.
func (r *Response) SetCookieAttrs(name, value string, maxAge int, path string) {
	r.Cookies[name] = Cookie{Value: value, MaxAge: maxAge, Path: path}
}

// SetBody replaces the body and derives the Content-Length header.
func (r *Response) SetBody(body string) {
	r.Body = body
	r.SetHeader("Content-Length", strconv.Itoa(len(body)))
}

// SetJSONBody sets a JSON body with the matching content type.
func (r *Response) SetJSONBody(json string) {
	r.SetHeader("Content-Type", "application/json")
	r.SetBody(json)
}

// SetHTMLBody sets an HTML body with the matching content type.
func (r *Response) SetHTMLBody(html string) {
	r.SetHeader("Content-Type", "text/html; charset=UTF-8")
	r.SetBody(html)
}

// SetTextBody sets a plain-text body with the matching content type.
func (r *Response) SetTextBody(text string) {
	r.SetHeader("Content-Type", "text/plain; charset=UTF-8")
	r.SetBody(text)
}

func (r *Response) String() string {
	return fmt.Sprintf("Response{status=%d %s}", r.StatusCode, r.StatusMessage)
}
