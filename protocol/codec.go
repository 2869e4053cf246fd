// File: protocol/codec.go
// Package protocol implements the HTTP/1.x wire codec: request parsing
// and response serialization for the single-request-per-connection
// protocol subset.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Parse failures are classified with these sentinels; wrap with
// context and test with errors.Is.
var (
	ErrMalformedRequest = fmt.Errorf("malformed http request")
	ErrEmptyRequest     = fmt.Errorf("empty request")
)

// ParseRequest parses raw request text into a Request.
//
// The request line must yield exactly three space-separated tokens.
// Header lines split at the first colon; names are lowercased and
// trimmed, values trimmed, and the last occurrence wins on duplicates.
// A blank line ends the header section; everything after it is the body,
// verbatim. The Cookie header is split on ';' into name=value pairs;
// segments without '=' are ignored.
func ParseRequest(raw string) (*Request, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyRequest
	}

	rest := raw
	line, rest := nextLine(rest)
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: bad request line %q", ErrMalformedRequest, line)
	}

	req := &Request{
		Method:  parts[0],
		Path:    parts[1],
		Version: parts[2],
		Headers: make(map[string]string),
		Cookies: make(map[string]string),
	}

	for len(rest) > 0 {
		line, rest = nextLine(rest)
		if strings.TrimSpace(line) == "" {
			break
		}
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		name := strings.TrimSpace(lower(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		req.Headers[name] = value
		if name == "cookie" {
			parseCookies(value, req.Cookies)
		}
	}

	// The remainder is the body. It only exists when the reader honored
	// a numeric Content-Length, so take it verbatim.
	req.Body = rest
	return req, nil
}

// FormatResponse serializes a Response into wire text: status line,
// headers, one Set-Cookie line per response cookie, a blank line, then
// the body verbatim. Header and cookie names are emitted in sorted
// order so output is deterministic.
func FormatResponse(resp *Response) string {
	var b strings.Builder
	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", resp.StatusCode, resp.StatusMessage)

	for _, name := range sortedKeys(resp.Headers) {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(resp.Headers[name])
		b.WriteString("\r\n")
	}

	cookieNames := make([]string, 0, len(resp.Cookies))
	for name := range resp.Cookies {
		cookieNames = append(cookieNames, name)
	}
	sort.Strings(cookieNames)
	for _, name := range cookieNames {
		c := resp.Cookies[name]
		b.WriteString("Set-Cookie: ")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(c.Value)
		if c.MaxAge >= 0 {
			b.WriteString("; Max-Age=")
			b.WriteString(strconv.Itoa(c.MaxAge))
		}
		if c.Path != "" {
			b.WriteString("; Path=")
			b.WriteString(c.Path)
		}
		b.WriteString("\r\n")
	}

	b.WriteString("\r\n")
	b.WriteString(resp.Body)
	return b.String()
}

// NewErrorResponse builds a standard error response (400/404/500 class)
// with the canonical status message and a generic HTML body carrying
// the supplied message.
func NewErrorResponse(code int, message string) *Response {
	resp := NewResponse()
	resp.StatusCode = code
	resp.StatusMessage = StatusMessage(code)
	resp.SetHTMLBody(errorHTML(code, message))
	return resp
}

// StatusMessage returns the canonical reason phrase for a status code.
func StatusMessage(code int) string {
	switch code {
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	default:
		return "Unknown Status"
	}
}

func errorHTML(code int, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Error %d</title></head>
<body>
<h1>Error %d</h1>
<p>%s</p>
<hr>
<small>%s</small>
</body>
</html>
`, code, code, EscapeHTML(message), ServerToken)
}

// EscapeHTML escapes the characters that would break HTML bodies built
// from request-supplied strings.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// nextLine cuts the first line off s, tolerating both CRLF and bare LF
// endings. The returned line carries no terminator.
func nextLine(s string) (line, rest string) {
	idx := strings.IndexByte(s, '\n')
	if idx < 0 {
		return strings.TrimSuffix(s, "\r"), ""
	}
	return strings.TrimSuffix(s[:idx], "\r"), s[idx+1:]
}

func parseCookies(header string, into map[string]string) {
	for _, pair := range strings.Split(header, ";") {
		kv := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(kv) == 2 {
			into[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lower(s string) string {
	return strings.ToLower(s)
}
