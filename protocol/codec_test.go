package protocol_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-httpd/protocol"
)

func TestParseRequest_RequestLine(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		method  string
		path    string
		version string
	}{
		{
			name:    "simple get",
			raw:     "GET / HTTP/1.1\r\n\r\n",
			method:  "GET",
			path:    "/",
			version: "HTTP/1.1",
		},
		{
			name:    "query string preserved verbatim",
			raw:     "GET /search?q=test&limit=10 HTTP/1.1\r\n\r\n",
			method:  "GET",
			path:    "/search?q=test&limit=10",
			version: "HTTP/1.1",
		},
		{
			name:    "bare lf line endings",
			raw:     "POST /submit HTTP/1.0\n\n",
			method:  "POST",
			path:    "/submit",
			version: "HTTP/1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := protocol.ParseRequest(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, tt.version, req.Version)
		})
	}
}

func TestParseRequest_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{name: "empty", raw: "", want: protocol.ErrEmptyRequest},
		{name: "whitespace only", raw: "  \r\n ", want: protocol.ErrEmptyRequest},
		{name: "two tokens", raw: "GET /\r\n\r\n", want: protocol.ErrMalformedRequest},
		{name: "four tokens", raw: "GET / HTTP/1.1 extra\r\n\r\n", want: protocol.ErrMalformedRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := protocol.ParseRequest(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseRequest_Headers(t *testing.T) {
	raw := "GET /headers HTTP/1.1\r\n" +
		"Content-Type: application/json\r\n" +
		"X-Custom:  padded value \r\n" +
		"X-Dup: first\r\n" +
		"X-Dup: second\r\n" +
		"\r\n"

	req, err := protocol.ParseRequest(raw)
	require.NoError(t, err)

	assert.Equal(t, "application/json", req.Headers["content-type"])
	assert.Equal(t, "application/json", req.Header("Content-Type"))
	assert.Equal(t, "padded value", req.Headers["x-custom"])
	assert.Equal(t, "second", req.Headers["x-dup"], "last occurrence wins")
}

func TestParseRequest_Cookies(t *testing.T) {
	raw := "GET /cookies HTTP/1.1\r\n" +
		"Cookie: sessionId=abc123; visitCount=4; malformed; theme=dark\r\n" +
		"\r\n"

	req, err := protocol.ParseRequest(raw)
	require.NoError(t, err)

	assert.Equal(t, "abc123", req.Cookie("sessionId"))
	assert.Equal(t, "4", req.Cookie("visitCount"))
	assert.Equal(t, "dark", req.Cookie("theme"))
	assert.Len(t, req.Cookies, 3, "segment without '=' is ignored")
}

func TestParseRequest_Body(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\n" +
		"Content-Length: 11\r\n" +
		"\r\n" +
		`{"id": 123}`

	req, err := protocol.ParseRequest(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"id": 123}`, req.Body)
}

func TestParseRequest_NoBody(t *testing.T) {
	req, err := protocol.ParseRequest("GET / HTTP/1.1\r\nHost: localhost\r\n\r\n")
	require.NoError(t, err)
	assert.Empty(t, req.Body)
}

func TestFormatResponse_Literal(t *testing.T) {
	resp := protocol.NewResponse()
	resp.StatusCode = 201
	resp.StatusMessage = "Created"
	resp.SetHeader("Content-Type", "application/json")
	resp.SetBody(`{"id":123}`)

	text := protocol.FormatResponse(resp)

	assert.Contains(t, text, "201 Created")
	assert.Contains(t, text, "Content-Type: application/json")
	assert.Contains(t, text, `{"id":123}`)
	assert.True(t, strings.HasPrefix(text, "HTTP/1.1 201 Created\r\n"))
}

func TestFormatResponse_ContentLengthDerived(t *testing.T) {
	resp := protocol.NewResponse()
	resp.SetBody("hello")

	text := protocol.FormatResponse(resp)
	assert.Contains(t, text, "Content-Length: 5")
}

func TestFormatResponse_Cookies(t *testing.T) {
	resp := protocol.NewResponse()
	resp.SetCookie("plain", "v1")
	resp.SetCookieAttrs("full", "v2", 3600, "/")

	text := protocol.FormatResponse(resp)
	assert.Contains(t, text, "Set-Cookie: plain=v1\r\n")
	assert.Contains(t, text, "Set-Cookie: full=v2; Max-Age=3600; Path=/\r\n")
}

func TestFormatResponse_BlankLineSeparator(t *testing.T) {
	resp := protocol.NewResponse()
	resp.SetTextBody("body text")

	text := protocol.FormatResponse(resp)
	head, body, found := strings.Cut(text, "\r\n\r\n")
	require.True(t, found)
	assert.Contains(t, head, "HTTP/1.1 200 OK")
	assert.Equal(t, "body text", body)
}

func TestNewErrorResponse(t *testing.T) {
	resp := protocol.NewErrorResponse(404, "resource '/missing' was not found")

	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Not Found", resp.StatusMessage)
	assert.Contains(t, resp.Body, "Error 404")
	assert.Contains(t, resp.Body, "resource &#39;/missing&#39; was not found")

	text := protocol.FormatResponse(resp)
	assert.Contains(t, text, "HTTP/1.1 404 Not Found")
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "OK", protocol.StatusMessage(200))
	assert.Equal(t, "Bad Request", protocol.StatusMessage(400))
	assert.Equal(t, "Not Found", protocol.StatusMessage(404))
	assert.Equal(t, "Internal Server Error", protocol.StatusMessage(500))
	assert.Equal(t, "Unknown Status", protocol.StatusMessage(418))
}
