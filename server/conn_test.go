package server

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequest_HugeContentLengthCapped(t *testing.T) {
	// A client declaring an absurd length must not make the reader
	// allocate it. The short actual body comes back intact; the read
	// ends at the connection's EOF instead of an exabyte buffer fill.
	body := strings.Repeat("a", 64)
	raw := "POST /submit HTTP/1.1\r\n" +
		"Content-Length: 4611686018427387904\r\n" +
		"\r\n" + body

	got, err := readRequest(bufio.NewReader(strings.NewReader(raw)))

	require.Error(t, err, "declared length exceeds what the client sent")
	assert.True(t, strings.HasSuffix(got, body))
	assert.Less(t, len(got), maxBodyBytes+1024)
}

func TestReadRequest_UnparsableContentLength(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\n" +
		"Content-Length: banana\r\n" +
		"\r\n"

	got, err := readRequest(bufio.NewReader(strings.NewReader(raw)))

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "\r\n\r\n"), "no body read when the length is unparsable")
}

func TestHeaderValueFold(t *testing.T) {
	v, ok := headerValueFold("Content-Length: 42", "content-length")
	require.True(t, ok)
	assert.Equal(t, " 42", v)

	_, ok = headerValueFold("X-Content-Length: 42", "content-length")
	assert.False(t, ok)
}
