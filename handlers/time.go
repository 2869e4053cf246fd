// File: handlers/time.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package handlers

import (
	"fmt"
	"time"

	"github.com/momentics/hioload-httpd/protocol"
)

// Time reports the current server time.
type Time struct {
	// now is swappable for tests.
	now func() time.Time
}

func NewTime() *Time {
	return &Time{now: time.Now}
}

func (h *Time) CanHandle(req *protocol.Request) bool {
	return req.Method == "GET" && req.Path == "/time"
}

func (h *Time) Handle(req *protocol.Request) (*protocol.Response, error) {
	now := h.now()
	resp := protocol.NewResponse()
	resp.SetHTMLBody(fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Server Time</title></head>
<body>
<h1>Server Time</h1>
<p class="formatted">%s</p>
<p class="iso">%s</p>
<a href="/">Back to Home</a>
</body>
</html>
`, now.Format("2006-01-02 15:04:05"), now.Format(time.RFC3339)))
	return resp, nil
}
