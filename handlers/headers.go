// File: handlers/headers.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/momentics/hioload-httpd/protocol"
)

// Headers dumps the parsed request headers back to the client.
type Headers struct{}

func NewHeaders() *Headers {
	return &Headers{}
}

func (h *Headers) CanHandle(req *protocol.Request) bool {
	return req.Method == "GET" && req.Path == "/headers"
}

func (h *Headers) Handle(req *protocol.Request) (*protocol.Response, error) {
	names := make([]string, 0, len(req.Headers))
	for name := range req.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows strings.Builder
	for _, name := range names {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td></tr>\n",
			protocol.EscapeHTML(name), protocol.EscapeHTML(req.Headers[name]))
	}
	if rows.Len() == 0 {
		rows.WriteString("<tr><td colspan=\"2\"><em>No headers received</em></td></tr>\n")
	}

	resp := protocol.NewResponse()
	resp.SetHTMLBody(fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Request Headers</title></head>
<body>
<h1>Request Headers</h1>
<table>
<tr><th>Name</th><th>Value</th></tr>
%s</table>
<p>%d header(s) received.</p>
<a href="/">Back to Home</a>
</body>
</html>
`, rows.String(), len(req.Headers)))
	return resp, nil
}
