// File: handlers/cookies.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package handlers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/momentics/hioload-httpd/protocol"
)

// Cookies echoes the request cookies and maintains a visit counter
// cookie alongside a last-visit timestamp cookie.
type Cookies struct {
	now func() time.Time
}

func NewCookies() *Cookies {
	return &Cookies{now: time.Now}
}

func (h *Cookies) CanHandle(req *protocol.Request) bool {
	return req.Method == "GET" && req.Path == "/cookies"
}

func (h *Cookies) Handle(req *protocol.Request) (*protocol.Response, error) {
	resp := protocol.NewResponse()

	visits := 1
	if prev := req.Cookie("visitCount"); prev != "" {
		if n, err := strconv.Atoi(prev); err == nil {
			visits = n + 1
		}
	}
	resp.SetCookieAttrs("visitCount", strconv.Itoa(visits), 3600, "/")
	resp.SetCookieAttrs("lastVisit", strconv.FormatInt(h.now().UnixMilli(), 10), 3600, "/")

	names := make([]string, 0, len(req.Cookies))
	for name := range req.Cookies {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows strings.Builder
	for _, name := range names {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td></tr>\n",
			protocol.EscapeHTML(name), protocol.EscapeHTML(req.Cookies[name]))
	}
	if rows.Len() == 0 {
		rows.WriteString("<tr><td colspan=\"2\"><em>No cookies found</em></td></tr>\n")
	}

	resp.SetHTMLBody(fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Cookies</title></head>
<body>
<h1>Cookies</h1>
<table>
<tr><th>Name</th><th>Value</th></tr>
%s</table>
<p>Visit number: %d</p>
<a href="/">Back to Home</a>
</body>
</html>
`, rows.String(), visits))
	return resp, nil
}
