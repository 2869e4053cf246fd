// File: handlers/users.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/momentics/hioload-httpd/internal/session"
	"github.com/momentics/hioload-httpd/protocol"
)

// SessionCookie is the cookie carrying the session identifier.
const SessionCookie = "JSESSIONID"

// sessionCookieMaxAge mirrors the 30 minute idle timeout.
const sessionCookieMaxAge = 1800

// Users is the session-backed multi-user view: each visitor gets a
// session via the store, a stable generated user name, and a listing
// of every other active session.
type Users struct {
	store *session.Store
}

func NewUsers(store *session.Store) *Users {
	return &Users{store: store}
}

func (h *Users) CanHandle(req *protocol.Request) bool {
	return req.Method == "GET" && req.Path == "/users"
}

func (h *Users) Handle(req *protocol.Request) (*protocol.Response, error) {
	cookieID := req.Cookie(SessionCookie)
	sess := h.store.GetOrCreate(cookieID)

	sess.SetAttr("userAgent", req.Header("User-Agent"))
	sess.SetAttr("lastPath", req.Path)

	userName := sess.StringAttr("userName")
	if userName == "" {
		userName = "User_" + sess.ID()[:8]
		sess.SetAttr("userName", userName)
	}

	active := h.store.ListActive()
	var rows strings.Builder
	for _, s := range active {
		name := s.StringAttr("userName")
		if name == "" {
			name = "(anonymous)"
		}
		marker := ""
		if s.ID() == sess.ID() {
			marker = " (you)"
		}
		fmt.Fprintf(&rows, "<tr><td>%s%s</td><td>%d</td><td>%s</td></tr>\n",
			protocol.EscapeHTML(name), marker, s.Visits(),
			s.Age().Round(time.Second))
	}

	resp := protocol.NewResponse()
	if sess.ID() != cookieID {
		resp.SetCookieAttrs(SessionCookie, sess.ID(), sessionCookieMaxAge, "/")
	}
	resp.SetHTMLBody(fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Active Users</title></head>
<body>
<h1>Active Users</h1>
<p>You are %s, visit %d of session %s.</p>
<table>
<tr><th>User</th><th>Visits</th><th>Session age</th></tr>
%s</table>
<p>%d active session(s).</p>
<a href="/">Back to Home</a>
</body>
</html>
`, protocol.EscapeHTML(userName), sess.Visits(),
		protocol.EscapeHTML(sess.ID()[:8]+"..."), rows.String(), len(active)))
	return resp, nil
}
