// File: handlers/home.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package handlers

import (
	"fmt"
	"runtime"

	"github.com/momentics/hioload-httpd/protocol"
)

// Home serves the landing page listing the available endpoints.
type Home struct{}

func NewHome() *Home {
	return &Home{}
}

func (h *Home) CanHandle(req *protocol.Request) bool {
	return req.Method == "GET" && req.Path == "/"
}

func (h *Home) Handle(req *protocol.Request) (*protocol.Response, error) {
	resp := protocol.NewResponse()
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
<h1>Concurrent Web Server</h1>
<p>Served by %s on Go %s (%d CPUs).</p>
<ul>
<li><a href="/time">/time</a> - current server time</li>
<li><a href="/headers">/headers</a> - request header dump</li>
<li><a href="/cookies">/cookies</a> - cookie echo and visit counter</li>
<li><a href="/load-test">/load-test</a> - synthetic CPU/sleep load</li>
<li><a href="/users">/users</a> - session-backed multi-user view</li>
<li><a href="/status">/status</a> - server dashboard</li>
<li><a href="/metrics">/metrics</a> - prometheus exposition</li>
</ul>
</body>
</html>
`, protocol.ServerToken, protocol.ServerToken, runtime.Version(), runtime.NumCPU())
	resp.SetHTMLBody(body)
	return resp, nil
}
