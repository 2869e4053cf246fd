// File: handlers/status.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package handlers

import (
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/momentics/hioload-httpd/api"
	"github.com/momentics/hioload-httpd/control"
	"github.com/momentics/hioload-httpd/internal/session"
	"github.com/momentics/hioload-httpd/protocol"
)

// Status renders the HTML monitoring dashboard: worker pool snapshot,
// session count, and host memory/CPU figures.
type Status struct {
	poolStats func() api.PoolStats
	accepted  func() uint64
	store     *session.Store
	metrics   *control.Metrics
}

func NewStatus(poolStats func() api.PoolStats, accepted func() uint64, store *session.Store, metrics *control.Metrics) *Status {
	return &Status{poolStats: poolStats, accepted: accepted, store: store, metrics: metrics}
}

func (h *Status) CanHandle(req *protocol.Request) bool {
	return req.Method == "GET" && req.Path == "/status"
}

func (h *Status) Handle(req *protocol.Request) (*protocol.Response, error) {
	st := h.poolStats()

	memLine := "memory: n/a"
	if vm, err := mem.VirtualMemory(); err == nil {
		memLine = fmt.Sprintf("memory: %.1f%% of %d MB used",
			vm.UsedPercent, vm.Total/(1024*1024))
	}
	cpuLine := fmt.Sprintf("cpus: %d", runtime.NumCPU())
	if counts, err := cpu.Counts(true); err == nil {
		cpuLine = fmt.Sprintf("cpus: %d logical", counts)
	}

	resp := protocol.NewResponse()
	resp.SetHTMLBody(fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Server Status</title></head>
<body>
<h1>Server Status</h1>
<h2>Worker Pool</h2>
<ul>
<li>pool size: %d/%d (current/max), core %d</li>
<li>active workers: %d</li>
<li>queue: %d/%d (depth/capacity)</li>
<li>completed tasks: %d</li>
<li>rejected tasks: %d</li>
</ul>
<h2>Connections</h2>
<ul>
<li>accepted connections: %d</li>
</ul>
<h2>Sessions</h2>
<ul>
<li>active sessions: %d</li>
</ul>
<h2>Host</h2>
<ul>
<li>%s</li>
<li>%s</li>
<li>goroutines: %d</li>
<li>uptime: %s</li>
</ul>
<a href="/">Back to Home</a>
</body>
</html>
`, st.PoolSize, st.MaxSize, st.CoreSize,
		st.Active,
		st.QueueDepth, st.QueueCapacity,
		st.Completed,
		st.Rejected,
		h.accepted(),
		h.store.ActiveCount(),
		memLine, cpuLine,
		runtime.NumGoroutine(),
		h.metrics.Uptime().Round(time.Second)))
	return resp, nil
}
