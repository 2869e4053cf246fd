// File: handlers/metrics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/momentics/hioload-httpd/api"
	"github.com/momentics/hioload-httpd/control"
	"github.com/momentics/hioload-httpd/internal/session"
	"github.com/momentics/hioload-httpd/protocol"
)

// Metrics serves machine-readable monitoring data: the prometheus text
// exposition at /metrics and a JSON pool snapshot at /api/metrics.
// Gauges are refreshed from the live pool and store on every scrape.
type Metrics struct {
	metrics   *control.Metrics
	poolStats func() api.PoolStats
	store     *session.Store
}

func NewMetrics(m *control.Metrics, poolStats func() api.PoolStats, store *session.Store) *Metrics {
	return &Metrics{metrics: m, poolStats: poolStats, store: store}
}

func (h *Metrics) CanHandle(req *protocol.Request) bool {
	return req.Method == "GET" && (req.Path == "/metrics" || req.Path == "/api/metrics")
}

func (h *Metrics) Handle(req *protocol.Request) (*protocol.Response, error) {
	st := h.poolStats()
	h.metrics.ObservePool(st)
	h.metrics.ObserveSessions(h.store.ActiveCount())

	resp := protocol.NewResponse()
	if req.Path == "/api/metrics" {
		payload, err := json.Marshal(metricsPayload{
			CorePoolSize:       st.CoreSize,
			MaximumPoolSize:    st.MaxSize,
			CurrentPoolSize:    st.PoolSize,
			ActiveThreads:      st.Active,
			QueueSize:          st.QueueDepth,
			QueueCapacity:      st.QueueCapacity,
			CompletedTaskCount: st.Completed,
			RejectedTaskCount:  st.Rejected,
			ActiveSessions:     h.store.ActiveCount(),
			UptimeSeconds:      int64(h.metrics.Uptime().Seconds()),
		})
		if err != nil {
			return nil, fmt.Errorf("encode metrics: %w", err)
		}
		resp.SetJSONBody(string(payload))
		return resp, nil
	}

	text, err := h.metrics.Expose()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	resp.SetHeader("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	resp.SetBody(text)
	return resp, nil
}

type metricsPayload struct {
	CorePoolSize       int    `json:"corePoolSize"`
	MaximumPoolSize    int    `json:"maximumPoolSize"`
	CurrentPoolSize    int    `json:"currentPoolSize"`
	ActiveThreads      int    `json:"activeThreads"`
	QueueSize          int    `json:"queueSize"`
	QueueCapacity      int    `json:"queueCapacity"`
	CompletedTaskCount uint64 `json:"completedTaskCount"`
	RejectedTaskCount  uint64 `json:"rejectedTaskCount"`
	ActiveSessions     int    `json:"activeSessions"`
	UptimeSeconds      int64  `json:"uptimeSeconds"`
}
