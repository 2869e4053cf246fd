// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for server monitoring. Counters and gauges
// live on a private prometheus registry; the exposition text is served
// through the server's own wire codec, not net/http.

package control

import (
	"bytes"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/momentics/hioload-httpd/api"
)

// Metrics aggregates server counters. Non-owning components mutate it
// only through the Inc/Observe methods and read it through Expose.
type Metrics struct {
	registry *prometheus.Registry
	started  time.Time

	connAccepted prometheus.Counter
	connRejected prometheus.Counter

	poolSize      prometheus.Gauge
	poolActive    prometheus.Gauge
	queueDepth    prometheus.Gauge
	tasksComplete prometheus.Gauge
	tasksRejected prometheus.Gauge

	activeSessions prometheus.Gauge
}

// NewMetrics builds a registry with all server collectors registered.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
		connAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "httpd",
			Name:      "connections_accepted_total",
			Help:      "Connections accepted by the listener.",
		}),
		connRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "httpd",
			Name:      "connections_rejected_total",
			Help:      "Connections dropped because the worker pool was saturated.",
		}),
		poolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "httpd",
			Name:      "pool_workers",
			Help:      "Current worker pool size.",
		}),
		poolActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "httpd",
			Name:      "pool_active_workers",
			Help:      "Workers currently executing a connection task.",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "httpd",
			Name:      "pool_queue_depth",
			Help:      "Tasks waiting in the admission queue.",
		}),
		tasksComplete: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "httpd",
			Name:      "pool_completed_tasks",
			Help:      "Tasks completed by the worker pool.",
		}),
		tasksRejected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "httpd",
			Name:      "pool_rejected_tasks",
			Help:      "Submissions rejected by the admission policy.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "httpd",
			Name:      "active_sessions",
			Help:      "Non-expired sessions in the store.",
		}),
	}
	m.registry.MustRegister(
		m.connAccepted, m.connRejected,
		m.poolSize, m.poolActive, m.queueDepth,
		m.tasksComplete, m.tasksRejected,
		m.activeSessions,
	)
	return m
}

// ConnAccepted counts one accepted connection.
func (m *Metrics) ConnAccepted() {
	m.connAccepted.Inc()
}

// ConnRejected counts one dropped connection.
func (m *Metrics) ConnRejected() {
	m.connRejected.Inc()
}

// ObservePool refreshes the pool gauges from a stats snapshot.
func (m *Metrics) ObservePool(st api.PoolStats) {
	m.poolSize.Set(float64(st.PoolSize))
	m.poolActive.Set(float64(st.Active))
	m.queueDepth.Set(float64(st.QueueDepth))
	m.tasksComplete.Set(float64(st.Completed))
	m.tasksRejected.Set(float64(st.Rejected))
}

// ObserveSessions refreshes the active-session gauge.
func (m *Metrics) ObserveSessions(active int) {
	m.activeSessions.Set(float64(active))
}

// Uptime returns time elapsed since the registry was created.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.started)
}

// Expose renders the registry in the prometheus text exposition format.
func (m *Metrics) Expose() (string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
