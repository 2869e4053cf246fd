package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-httpd/api"
	"github.com/momentics/hioload-httpd/control"
)

func TestMetrics_Expose(t *testing.T) {
	m := control.NewMetrics()
	m.ConnAccepted()
	m.ConnAccepted()
	m.ConnRejected()
	m.ObservePool(api.PoolStats{PoolSize: 4, Active: 2, QueueDepth: 1, Completed: 9, Rejected: 1})
	m.ObserveSessions(3)

	text, err := m.Expose()
	require.NoError(t, err)

	assert.Contains(t, text, "httpd_connections_accepted_total 2")
	assert.Contains(t, text, "httpd_connections_rejected_total 1")
	assert.Contains(t, text, "httpd_pool_workers 4")
	assert.Contains(t, text, "httpd_pool_active_workers 2")
	assert.Contains(t, text, "httpd_pool_queue_depth 1")
	assert.Contains(t, text, "httpd_pool_completed_tasks 9")
	assert.Contains(t, text, "httpd_active_sessions 3")
}

func TestMetrics_Uptime(t *testing.T) {
	m := control.NewMetrics()
	assert.GreaterOrEqual(t, m.Uptime().Nanoseconds(), int64(0))
}
