// Package api
// Author: momentics
//
// Pool contract for bounded task dispatch and its read-only stats surface.

package api

import "time"

// Pool abstracts the bounded worker pool executing connection tasks.
type Pool interface {
	// Submit schedules a task, or fails with ErrPoolSaturated when the
	// pool is at maximum size with a full admission queue, or with
	// ErrPoolClosed after shutdown has begun.
	Submit(task func()) error

	// Stats returns a point-in-time snapshot of the pool counters.
	// Non-owning components observe the pool only through this.
	Stats() PoolStats

	// Shutdown stops admission, waits up to grace for in-flight tasks,
	// then returns. Idempotent.
	Shutdown(grace time.Duration)
}

// PoolStats is a read-only snapshot of worker pool state.
type PoolStats struct {
	CoreSize      int
	MaxSize       int
	QueueCapacity int
	QueueDepth    int
	PoolSize      int
	Active        int
	Completed     uint64
	Rejected      uint64
}
