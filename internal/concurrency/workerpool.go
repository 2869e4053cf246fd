// File: internal/concurrency/workerpool.go
// Package concurrency implements the bounded worker pool executing
// connection tasks.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The pool keeps up to core workers alive at all times, grows to max
// under load, and fronts admission with a bounded FIFO queue. When the
// queue is full and the pool is at max size, Submit fails immediately;
// admission is explicit backpressure, never an unbounded queue.

package concurrency

import (
	"sync"
	"time"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/momentics/hioload-httpd/api"
)

// Task is a unit of work to execute.
type Task func()

// WorkerPool is a bounded pool of reusable worker goroutines with a
// bounded FIFO admission queue.
//
// Admission policy: a task first goes to a worker below core size; if
// the core is busy and the queue has capacity, the task is queued; if
// the queue is full, a surplus worker up to max size is spawned; at max
// size with a full queue, Submit fails with api.ErrPoolSaturated.
type WorkerPool struct {
	mu   sync.Mutex
	cond *sync.Cond

	pending  *queue.Queue // FIFO admission queue, bounded by queueCap
	queueCap int

	core, max int
	size      int // current worker count
	active    int // workers currently executing a task
	nextID    int // worker id sequence, diagnostics only

	completed uint64
	rejected  uint64

	closed bool
	wg     sync.WaitGroup
	logger *zap.Logger
}

var _ api.Pool = (*WorkerPool)(nil)

// NewWorkerPool builds a pool with the given core size, max size, and
// admission queue capacity. Workers are spawned on demand, not eagerly.
func NewWorkerPool(core, max, queueCap int, logger *zap.Logger) *WorkerPool {
	if core <= 0 {
		core = 1
	}
	if max < core {
		max = core
	}
	if queueCap < 0 {
		queueCap = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &WorkerPool{
		pending:  queue.New(),
		queueCap: queueCap,
		core:     core,
		max:      max,
		logger:   logger,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Submit admits a task per the pool's admission policy.
func (p *WorkerPool) Submit(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return api.ErrPoolClosed
	}

	switch {
	case p.size < p.core:
		p.startWorkerLocked(task, true)
	case p.pending.Length() < p.queueCap:
		p.pending.Add(Task(task))
		p.cond.Signal()
	case p.size < p.max:
		p.startWorkerLocked(task, false)
	default:
		p.rejected++
		return api.ErrPoolSaturated
	}
	return nil
}

// startWorkerLocked spawns a worker seeded with task. Callers hold p.mu.
func (p *WorkerPool) startWorkerLocked(task func(), coreWorker bool) {
	p.size++
	p.nextID++
	id := p.nextID
	p.wg.Add(1)
	go p.runWorker(id, task, coreWorker)
}

// runWorker executes the seed task, then drains the admission queue.
// Core workers park on the condition variable between tasks; surplus
// workers retire as soon as the queue is empty.
func (p *WorkerPool) runWorker(id int, seed Task, coreWorker bool) {
	defer p.wg.Done()
	p.logger.Debug("worker started",
		zap.Int("worker", id),
		zap.Bool("core", coreWorker))

	task := seed
	for {
		if task != nil {
			p.execute(id, task)
		}

		p.mu.Lock()
		for p.pending.Length() == 0 {
			if p.closed || !coreWorker {
				p.size--
				p.mu.Unlock()
				p.logger.Debug("worker stopped", zap.Int("worker", id))
				return
			}
			p.cond.Wait()
		}
		task = p.pending.Remove().(Task)
		p.mu.Unlock()
	}
}

// execute runs one task, recovering from panics so no failure can
// terminate a worker permanently.
func (p *WorkerPool) execute(id int, task Task) {
	p.mu.Lock()
	p.active++
	p.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked",
				zap.Int("worker", id),
				zap.Any("panic", r))
		}
		p.mu.Lock()
		p.active--
		p.completed++
		p.mu.Unlock()
	}()
	task()
}

// Stats returns a read-only snapshot of the pool counters.
func (p *WorkerPool) Stats() api.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return api.PoolStats{
		CoreSize:      p.core,
		MaxSize:       p.max,
		QueueCapacity: p.queueCap,
		QueueDepth:    p.pending.Length(),
		PoolSize:      p.size,
		Active:        p.active,
		Completed:     p.completed,
		Rejected:      p.rejected,
	}
}

// Shutdown stops admission, wakes parked workers, and waits up to grace
// for in-flight and queued tasks to finish. Workers still running after
// the grace period are abandoned; connection tasks are bounded by their
// socket deadlines, so stragglers terminate on their own. Idempotent.
func (p *WorkerPool) Shutdown(grace time.Duration) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("worker pool drained")
	case <-time.After(grace):
		p.logger.Warn("worker pool shutdown grace elapsed with tasks in flight",
			zap.Duration("grace", grace))
	}
}
