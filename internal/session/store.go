// File: internal/session/store.go
// Package session
// Author: momentics <momentics@gmail.com>
//
// Sharded, thread-safe session store with a background expiry sweep.

package session

import (
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultShards = 16

// Store maps session identifiers to sessions. Operations on the same
// identifier are linearizable; operations on different identifiers
// proceed in parallel across shards. A background sweep evicts idle
// sessions on a fixed period, independent of request traffic.
type Store struct {
	shards []*storeShard
	mask   uint32

	timeout       time.Duration
	sweepInterval time.Duration
	logger        *zap.Logger

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type storeShard struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore constructs a store with the given idle timeout and sweep
// period, and starts the sweep goroutine. Close cancels it.
func NewStore(timeout, sweepInterval time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := nextPowerOfTwo(defaultShards)
	shards := make([]*storeShard, m)
	for i := range shards {
		shards[i] = &storeShard{sessions: make(map[string]*Session)}
	}
	st := &Store{
		shards:        shards,
		mask:          m - 1,
		timeout:       timeout,
		sweepInterval: sweepInterval,
		logger:        logger,
		done:          make(chan struct{}),
	}
	st.wg.Add(1)
	go st.sweepLoop()
	return st
}

// shard picks the shard for a given id.
func (st *Store) shard(id string) *storeShard {
	return st.shards[fnv32(id)&st.mask]
}

// GetOrCreate returns the session for id, bumping its last-access
// timestamp and visit counter. When id is empty, unknown, or expired,
// a brand-new session with a freshly generated identifier is created
// and registered instead. The shard lock makes the same-identifier
// race at-most-one-winner.
func (st *Store) GetOrCreate(id string) *Session {
	if strings.TrimSpace(id) != "" {
		sh := st.shard(id)
		sh.mu.Lock()
		if s, ok := sh.sessions[id]; ok {
			if !s.Expired(st.timeout) {
				s.Touch()
				sh.mu.Unlock()
				return s
			}
			delete(sh.sessions, id)
		}
		sh.mu.Unlock()
	}
	return st.create()
}

// create registers a new session under a freshly generated identifier.
func (st *Store) create() *Session {
	id := newSessionID()
	s := newSession(id)
	sh := st.shard(id)
	sh.mu.Lock()
	sh.sessions[id] = s
	sh.mu.Unlock()
	return s
}

// Get is a read-only lookup: it returns nothing for an absent or
// expired identifier and never creates.
func (st *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	sh := st.shard(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	s, ok := sh.sessions[id]
	if !ok || s.Expired(st.timeout) {
		return nil, false
	}
	return s, true
}

// Remove deletes the session with the given identifier.
func (st *Store) Remove(id string) {
	if id == "" {
		return
	}
	sh := st.shard(id)
	sh.mu.Lock()
	delete(sh.sessions, id)
	sh.mu.Unlock()
}

// ListActive returns every non-expired session.
func (st *Store) ListActive() []*Session {
	var out []*Session
	for _, sh := range st.shards {
		sh.mu.RLock()
		for _, s := range sh.sessions {
			if !s.Expired(st.timeout) {
				out = append(out, s)
			}
		}
		sh.mu.RUnlock()
	}
	return out
}

// ActiveCount returns the number of non-expired sessions.
func (st *Store) ActiveCount() int {
	n := 0
	for _, sh := range st.shards {
		sh.mu.RLock()
		for _, s := range sh.sessions {
			if !s.Expired(st.timeout) {
				n++
			}
		}
		sh.mu.RUnlock()
	}
	return n
}

// Sweep removes every expired session and returns how many were evicted.
// The periodic sweep calls this; it is exported so shutdown paths and
// tests can force a pass. Idempotent.
func (st *Store) Sweep() int {
	removed := 0
	for _, sh := range st.shards {
		sh.mu.Lock()
		for id, s := range sh.sessions {
			if s.Expired(st.timeout) {
				delete(sh.sessions, id)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// sweepLoop runs the periodic expiry pass until Close.
func (st *Store) sweepLoop() {
	defer st.wg.Done()
	ticker := time.NewTicker(st.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			if removed := st.Sweep(); removed > 0 {
				st.logger.Info("swept expired sessions",
					zap.Int("removed", removed),
					zap.Int("active", st.ActiveCount()))
			}
		}
	}
}

// Close cancels the sweep goroutine. Idempotent.
func (st *Store) Close() {
	st.closeOnce.Do(func() {
		close(st.done)
	})
	st.wg.Wait()
}

// newSessionID generates a globally unique, non-guessable identifier:
// a random 128-bit UUID with the dashes stripped.
func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func fnv32(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func nextPowerOfTwo(n uint32) uint32 {
	m := uint32(1)
	for m < n {
		m <<= 1
	}
	return m
}
