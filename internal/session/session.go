// File: internal/session/session.go
// Package session implements the concurrent, time-expiring session store.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package session

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Session is one user session: an opaque identifier, creation and
// last-access timestamps, a visit counter, and an attribute map.
//
// The store owns the session's lifetime; handlers sharing a session may
// mutate attributes and the access timestamp concurrently. Attribute
// writes from parallel requests carrying the same cookie may interleave;
// the store only guarantees existence/creation atomicity per identifier.
type Session struct {
	id         string
	createdAt  time.Time
	lastAccess atomic.Int64 // unix nanoseconds
	visits     atomic.Int64
	attrs      *attrStore
}

func newSession(id string) *Session {
	s := &Session{
		id:        id,
		createdAt: time.Now(),
		attrs:     newAttrStore(),
	}
	s.lastAccess.Store(s.createdAt.UnixNano())
	return s
}

// ID returns the opaque session identifier.
func (s *Session) ID() string {
	return s.id
}

// CreatedAt returns the creation timestamp.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastAccess returns the last-access timestamp.
func (s *Session) LastAccess() time.Time {
	return time.Unix(0, s.lastAccess.Load())
}

// Touch bumps the last-access timestamp and the visit counter.
func (s *Session) Touch() {
	s.lastAccess.Store(time.Now().UnixNano())
	s.visits.Add(1)
}

// Visits returns the visit counter.
func (s *Session) Visits() int {
	return int(s.visits.Load())
}

// Age returns time elapsed since creation.
func (s *Session) Age() time.Duration {
	return time.Since(s.createdAt)
}

// Expired reports whether the session has been idle longer than timeout.
func (s *Session) Expired(timeout time.Duration) bool {
	return time.Since(s.LastAccess()) > timeout
}

// SetAttr stores an attribute. A nil value removes the key.
func (s *Session) SetAttr(key string, value any) {
	if value == nil {
		s.attrs.Delete(key)
		return
	}
	s.attrs.Set(key, value)
}

// Attr retrieves an attribute and its existence.
func (s *Session) Attr(key string) (any, bool) {
	return s.attrs.Get(key)
}

// StringAttr retrieves a string attribute, or "" if absent or not a string.
func (s *Session) StringAttr(key string) string {
	v, ok := s.attrs.Get(key)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// RemoveAttr deletes an attribute.
func (s *Session) RemoveAttr(key string) {
	s.attrs.Delete(key)
}

// Attrs returns a shallow copy of the attribute map.
func (s *Session) Attrs() map[string]any {
	return s.attrs.Snapshot()
}

func (s *Session) String() string {
	id := s.id
	if len(id) > 8 {
		id = id[:8] + "..."
	}
	return fmt.Sprintf("Session{id=%s, age=%s, visits=%d}", id, s.Age().Round(time.Second), s.Visits())
}
