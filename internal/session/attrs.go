// File: internal/session/attrs.go
// Package session
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread-safe attribute store backing a session's open-ended key/value
// mapping.

package session

import "sync"

type attrStore struct {
	mu    sync.RWMutex
	store map[string]any
}

func newAttrStore() *attrStore {
	return &attrStore{
		store: make(map[string]any),
	}
}

// Set stores a key-value pair.
func (a *attrStore) Set(key string, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.store[key] = value
}

// Get retrieves a value and its existence.
func (a *attrStore) Get(key string) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.store[key]
	return v, ok
}

// Delete removes a key.
func (a *attrStore) Delete(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.store, key)
}

// Snapshot returns a shallow copy of the mapping.
func (a *attrStore) Snapshot() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	cp := make(map[string]any, len(a.store))
	for k, v := range a.store {
		cp[k] = v
	}
	return cp
}
