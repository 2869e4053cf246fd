package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, timeout time.Duration) *Store {
	t.Helper()
	st := NewStore(timeout, time.Hour, zap.NewNop())
	t.Cleanup(st.Close)
	return st
}

// age rewinds a session's last-access timestamp.
func age(s *Session, by time.Duration) {
	s.lastAccess.Store(time.Now().Add(-by).UnixNano())
}

func TestGetOrCreate_EmptyID(t *testing.T) {
	st := newTestStore(t, time.Minute)

	s := st.GetOrCreate("")
	require.NotNil(t, s)
	assert.Len(t, s.ID(), 32, "uuid with dashes stripped")
	assert.Equal(t, 1, st.ActiveCount())
}

func TestGetOrCreate_ExistingSession(t *testing.T) {
	st := newTestStore(t, time.Minute)

	created := st.GetOrCreate("")
	got := st.GetOrCreate(created.ID())

	assert.Same(t, created, got)
	assert.Equal(t, 1, got.Visits())
	assert.Equal(t, 1, st.ActiveCount())
}

func TestGetOrCreate_UnknownIDCreatesFresh(t *testing.T) {
	st := newTestStore(t, time.Minute)

	s := st.GetOrCreate("nonexistent")
	assert.NotEqual(t, "nonexistent", s.ID())
	assert.Equal(t, 1, st.ActiveCount())
}

func TestGetOrCreate_ExpiredIDCreatesFresh(t *testing.T) {
	st := newTestStore(t, time.Minute)

	old := st.GetOrCreate("")
	age(old, 2*time.Minute)

	fresh := st.GetOrCreate(old.ID())
	assert.NotEqual(t, old.ID(), fresh.ID())

	// The expired entry was dropped on lookup.
	_, ok := st.Get(old.ID())
	assert.False(t, ok)
	assert.Equal(t, 1, st.ActiveCount())
}

func TestGetOrCreate_ConcurrentDistinct(t *testing.T) {
	st := newTestStore(t, time.Minute)
	const n = 64

	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- st.GetOrCreate("").ID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate session id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, st.ActiveCount())
}

func TestGetOrCreate_ConcurrentSameID(t *testing.T) {
	st := newTestStore(t, time.Minute)
	const n = 64

	s := st.GetOrCreate("")
	id := s.ID()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := st.GetOrCreate(id)
			assert.Same(t, s, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, s.Visits())
	assert.Equal(t, 1, st.ActiveCount())
}

func TestGet_ReadOnly(t *testing.T) {
	st := newTestStore(t, time.Minute)

	_, ok := st.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, st.ActiveCount(), "Get never creates")

	s := st.GetOrCreate("")
	got, ok := st.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 0, got.Visits(), "Get does not touch")
}

func TestGet_ExpiredHidden(t *testing.T) {
	st := newTestStore(t, time.Minute)

	s := st.GetOrCreate("")
	age(s, 2*time.Minute)

	_, ok := st.Get(s.ID())
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	st := newTestStore(t, time.Minute)

	s := st.GetOrCreate("")
	st.Remove(s.ID())

	_, ok := st.Get(s.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, st.ActiveCount())
}

func TestExpiryAndSweep(t *testing.T) {
	st := newTestStore(t, time.Minute)

	expired := st.GetOrCreate("")
	live := st.GetOrCreate("")
	age(expired, 2*time.Minute)

	assert.True(t, expired.Expired(time.Minute))
	assert.False(t, live.Expired(time.Minute))

	removed := st.Sweep()
	assert.Equal(t, 1, removed)

	active := st.ListActive()
	require.Len(t, active, 1)
	assert.Equal(t, live.ID(), active[0].ID())

	_, ok := st.Get(expired.ID())
	assert.False(t, ok)
}

func TestSweepLoop_Periodic(t *testing.T) {
	st := NewStore(10*time.Millisecond, 20*time.Millisecond, zap.NewNop())
	defer st.Close()

	st.GetOrCreate("")
	require.Equal(t, 1, st.ActiveCount())

	assert.Eventually(t, func() bool {
		return st.ActiveCount() == 0
	}, time.Second, 10*time.Millisecond, "sweep loop evicts idle sessions")
}

func TestSessionAttributes(t *testing.T) {
	st := newTestStore(t, time.Minute)
	s := st.GetOrCreate("")

	s.SetAttr("userName", "User_abc")
	s.SetAttr("count", 3)

	assert.Equal(t, "User_abc", s.StringAttr("userName"))
	v, ok := s.Attr("count")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	s.SetAttr("count", nil) // nil removes
	_, ok = s.Attr("count")
	assert.False(t, ok)

	snap := s.Attrs()
	snap["userName"] = "mutated"
	assert.Equal(t, "User_abc", s.StringAttr("userName"), "snapshot is a copy")
}

func TestCloseIdempotent(t *testing.T) {
	st := NewStore(time.Minute, time.Hour, zap.NewNop())
	st.Close()
	st.Close()
}
