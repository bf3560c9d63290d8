// Package lock provides a per-user keyed mutex so the tracking service and the
// supervisors that mutate sessions for the same user observe a serializable
// interleaving without a database-level lock. See spec §5: all writes for a
// single user are serialized; across users there are no ordering guarantees
package lock

import "sync"

// Table is a keyed set of mutexes, one per user id, created lazily. The zero
// value is ready to use
type Table struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns an empty Table
func New() *Table { return &Table{locks: make(map[string]*sync.Mutex)} }

// entry returns the per-user mutex, creating it on first use
func (t *Table) entry(userID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.locks == nil {
		t.locks = make(map[string]*sync.Mutex)
	}
	m, ok := t.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		t.locks[userID] = m
	}
	return m
}

// Lock acquires the lock for userID, blocking until it is available
func (t *Table) Lock(userID string) { t.entry(userID).Lock() }

// Unlock releases the lock for userID
func (t *Table) Unlock(userID string) { t.entry(userID).Unlock() }

// With runs fn while holding userID's lock
func (t *Table) With(userID string, fn func() error) error {
	t.Lock(userID)
	defer t.Unlock(userID)
	return fn()
}

// Default is the package-level table shared by the tracking service and every
// supervisor that mutates sessions, so both the API process and the worker
// process observe the same per-user exclusion when colocated (see SPEC_FULL.md
// §5 process topology decision)
var Default = New()
