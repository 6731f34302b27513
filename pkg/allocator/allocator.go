// Package allocator hands out strictly increasing article ids.
// The counter holds the last id handed out and must be resynced from the store
// before a run so ids never collide with persisted ones.
package allocator

import "sync"

// Allocator is a process-wide id counter, safe for concurrent use
type Allocator struct {
	mu   sync.Mutex
	last int64
}

// New makes an allocator starting from zero, the first Next returns 1
func New() *Allocator {
	return &Allocator{}
}

// Next advances the counter and returns the new id
func (a *Allocator) Next() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last++
	return a.last
}

// Resync sets the counter to the highest persisted id, zero for an empty store.
// Negative values are treated as zero.
func (a *Allocator) Resync(maxPersistedID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last = max(maxPersistedID, 0)
}

// Current returns the last id handed out, without advancing
func (a *Allocator) Current() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}
