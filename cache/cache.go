// Package cache stores happy number classifications shared by all workers.
//
// A cache maps a number to its classification (true = happy). Values are
// immutable once computed, so concurrent duplicate inserts of the same key
// always carry the same value and overwriting is harmless.
package cache

import "sync"

// Cache is a concurrently accessible number -> classification mapping.
type Cache interface {
	// Lookup returns the stored classification for n, if present.
	Lookup(n uint64) (happy bool, ok bool)
	// Insert stores the classification for n. Safe to call concurrently;
	// duplicate inserts are idempotent.
	Insert(n uint64, happy bool)
	// Len returns the number of stored classifications.
	Len() int
}

// MapCache is a single RWMutex-guarded map. It is the default Cache.
type MapCache struct {
	mu   sync.RWMutex
	data map[uint64]bool
}

// NewMap creates a MapCache pre-seeded with the two terminal facts of the
// digit-square-sum iteration: 1 is happy, 4 is unhappy.
func NewMap() *MapCache {
	return &MapCache{
		data: map[uint64]bool{1: true, 4: false},
	}
}

func (m *MapCache) Lookup(n uint64) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[n]
	return v, ok
}

func (m *MapCache) Insert(n uint64, happy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[n] = happy
}

func (m *MapCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Entries returns a snapshot copy of the mapping. Intended for tests and
// end-of-run reporting, not the hot path.
func (m *MapCache) Entries() map[uint64]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[uint64]bool, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}
