// Package cache holds rendered list views keyed by collection so that a
// committed mutation can mark every rendering of that collection stale.
package cache

import (
	"context"
	"sync"
)

// ViewCache stores rendered views of a collection.
// Get reports the collection's generation alongside the lookup; a caller that
// misses loads the view and hands that generation back to Put. Put stores the
// value only while the generation is unchanged, so a view loaded before an
// Invalidate is never stored after it.
// After Invalidate(c) returns, no Get on c returns a value loaded before it.
type ViewCache interface {
	Get(ctx context.Context, collection, key string) (value []byte, gen int64, ok bool, err error)
	Put(ctx context.Context, collection, key string, gen int64, value []byte) error
	Invalidate(ctx context.Context, collection string) error
}

// MemoryCache is a process-local ViewCache.
type MemoryCache struct {
	mu    sync.RWMutex
	gens  map[string]int64
	views map[string]map[string][]byte
}

// Compile-time check that *MemoryCache satisfies ViewCache.
var _ ViewCache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		gens:  make(map[string]int64),
		views: make(map[string]map[string][]byte),
	}
}

// Get returns the cached view for key in collection and the collection's generation.
func (m *MemoryCache) Get(_ context.Context, collection, key string) ([]byte, int64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.views[collection][key]
	return v, m.gens[collection], ok, nil
}

// Put stores a view for key in collection.
// POST: nothing is stored when collection was invalidated after gen was read
func (m *MemoryCache) Put(_ context.Context, collection, key string, gen int64, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gens[collection] != gen {
		return nil
	}
	byKey, ok := m.views[collection]
	if !ok {
		byKey = make(map[string][]byte)
		m.views[collection] = byKey
	}
	byKey[key] = append([]byte(nil), value...)
	return nil
}

// Invalidate drops every cached view of collection and advances its generation.
func (m *MemoryCache) Invalidate(_ context.Context, collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gens[collection]++
	delete(m.views, collection)
	return nil
}
