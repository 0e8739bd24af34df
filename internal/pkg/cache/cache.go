// Package cache provides the in-process read-through caches backing the
// catalog's query paths. Entries are stored and replaced as whole values;
// invalidation is explicit and owned by whichever component performed the
// corresponding mutation.
package cache

import (
	"context"
	"sync"
)

// LoaderFunc loads a value on a cache miss, typically from the database.
// Loaders must be side-effect-free: concurrent callers missing on the same
// key may each invoke the loader and the last result wins.
type LoaderFunc[V any] func(ctx context.Context) (V, error)

// Cache is a keyed read-through cache. The zero value is not usable; use New.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// New creates an empty Cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]V),
	}
}

// GetOrLoad returns the cached value for key, invoking load on a miss and
// storing its result. A load error is returned as-is and nothing is cached.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K, load LoaderFunc[V]) (V, error) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	// Deliberately no single-flight: the loader runs outside the lock and
	// duplicate loads of the same key are harmless.
	v, err := load(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()

	return v, nil
}

// Get returns the cached value for key if present.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	return v, ok
}

// Put stores a value, replacing any existing entry atomically.
func (c *Cache[K, V]) Put(key K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = v
}

// Invalidate removes the entry for key. Missing keys are a no-op.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// InvalidateAll removes every entry.
func (c *Cache[K, V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]V)
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Listing caches a single whole-collection result, such as "all courses".
// Listings are invalidated wholesale: recomputing which list memberships a
// mutation changed costs more than the reload at this data scale.
type Listing[V any] struct {
	mu    sync.RWMutex
	value V
	valid bool
}

// NewListing creates an empty Listing.
func NewListing[V any]() *Listing[V] {
	return &Listing[V]{}
}

// GetOrLoad returns the cached collection, invoking load when absent.
func (l *Listing[V]) GetOrLoad(ctx context.Context, load LoaderFunc[V]) (V, error) {
	l.mu.RLock()
	if l.valid {
		v := l.value
		l.mu.RUnlock()
		return v, nil
	}
	l.mu.RUnlock()

	v, err := load(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	l.mu.Lock()
	l.value = v
	l.valid = true
	l.mu.Unlock()

	return v, nil
}

// Invalidate drops the cached collection.
func (l *Listing[V]) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero V
	l.value = zero
	l.valid = false
}

// Cached reports whether a collection is currently cached.
func (l *Listing[V]) Cached() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.valid
}
