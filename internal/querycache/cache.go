// Package querycache holds fetched query results by key and drops them on
// explicit invalidation. Nothing is patched in place: after a mutation the
// owner invalidates a key prefix and the next Get refetches.
package querycache

import (
	"context"
	"strings"
	"sync"
)

type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

type entry[T any] struct {
	key   Key
	value T
}

type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	// epoch advances on every Invalidate. A fetch that spans an
	// invalidation is returned to its caller but not stored.
	epoch uint64
}

func New[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[string]entry[T])}
}

// Get returns the cached value for key, or calls fetch and stores its
// result. Failed fetches are not stored, nor are results of a fetch that
// was overtaken by an Invalidate.
func (c *Cache[T]) Get(ctx context.Context, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	if e, ok := c.entries[key.String()]; ok {
		c.mu.Unlock()
		return e.value, nil
	}
	epoch := c.epoch
	c.mu.Unlock()

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	if c.epoch == epoch {
		c.entries[key.String()] = entry[T]{key: append(Key(nil), key...), value: v}
	}
	c.mu.Unlock()

	return v, nil
}

func (c *Cache[T]) Peek(key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	return e.value, ok
}

func (c *Cache[T]) Set(key Key, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key.String()] = entry[T]{key: append(Key(nil), key...), value: v}
}

// Invalidate drops every entry whose key starts with prefix and returns the
// number dropped. An empty prefix drops everything.
func (c *Cache[T]) Invalidate(prefix ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++

	n := 0
	for s, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, s)
			n++
		}
	}
	return n
}

func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
