// README: Generic TTL result cache with lazy check-on-read expiry.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a goroutine-safe key/value store where every entry expires a fixed
// TTL after insertion. Expiry is checked on read; there is no background
// sweeper. Each producing component owns its own Cache instance so unrelated
// key spaces are never mixed.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[K]entry[V]
}

func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		ttl:     ttl,
		entries: make(map[K]entry[V]),
	}
}

// Get returns the live value for key. An entry older than the TTL counts as a
// miss and is dropped.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if time.Since(e.insertedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have replaced
		// the entry since the read lock was released.
		if cur, still := c.entries[key]; still && time.Since(cur.insertedAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, restarting its TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, insertedAt: time.Now()}
	c.mu.Unlock()
}

// Len counts entries still within their TTL.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.entries {
		if time.Since(e.insertedAt) <= c.ttl {
			n++
		}
	}
	return n
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	c.entries = make(map[K]entry[V])
	c.mu.Unlock()
}
