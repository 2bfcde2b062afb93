// Package memocache is a small in-process TTL cache. It is passed as an
// explicit dependency so retrieval results never hide in package state.
package memocache

import (
	"sync"
	"time"
)

type entry struct {
	value   string
	expires time.Time
}

type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
}

// New returns a cache whose entries expire after ttl. A non-positive ttl
// disables caching entirely.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

func (c *Cache) Get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expires) {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

func (c *Cache) Set(key, value string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expires: time.Now().Add(c.ttl)}
}
