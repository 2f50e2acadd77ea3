// Package cache provides a TTL cache for feed snapshots. Entries are
// written once and treated as read-only until they expire; concurrent
// misses on the same key are coalesced into a single computation.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a snapshot stays fresh.
const DefaultTTL = 5 * time.Minute

type entry struct {
	data    []byte
	expires time.Time
}

// Cache is a TTL cache keyed by query string. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	group   singleflight.Group

	// now is swappable so tests can control expiry.
	now func() time.Time
}

// New returns a cache with the given TTL; ttl <= 0 takes DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached snapshot for key if it is still fresh.
// Callers must not mutate the returned bytes.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expires) {
		return nil, false
	}
	return e.data, true
}

// Set stores a snapshot under key with the cache's TTL.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, expires: c.now().Add(c.ttl)}
}

// GetOrCompute returns the fresh snapshot for key, computing and
// storing it on a miss. Concurrent callers of the same key share one
// computation; the duplicates block and receive the same bytes. A
// compute error is returned to all waiters and nothing is cached.
// The second return value reports whether the result was a cache hit.
func (c *Cache) GetOrCompute(key string, compute func() ([]byte, error)) ([]byte, bool, error) {
	if data, ok := c.Get(key); ok {
		return data, true, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A racing caller may have filled the entry while we waited
		// for the flight slot.
		if data, ok := c.Get(key); ok {
			return data, nil
		}
		data, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(key, data)
		return data, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}

// Purge removes every entry, forcing the next Get on any key to miss.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
