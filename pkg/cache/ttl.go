// Package cache holds short-lived read results that writers invalidate explicitly.
package cache

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTL is an in-memory cache whose entries expire after a fixed duration.
// Concurrent misses on the same key share a single load.
type TTL struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	group   singleflight.Group
	now     func() time.Time
	// gen is bumped by every invalidation so loads started before it are not stored
	gen uint64
}

// NewTTL returns a cache keeping values for ttl. A ttl <= 0 disables caching.
func NewTTL(ttl time.Duration) *TTL {
	return &TTL{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *TTL) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *TTL) Set(key string, value any) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// GetOrLoad returns the cached value for key or runs load once for all concurrent callers.
// Errors are never cached.
func (c *TTL) GetOrLoad(key string, load func() (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	// callers arriving after an invalidation start a fresh load instead of joining a stale one
	flightKey := key + "#" + strconv.FormatUint(gen, 10)

	v, err, _ := c.group.Do(flightKey, func() (any, error) {
		v, err := load()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if gen == c.gen && c.ttl > 0 {
			c.entries[key] = entry{value: v, expiresAt: c.now().Add(c.ttl)}
		}
		c.mu.Unlock()
		return v, nil
	})

	return v, err
}

// InvalidatePrefix drops every key starting with prefix
func (c *TTL) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Purge removes expired entries
func (c *TTL) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *TTL) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
