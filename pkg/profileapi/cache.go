package profileapi

import (
	"sync"
	"time"
)

// DefaultCacheTTL matches the hour-long revalidation window of the site.
const DefaultCacheTTL = time.Hour

type cacheEntry struct {
	body    []byte
	expires time.Time
}

// Cache holds response bodies for a fixed TTL.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{ttl: ttl, entries: map[string]cacheEntry{}, now: time.Now}
}

func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return e.body, true
}

func (c *Cache) Set(key string, body []byte) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{body: body, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache) Purge() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *Cache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
