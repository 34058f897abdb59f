package cache

import (
	"sync"
	"time"

	"github.com/kaiyuanli/playroom/backend/internal/model/session"
)

// DefaultTTL is the absolute lifetime of a cached lookup response.
const DefaultTTL = 60 * time.Second

// DefaultCapacity bounds the number of resident entries.
const DefaultCapacity = 1024

type entry struct {
	value     session.Response
	expiresAt time.Time
}

// Cache maps session ids to response snapshots with a fixed absolute
// expiration. Reads never extend a lifetime; expired entries are
// dropped lazily on the next lookup. Because sessions are immutable
// after creation, concurrent writers for the same id always store
// value-equal snapshots and no invalidation hook is needed.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[string]entry
	now      func() time.Time
}

// New builds a cache with the given TTL and capacity. Non-positive
// arguments fall back to the defaults.
func New(ttl time.Duration, capacity int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]entry),
		now:      time.Now,
	}
}

// Get returns the cached response for id when present and not expired.
func (c *Cache) Get(id string) (session.Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return session.Response{}, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, id)
		return session.Response{}, false
	}
	return e.value, true
}

// Set stores the response under id with a fresh absolute deadline,
// evicting the entry closest to expiry when the cache is full.
func (c *Cache) Set(id string, value session.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; !ok && len(c.entries) >= c.capacity {
		c.evictLocked()
	}
	c.entries[id] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Len reports the number of resident entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked removes the entry with the earliest deadline. With a
// fixed TTL this is the oldest insert. Caller must hold c.mu.
func (c *Cache) evictLocked() {
	var (
		victim string
		oldest time.Time
	)
	for id, e := range c.entries {
		if victim == "" || e.expiresAt.Before(oldest) {
			victim = id
			oldest = e.expiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
	}
}
