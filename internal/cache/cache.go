// Package cache is a size-bounded LRU whose entries also expire a fixed time
// after they were written, however often they are read.
package cache

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

type entry struct {
	value      any
	insertedAt time.Time
	lastAccess time.Time
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Size    int           `json:"size"`
	MaxSize int           `json:"max_size"`
	Hits    uint64        `json:"hits"`
	Misses  uint64        `json:"misses"`
	Sets    uint64        `json:"sets"`
	HitRate float64       `json:"hit_rate"`
	TTL     time.Duration `json:"-"`
}

// Cache is safe for concurrent use. Every operation holds the mutex for its
// whole duration and never calls out while holding it.
type Cache struct {
	mu      sync.Mutex
	lru     *simplelru.LRU[string, entry]
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	hits, misses, sets uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache holding at most maxSize entries. A ttl of zero or less
// disables expiry.
func New(maxSize int, ttl time.Duration, opts ...Option) (*Cache, error) {
	l, err := simplelru.NewLRU[string, entry](maxSize, nil)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	c := &Cache{lru: l, maxSize: maxSize, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the value stored under key. An expired entry is evicted and
// reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lru.Peek(key)
	if !ok {
		c.misses++
		return nil, false
	}
	now := c.now()
	if c.expired(e, now) {
		c.lru.Remove(key)
		c.misses++
		return nil, false
	}
	e.lastAccess = now
	// Add moves the key to the most recently used position.
	c.lru.Add(key, e)
	c.hits++
	return e.value, true
}

// Set stores value under key with a fresh timestamp, evicting the least
// recently used entry when the cache is full.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.lru.Remove(key)
	c.lru.Add(key, entry{value: value, insertedAt: now, lastAccess: now})
	c.sets++
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	c.hits, c.misses, c.sets = 0, 0, 0
}

// Stats returns the counters. Size includes expired entries not yet evicted.
// HitRate is a percentage rounded to two decimals.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var rate float64
	if total := c.hits + c.misses; total > 0 {
		rate = math.Round(float64(c.hits)/float64(total)*10000) / 100
	}
	return Stats{
		Size:    c.lru.Len(),
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.misses,
		Sets:    c.sets,
		HitRate: rate,
		TTL:     c.ttl,
	}
}

func (c *Cache) expired(e entry, now time.Time) bool {
	return c.ttl > 0 && now.Sub(e.insertedAt) > c.ttl
}
