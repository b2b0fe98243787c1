package oracle

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Cache memoizes oracle results keyed by a hash of the review text.
// It is an explicit, injected object rather than package state so each
// pipeline run (and each test) can hold its own.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Result
	hits    int
	misses  int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Result)}
}

// Get returns the cached result for text. A nil cache always misses.
func (c *Cache) Get(text string) (Result, bool) {
	if c == nil {
		return Result{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[cacheKey(text)]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return r, ok
}

// Put stores a result for text. A nil cache drops it.
func (c *Cache) Put(text string, r Result) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(text)] = r
}

// Stats reports hit/miss counts since creation.
func (c *Cache) Stats() (hits, misses int) {
	if c == nil {
		return 0, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
