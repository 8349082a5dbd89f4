// Package scorecache memoizes evaluation results per position. Entries
// are keyed by the position hash together with the rule-set generation,
// so swapping in a new rule set invalidates old scores without a flush.
package scorecache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Key identifies one cached score.
type Key struct {
	PositionHash uint64
	Color        uint8
	Generation   uint64
}

// Cache is a fixed-capacity LRU of evaluation scores. Safe for
// concurrent use.
type Cache struct {
	entries *lru.Cache[Key, float64]
}

// New creates a cache holding up to capacity scores.
func New(capacity int) (*Cache, error) {
	entries, err := lru.New[Key, float64](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Get retrieves a cached score.
func (c *Cache) Get(key Key) (float64, bool) {
	return c.entries.Get(key)
}

// Add stores a score.
func (c *Cache) Add(key Key, score float64) {
	c.entries.Add(key, score)
}

// Len returns the number of cached scores.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.entries.Purge()
}
