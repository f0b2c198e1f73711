package runs

import (
	"context"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CounterStats reports cache effectiveness for a Counter.
type CounterStats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

// Counter memoises counts in a bounded LRU cache. It is safe for concurrent use.
// A Counter created with size 0 computes every query directly.
type Counter struct {
	cache  *lru.Cache[int64, int]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCounter creates a Counter holding at most size results.
func NewCounter(size int) (*Counter, error) {
	if size < 0 {
		return nil, fmt.Errorf("cache size cannot be negative, got %d", size)
	}
	c := &Counter{}
	if size == 0 {
		return c, nil
	}
	cache, err := lru.New[int64, int](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create count cache: %w", err)
	}
	c.cache = cache
	return c, nil
}

// Count returns the number of consecutive-run representations of n.
func (c *Counter) Count(ctx context.Context, n int64) (int, error) {
	if c.cache != nil {
		if v, ok := c.cache.Get(n); ok {
			c.hits.Add(1)
			return v, nil
		}
	}
	c.misses.Add(1)

	v, err := CountContext(ctx, n)
	if err != nil {
		return 0, err
	}
	if c.cache != nil {
		c.cache.Add(n, v)
	}
	return v, nil
}

// Stats returns a snapshot of cache counters.
func (c *Counter) Stats() CounterStats {
	stats := CounterStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
	if c.cache != nil {
		stats.Entries = c.cache.Len()
	}
	return stats
}
