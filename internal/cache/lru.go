package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/poofware/pledge-service/internal/dtos"
)

// LRUStatsCache is a StatsCache that uses an expirable LRU policy.
type LRUStatsCache struct {
	mu    sync.Mutex
	gen   uint64
	cache *expirable.LRU[string, dtos.Stats]
}

var _ StatsCache = (*LRUStatsCache)(nil)

func NewLRUStatsCache(ttl time.Duration) *LRUStatsCache {
	return &LRUStatsCache{cache: expirable.NewLRU[string, dtos.Stats](1, nil, ttl)}
}

// Get implements StatsCache. The returned value is a copy.
func (c *LRUStatsCache) Get(_ context.Context) (*dtos.Stats, bool) {
	s, ok := c.cache.Get(statsKey)
	if !ok {
		return nil, false
	}
	return &s, true
}

// Generation implements StatsCache.
func (c *LRUStatsCache) Generation(_ context.Context) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Set implements StatsCache.
func (c *LRUStatsCache) Set(_ context.Context, stats *dtos.Stats, gen uint64) bool {
	if stats == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.cache.Add(statsKey, *stats)
	return true
}

// Invalidate implements StatsCache.
func (c *LRUStatsCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.cache.Remove(statsKey)
}

// Close implements StatsCache.
func (c *LRUStatsCache) Close() error {
	c.cache.Purge()
	return nil
}
