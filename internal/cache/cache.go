// Package cache stores the latest stats snapshot, in process or in Redis.
package cache

import (
	"context"
	"time"

	"github.com/poofware/pledge-service/internal/dtos"
)

const (
	statsKey = "pledge:stats:v1"
	genKey   = "pledge:stats:gen"
)

// StatsCache holds at most one stats snapshot with a TTL.
//
// Every Invalidate bumps a generation counter. A writer reads Generation
// before it starts computing and hands it to Set; Set drops the snapshot if
// an Invalidate happened in between, so a stale computation never replaces
// a newer invalidation.
type StatsCache interface {
	Get(ctx context.Context) (*dtos.Stats, bool)
	Generation(ctx context.Context) uint64
	// Set stores stats if the generation is still gen and reports whether it did.
	Set(ctx context.Context, stats *dtos.Stats, gen uint64) bool
	Invalidate(ctx context.Context)
	Close() error
}

// New returns a Redis-backed cache when redisURL is set, otherwise an
// in-process one.
func New(redisURL string, ttl time.Duration) (StatsCache, error) {
	if redisURL != "" {
		return NewRedisStatsCache(redisURL, ttl)
	}
	return NewLRUStatsCache(ttl), nil
}
