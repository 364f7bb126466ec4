package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/poofware/pledge-service/internal/dtos"
	"github.com/poofware/pledge-service/internal/utils"
)

// RedisStatsCache shares one snapshot between every replica.
type RedisStatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ StatsCache = (*RedisStatsCache)(nil)

func NewRedisStatsCache(redisURL string, ttl time.Duration) (*RedisStatsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return NewRedisStatsCacheWithClient(redis.NewClient(opts), ttl), nil
}

func NewRedisStatsCacheWithClient(rdb *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{rdb: rdb, ttl: ttl}
}

// Get implements StatsCache. Redis errors are logged and reported as a miss.
func (c *RedisStatsCache) Get(ctx context.Context) (*dtos.Stats, bool) {
	b, err := c.rdb.Get(ctx, statsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.Logger.WithError(err).Warn("stats cache read failed")
		}
		return nil, false
	}
	var s dtos.Stats
	if err := json.Unmarshal(b, &s); err != nil {
		utils.Logger.WithError(err).Warn("stats cache entry is corrupt; ignoring")
		return nil, false
	}
	return &s, true
}

// Generation implements StatsCache. A missing counter is generation 0.
func (c *RedisStatsCache) Generation(ctx context.Context) uint64 {
	gen, err := c.rdb.Get(ctx, genKey).Uint64()
	if err != nil && !errors.Is(err, redis.Nil) {
		utils.Logger.WithError(err).Warn("stats cache generation read failed")
	}
	return gen
}

// Set implements StatsCache. The generation check and the write run in one
// WATCH/MULTI transaction, so an Invalidate from another replica in between
// aborts the write.
func (c *RedisStatsCache) Set(ctx context.Context, stats *dtos.Stats, gen uint64) bool {
	if stats == nil {
		return false
	}
	b, err := json.Marshal(stats)
	if err != nil {
		utils.Logger.WithError(err).Warn("stats cache encode failed")
		return false
	}

	stored := false
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, statsKey, b, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKey)
	switch {
	case errors.Is(err, redis.TxFailedErr):
		return false
	case err != nil:
		utils.Logger.WithError(err).Warn("stats cache write failed")
		return false
	}
	return stored
}

// Invalidate implements StatsCache.
func (c *RedisStatsCache) Invalidate(ctx context.Context) {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Del(ctx, statsKey)
		return nil
	})
	if err != nil {
		utils.Logger.WithError(err).Warn("stats cache invalidate failed")
	}
}

// Close implements StatsCache.
func (c *RedisStatsCache) Close() error {
	return c.rdb.Close()
}
