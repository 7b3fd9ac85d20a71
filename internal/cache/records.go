// Package cache puts Redis in front of the record store.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

// DefaultTTL bounds how long a cached record may outlive an out-of-band
// change to the backing store.
const DefaultTTL = 10 * time.Minute

// RecordCache is a read-through cache over a store.RecordStore. Writes go
// to the store first and then drop the cached copy. Redis failures are
// logged and never fail a request.
type RecordCache struct {
	store store.RecordStore
	redis *RedisCache
	ttl   time.Duration
}

// NewRecordCache wraps s. A nil rc disables caching.
func NewRecordCache(s store.RecordStore, rc *RedisCache, ttl time.Duration) *RecordCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RecordCache{store: s, redis: rc, ttl: ttl}
}

// CacheKey is the Redis key holding a record.
func CacheKey(kind league.Kind, key string) string {
	return "realtajo:record:" + string(kind) + ":" + key
}

// Put stores the record and invalidates its cache entry.
func (c *RecordCache) Put(ctx context.Context, kind league.Kind, key string, payload []byte) error {
	if err := c.store.Put(ctx, kind, key, payload); err != nil {
		return err
	}
	c.invalidate(ctx, kind, key)
	return nil
}

// Get serves from Redis when possible and fills it on a miss.
func (c *RecordCache) Get(ctx context.Context, kind league.Kind, key string) ([]byte, error) {
	if c.redis != nil {
		payload, err := c.redis.Get(ctx, CacheKey(kind, key))
		if err == nil {
			return payload, nil
		}
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("kind", string(kind)).Str("key", key).Msg("cache read failed")
		}
	}

	payload, err := c.store.Get(ctx, kind, key)
	if err != nil {
		return nil, err
	}
	if c.redis != nil {
		if err := c.redis.Set(ctx, CacheKey(kind, key), payload, c.ttl); err != nil {
			log.Warn().Err(err).Str("kind", string(kind)).Str("key", key).Msg("cache fill failed")
		}
	}
	return payload, nil
}

// Delete removes the record and its cache entry.
func (c *RecordCache) Delete(ctx context.Context, kind league.Kind, key string) error {
	if err := c.store.Delete(ctx, kind, key); err != nil {
		return err
	}
	c.invalidate(ctx, kind, key)
	return nil
}

// Keys always asks the store.
func (c *RecordCache) Keys(ctx context.Context, kind league.Kind) ([]string, error) {
	return c.store.Keys(ctx, kind)
}

func (c *RecordCache) invalidate(ctx context.Context, kind league.Kind, key string) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Delete(ctx, CacheKey(kind, key)); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Str("key", key).Msg("cache invalidation failed")
	}
}
