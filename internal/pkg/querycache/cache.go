package querycache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Store is the backing storage for cached collections
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...Key) error
}

// Cache wraps a Store with a fixed TTL and a logger. Cache failures are
// logged and degrade to the underlying fetch, never surfaced to callers.
type Cache struct {
	store  Store
	ttl    time.Duration
	logger zerolog.Logger
}

// New creates a Cache over the given store
func New(store Store, ttl time.Duration, logger zerolog.Logger) *Cache {
	return &Cache{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// Invalidate drops the given collections. Safe to call again without an
// intervening mutation; deleting an absent key is a no-op.
func (c *Cache) Invalidate(ctx context.Context, keys ...Key) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		c.logger.Warn().Err(err).Interface("keys", keys).Msg("Cache invalidation failed")
	}
}

// Fetch returns the cached collection under key, or fills it via fill and
// caches the result. A nil Cache always calls fill.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fill func(context.Context) (T, error)) (T, error) {
	var zero T

	if c == nil {
		return fill(ctx)
	}

	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", string(key)).Msg("Cache read failed, falling through")
	} else if found {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}
		// Undecodable entry: drop it and refetch
		c.Invalidate(ctx, key)
	}

	value, err := fill(ctx)
	if err != nil {
		return zero, err
	}

	if raw, err := json.Marshal(value); err == nil {
		if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
			c.logger.Warn().Err(err).Str("key", string(key)).Msg("Cache write failed")
		}
	}

	return value, nil
}
