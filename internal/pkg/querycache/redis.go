package querycache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "akademi:qc:"

// redisStore is a Redis-backed Store for multi-instance deployments where
// every instance must observe every invalidation.
type redisStore struct {
	rdb *goredis.Client
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(addr string) (Store, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisStore{rdb: rdb}, nil
}

func (s *redisStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+string(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (s *redisStore) Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, redisKeyPrefix+string(key), value, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = redisKeyPrefix + string(key)
	}
	return s.rdb.Del(ctx, fullKeys...).Err()
}
