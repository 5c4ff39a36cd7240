package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements a Redis-backed cache for service deployments.
// Expiration is delegated to Redis key TTLs.
//
// Run a dedicated logical database per deployment: Clear flushes the
// whole database, not just graphmotion keys.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis using a redis:// or rediss:// URL.
// The initial ping retries with backoff so a cache coming up alongside
// its Redis container does not fail the whole process.
func NewRedisCache(ctx context.Context, url string) (Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	err = RetryWithBackoff(ctx, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value with the given TTL. Zero means no expiration.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Stats reports the size of the backing database. Redis does not track
// per-key byte totals cheaply, so Bytes stays zero.
func (c *RedisCache) Stats(ctx context.Context) (Stats, error) {
	n, err := c.client.DBSize(ctx).Result()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Entries: n}, nil
}

// Clear flushes the backing database.
func (c *RedisCache) Clear(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache plus the maintenance interfaces.
var (
	_ Cache   = (*RedisCache)(nil)
	_ Statser = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
