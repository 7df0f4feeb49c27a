// Package redis implements cache.Cache on top of a Redis server using go-redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/taskr-api/internal/cache"
)

// pingTimeout bounds the connectivity check performed by NewClient.
const pingTimeout = 3 * time.Second

// NewClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0)
// after verifying the server answers PING.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Cache implements cache.Cache using a go-redis client.
type Cache struct {
	client goredis.Cmdable
}

// Ensure Cache implements cache.Cache interface
var _ cache.Cache = (*Cache)(nil)

// NewCache wraps a go-redis client.
func NewCache(client goredis.Cmdable) *Cache {
	return &Cache{client: client}
}

// Get implements cache.Cache.Get. A missing key maps to cache.ErrMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, cache.ErrMiss
		}
		return nil, fmt.Errorf("redis GET %s: %w", key, err)
	}
	return val, nil
}

// Set implements cache.Cache.Set (SET key value EX ttl).
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}

// Delete implements cache.Cache.Delete.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", key, err)
	}
	return nil
}
