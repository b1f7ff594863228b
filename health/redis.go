package health

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores probe results in Redis so that several processes
// fronting the same replica set share one probe budget.
type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache creates a cache backed by a new Redis client.
func NewRedisCache(opt *redis.Options) *RedisCache {
	return &RedisCache{Client: redis.NewClient(opt)}
}

// Ping verifies the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (int, bool) {
	val, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *RedisCache) Set(ctx context.Context, key string, count int, ttl time.Duration) {
	c.Client.Set(ctx, key, strconv.Itoa(count), ttl)
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	c.Client.Del(ctx, key)
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}
