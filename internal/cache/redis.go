package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/oggyb/socialgraph/internal/config"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	return c.Client.Del(ctx, keys...).Err()
}

// MarkOnce sets key for ttl only if it does not exist yet and reports
// whether this call was the one that set it.
func (c *RedisCache) MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.Client.SetNX(ctx, key, 1, ttl).Result()
}

// KeyForSession generates the Redis hash key holding one session's state.
func (c *RedisCache) KeyForSession(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// KeyForNotification generates the dedupe marker key for one notification event.
func (c *RedisCache) KeyForNotification(recipientID, actorID uint64, action string, item *uint64) string {
	var itemID uint64
	if item != nil {
		itemID = *item
	}
	return fmt.Sprintf("notify:dedupe:%d:%d:%s:%d", recipientID, actorID, action, itemID)
}
