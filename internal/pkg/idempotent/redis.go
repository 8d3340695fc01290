package idempotent

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "club-notification:idempotency:"

var _ Guard = (*RedisGuard)(nil)

// RedisGuard 多实例部署时使用，SETNX 保证只有一个实例占位成功
type RedisGuard struct {
	client redis.Cmdable
	expiry time.Duration
}

func NewRedisGuard(client redis.Cmdable, expiry time.Duration) *RedisGuard {
	return &RedisGuard{
		client: client,
		expiry: expiry,
	}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (bool, error) {
	return g.client.SetNX(ctx, keyPrefix+key, time.Now().UnixMilli(), g.expiry).Result()
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, keyPrefix+key).Err()
}
