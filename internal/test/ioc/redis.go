package ioc

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	rdb           redis.Cmdable
	initRedisOnce sync.Once
)

func InitRedis() redis.Cmdable {
	initRedisOnce.Do(func() {
		client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
		waitFor("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		rdb = client
	})
	return rdb
}
