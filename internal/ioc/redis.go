package ioc

import (
	"context"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/econf"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 3 * time.Second

// InitRedis 没有配置 redis.addr 时返回 nil，缓存和幂等退回本地实现
func InitRedis() redis.Cmdable {
	type Config struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("redis", &cfg); err != nil {
		panic(err)
	}
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("连接 redis 失败: %v", err))
	}
	return client
}
