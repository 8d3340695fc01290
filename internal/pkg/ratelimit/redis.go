package ratelimit

import (
	"context"
	_ "embed"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "club-notification:ratelimit:"

//go:embed lua/slide_window.lua
var slidingWindowScript string

var _ Limiter = (*RedisSlidingWindowLimiter)(nil)

// RedisSlidingWindowLimiter 基于 zset 的滑动窗口，window 内最多放行 rate 次
// 被限流的请求不占用额度
type RedisSlidingWindowLimiter struct {
	client redis.Cmdable
	window time.Duration
	rate   int
}

func NewRedisSlidingWindowLimiter(client redis.Cmdable, window time.Duration, rate int) *RedisSlidingWindowLimiter {
	return &RedisSlidingWindowLimiter{
		client: client,
		window: window,
		rate:   rate,
	}
}

func (l *RedisSlidingWindowLimiter) Limit(ctx context.Context, key string) (bool, error) {
	// 每次请求一个唯一成员，同一毫秒内的请求不会互相覆盖
	member := uuid.NewString()
	return l.client.Eval(ctx, slidingWindowScript, []string{keyPrefix + key},
		l.window.Milliseconds(), l.rate, time.Now().UnixMilli(), member).Bool()
}
