package ioc

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/retry"
)

const pingTimeout = 5 * time.Second

// waitFor docker compose 刚启动时依赖还没就绪，按指数退避重试 ping
func waitFor(name string, ping func(ctx context.Context) error) {
	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, maxInterval, maxRetries)
	if err != nil {
		panic(err)
	}
	for {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err = ping(ctx)
		cancel()
		if err == nil {
			return
		}
		next, ok := strategy.Next()
		if !ok {
			panic(fmt.Sprintf("等待 %s 就绪失败: %v", name, err))
		}
		time.Sleep(next)
	}
}
