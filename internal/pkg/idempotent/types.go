package idempotent

import "context"

// Guard 按幂等键占位
// 发送失败时释放占位，调用方可以用同一个键重试
type Guard interface {
	// Acquire 占用 key，已被占用时返回 false
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
