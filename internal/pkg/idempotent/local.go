package idempotent

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

var _ Guard = (*LocalGuard)(nil)

// LocalGuard 进程内实现，单实例部署和测试使用
type LocalGuard struct {
	cache  *cache.Cache
	expiry time.Duration
}

func NewLocalGuard(expiry time.Duration) *LocalGuard {
	return &LocalGuard{
		cache:  cache.New(expiry, 2*expiry),
		expiry: expiry,
	}
}

// Acquire go-cache 的 Add 在 key 未过期时返回错误，本身是原子的
func (g *LocalGuard) Acquire(_ context.Context, key string) (bool, error) {
	return g.cache.Add(key, struct{}{}, g.expiry) == nil, nil
}

func (g *LocalGuard) Release(_ context.Context, key string) error {
	g.cache.Delete(key)
	return nil
}
