package local

import (
	"context"
	"errors"

	ca "github.com/patrickmn/go-cache"

	"club-notification/internal/domain"
	"club-notification/internal/repository/cache"
)

var _ cache.StatsCache = (*Cache)(nil)

// Cache 进程内统计缓存
type Cache struct {
	localCache *ca.Cache
}

func NewLocalCache(localCache *ca.Cache) *Cache {
	return &Cache{localCache: localCache}
}

func (c *Cache) Get(_ context.Context, orgID, sessionID int64) (domain.ConfirmationStats, error) {
	v, ok := c.localCache.Get(cache.StatsKey(orgID, sessionID))
	if !ok {
		return domain.ConfirmationStats{}, cache.ErrKeyNotFound
	}
	vv, ok := v.(domain.ConfirmationStats)
	if !ok {
		return domain.ConfirmationStats{}, errors.New("数据类型不正确")
	}
	return vv, nil
}

func (c *Cache) Set(_ context.Context, orgID, sessionID int64, stats domain.ConfirmationStats) error {
	c.localCache.Set(cache.StatsKey(orgID, sessionID), stats, cache.DefaultExpiredTime)
	return nil
}

func (c *Cache) Invalidate(_ context.Context, orgID int64, sessionIDs ...int64) error {
	c.localCache.Delete(cache.StatsKey(orgID, 0))
	for _, sid := range sessionIDs {
		c.localCache.Delete(cache.StatsKey(orgID, sid))
	}
	return nil
}
