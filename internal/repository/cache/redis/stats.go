package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gotomicro/ego/core/elog"
	"github.com/redis/go-redis/v9"

	"club-notification/internal/domain"
	"club-notification/internal/repository/cache"
)

var _ cache.StatsCache = (*statsCache)(nil)

// statsCache 多实例部署时共享的统计缓存
type statsCache struct {
	client redis.Cmdable
	logger *elog.Component
}

func NewStatsCache(client redis.Cmdable) cache.StatsCache {
	return &statsCache{
		client: client,
		logger: elog.DefaultLogger,
	}
}

func (c *statsCache) Get(ctx context.Context, orgID, sessionID int64) (domain.ConfirmationStats, error) {
	val, err := c.client.Get(ctx, cache.StatsKey(orgID, sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ConfirmationStats{}, cache.ErrKeyNotFound
	}
	if err != nil {
		return domain.ConfirmationStats{}, err
	}
	var stats domain.ConfirmationStats
	if err = json.Unmarshal(val, &stats); err != nil {
		c.logger.Error("反序列化确认统计失败", elog.String("key", cache.StatsKey(orgID, sessionID)), elog.FieldErr(err))
		return domain.ConfirmationStats{}, err
	}
	return stats, nil
}

func (c *statsCache) Set(ctx context.Context, orgID, sessionID int64, stats domain.ConfirmationStats) error {
	val, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cache.StatsKey(orgID, sessionID), val, cache.DefaultExpiredTime).Err()
}

func (c *statsCache) Invalidate(ctx context.Context, orgID int64, sessionIDs ...int64) error {
	keys := make([]string, 0, len(sessionIDs)+1)
	keys = append(keys, cache.StatsKey(orgID, 0))
	for _, sid := range sessionIDs {
		keys = append(keys, cache.StatsKey(orgID, sid))
	}
	return c.client.Del(ctx, keys...).Err()
}
