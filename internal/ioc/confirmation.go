package ioc

import (
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ego-component/egorm"
	ca "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"club-notification/internal/domain"
	"club-notification/internal/pkg/ratelimit"
	"club-notification/internal/pkg/signlink"
	"club-notification/internal/repository"
	"club-notification/internal/repository/cache"
	"club-notification/internal/repository/cache/local"
	rediscache "club-notification/internal/repository/cache/redis"
	"club-notification/internal/repository/dao"
	"club-notification/internal/service/channel"
	"club-notification/internal/service/confirmation"
	"club-notification/internal/service/gate"
)

const localCacheCleanupInterval = time.Minute

func InitLinkSigner(cfg ConfirmationConfig) *signlink.Signer {
	return signlink.NewSigner(cfg.SigningKey, cfg.BaseURL, cfg.LinkTTL)
}

func InitStatsCache(rdb redis.Cmdable) cache.StatsCache {
	if rdb != nil {
		return rediscache.NewStatsCache(rdb)
	}
	return local.NewLocalCache(ca.New(cache.DefaultExpiredTime, localCacheCleanupInterval))
}

// InitConfirmationService 全渠道模式只使用已配置且供应商可用的渠道
func InitConfirmationService(
	db *egorm.Component,
	rdb redis.Cmdable,
	dispatcher gate.Dispatcher,
	signer *signlink.Signer,
	channels *channel.Dispatcher,
	notificationCfg NotificationConfig,
	cfg ConfirmationConfig,
) confirmation.Service {
	sessions := repository.NewSessionRepository(dao.NewSessionDAO(db))
	history := repository.NewConfirmationRepository(dao.NewConfirmationHistoryDAO(db), InitStatsCache(rdb))
	configured := slice.FilterMap(notificationCfg.Providers().ConfiguredChannels(), func(_ int, ch domain.Channel) (domain.Channel, bool) {
		return ch, channels.ChannelAvailable(ch)
	})
	svc := confirmation.NewService(sessions, history, dispatcher, signer, configured, cfg.Concurrency)
	limit := cfg.BulkSendLimit
	if rdb == nil || limit.Rate <= 0 || limit.Interval <= 0 {
		return svc
	}
	return confirmation.NewRateLimitedService(svc, ratelimit.NewRedisSlidingWindowLimiter(rdb, limit.Interval, limit.Rate))
}
