package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"club-notification/internal/domain"
)

var ErrKeyNotFound = errors.New("key not found")

const (
	StatsPrefix = "confirmation_stats"
	// 确认状态由外部回执更新，统计只短暂缓存
	DefaultExpiredTime = 30 * time.Second
)

// StatsCache 确认统计缓存
type StatsCache interface {
	Get(ctx context.Context, orgID, sessionID int64) (domain.ConfirmationStats, error)
	Set(ctx context.Context, orgID, sessionID int64, stats domain.ConfirmationStats) error
	// Invalidate 删除组织级别以及给定训练课的统计
	Invalidate(ctx context.Context, orgID int64, sessionIDs ...int64) error
}

// StatsKey sessionID 为 0 表示组织级别统计
func StatsKey(orgID, sessionID int64) string {
	return fmt.Sprintf("%s:%d:%d", StatsPrefix, orgID, sessionID)
}
