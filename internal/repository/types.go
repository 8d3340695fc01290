package repository

import (
	"context"
	"time"

	"club-notification/internal/domain"
)

// ConfirmationRepository 确认记录仓储，只追加
//
//go:generate mockgen -source=./types.go -destination=./mocks/repository.mock.go -package=repomocks ConfirmationRepository SessionRepository
type ConfirmationRepository interface {
	// BatchCreate 一次批量发送的全部记录
	BatchCreate(ctx context.Context, records []domain.ConfirmationHistory) ([]domain.ConfirmationHistory, error)
	Create(ctx context.Context, record domain.ConfirmationHistory) (domain.ConfirmationHistory, error)
	GetByID(ctx context.Context, id int64) (domain.ConfirmationHistory, error)
	Find(ctx context.Context, filter domain.HistoryFilter, offset, limit int) ([]domain.ConfirmationHistory, int64, error)
	// Stats sessionID 为 0 时统计整个组织
	Stats(ctx context.Context, orgID, sessionID int64) (domain.ConfirmationStats, error)
}

// SessionRepository 训练课及名单
type SessionRepository interface {
	// FindPending 开始时间在 [from, to] 内的待开始训练课，带名单
	FindPending(ctx context.Context, orgID int64, from, to time.Time, ids []int64) ([]domain.Session, error)
	// GetByID 带名单
	GetByID(ctx context.Context, id int64) (domain.Session, error)
	GetAthlete(ctx context.Context, id int64) (domain.Athlete, error)
}
