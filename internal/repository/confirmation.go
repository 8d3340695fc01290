package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/domain"
	"club-notification/internal/repository/cache"
	"club-notification/internal/repository/dao"
)

type confirmationRepository struct {
	dao    dao.ConfirmationHistoryDAO
	cache  cache.StatsCache
	logger *elog.Component
}

func NewConfirmationRepository(d dao.ConfirmationHistoryDAO, c cache.StatsCache) ConfirmationRepository {
	return &confirmationRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (repo *confirmationRepository) BatchCreate(ctx context.Context, records []domain.ConfirmationHistory) ([]domain.ConfirmationHistory, error) {
	if len(records) == 0 {
		return records, nil
	}
	created, err := repo.dao.BatchCreate(ctx, slice.Map(records, func(_ int, src domain.ConfirmationHistory) dao.ConfirmationHistory {
		return repo.toEntity(src)
	}))
	if err != nil {
		return nil, err
	}
	repo.invalidate(ctx, records...)
	return slice.Map(created, func(_ int, src dao.ConfirmationHistory) domain.ConfirmationHistory {
		return repo.toDomain(src)
	}), nil
}

func (repo *confirmationRepository) Create(ctx context.Context, record domain.ConfirmationHistory) (domain.ConfirmationHistory, error) {
	created, err := repo.dao.Create(ctx, repo.toEntity(record))
	if err != nil {
		return domain.ConfirmationHistory{}, err
	}
	repo.invalidate(ctx, record)
	return repo.toDomain(created), nil
}

func (repo *confirmationRepository) GetByID(ctx context.Context, id int64) (domain.ConfirmationHistory, error) {
	entity, err := repo.dao.GetByID(ctx, id)
	if err != nil {
		return domain.ConfirmationHistory{}, err
	}
	return repo.toDomain(entity), nil
}

func (repo *confirmationRepository) Find(ctx context.Context, filter domain.HistoryFilter, offset, limit int) ([]domain.ConfirmationHistory, int64, error) {
	entities, total, err := repo.dao.Find(ctx, dao.HistoryFilter{
		OrganizationID: filter.OrganizationID,
		SessionID:      filter.SessionID,
		AthleteID:      filter.AthleteID,
		Status:         filter.Status.String(),
		BatchID:        filter.BatchID,
		From:           toMillis(filter.From),
		To:             toMillis(filter.To),
	}, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(entities, func(_ int, src dao.ConfirmationHistory) domain.ConfirmationHistory {
		return repo.toDomain(src)
	}), total, nil
}

func (repo *confirmationRepository) Stats(ctx context.Context, orgID, sessionID int64) (domain.ConfirmationStats, error) {
	stats, err := repo.cache.Get(ctx, orgID, sessionID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, cache.ErrKeyNotFound) {
		repo.logger.Warn("读取确认统计缓存失败", elog.Any("orgID", orgID), elog.FieldErr(err))
	}

	counts, err := repo.dao.CountByStatus(ctx, orgID, sessionID)
	if err != nil {
		return domain.ConfirmationStats{}, err
	}
	stats = newStats(counts)
	if err = repo.cache.Set(ctx, orgID, sessionID, stats); err != nil {
		repo.logger.Warn("写入确认统计缓存失败", elog.Any("orgID", orgID), elog.FieldErr(err))
	}
	return stats, nil
}

// newStats 已确认的记录也算作发送成功，确认率 = 已确认 / 发送成功
func newStats(counts map[string]int64) domain.ConfirmationStats {
	pending := counts[domain.ConfirmationStatusSent.String()]
	confirmed := counts[domain.ConfirmationStatusConfirmed.String()]
	failed := counts[domain.ConfirmationStatusFailed.String()]
	stats := domain.ConfirmationStats{
		Total:     pending + confirmed + failed,
		Sent:      pending + confirmed,
		Confirmed: confirmed,
		Pending:   pending,
		Failed:    failed,
	}
	if stats.Sent > 0 {
		const percent = 100
		stats.ConfirmationRate = math.Round(float64(confirmed)*percent*percent/float64(stats.Sent)) / percent
	}
	return stats
}

func (repo *confirmationRepository) invalidate(ctx context.Context, records ...domain.ConfirmationHistory) {
	byOrg := make(map[int64][]int64)
	for i := range records {
		byOrg[records[i].OrganizationID] = append(byOrg[records[i].OrganizationID], records[i].SessionID)
	}
	for orgID, sessionIDs := range byOrg {
		if err := repo.cache.Invalidate(ctx, orgID, sessionIDs...); err != nil {
			repo.logger.Warn("清理确认统计缓存失败", elog.Any("orgID", orgID), elog.FieldErr(err))
		}
	}
}

func (repo *confirmationRepository) toEntity(src domain.ConfirmationHistory) dao.ConfirmationHistory {
	return dao.ConfirmationHistory{
		ID:             src.ID,
		OrganizationID: src.OrganizationID,
		SessionID:      src.SessionID,
		AthleteID:      src.AthleteID,
		Channel:        src.Channel.String(),
		Status:         src.Status.String(),
		BatchID:        src.BatchID,
		TriggerJobID:   src.TriggerJobID,
		ErrorMessage:   src.ErrorMessage,
		InitiatedBy:    src.InitiatedBy,
		SentAt:         toMillis(src.SentAt),
		ConfirmedAt:    toMillis(src.ConfirmedAt),
	}
}

func (repo *confirmationRepository) toDomain(src dao.ConfirmationHistory) domain.ConfirmationHistory {
	return domain.ConfirmationHistory{
		ID:             src.ID,
		OrganizationID: src.OrganizationID,
		SessionID:      src.SessionID,
		AthleteID:      src.AthleteID,
		Channel:        domain.Channel(src.Channel),
		Status:         domain.ConfirmationStatus(src.Status),
		BatchID:        src.BatchID,
		TriggerJobID:   src.TriggerJobID,
		ErrorMessage:   src.ErrorMessage,
		InitiatedBy:    src.InitiatedBy,
		SentAt:         fromMillis(src.SentAt),
		ConfirmedAt:    fromMillis(src.ConfirmedAt),
	}
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
