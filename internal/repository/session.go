package repository

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/domain"
	"club-notification/internal/repository/dao"
)

type sessionRepository struct {
	dao    dao.SessionDAO
	logger *elog.Component
}

func NewSessionRepository(d dao.SessionDAO) SessionRepository {
	return &sessionRepository{
		dao:    d,
		logger: elog.DefaultLogger,
	}
}

func (repo *sessionRepository) FindPending(ctx context.Context, orgID int64, from, to time.Time, ids []int64) ([]domain.Session, error) {
	entities, err := repo.dao.FindPending(ctx, orgID, from.UnixMilli(), to.UnixMilli(), ids)
	if err != nil {
		return nil, err
	}
	return repo.withRosters(ctx, entities)
}

func (repo *sessionRepository) GetByID(ctx context.Context, id int64) (domain.Session, error) {
	entity, err := repo.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	sessions, err := repo.withRosters(ctx, []dao.Session{entity})
	if err != nil {
		return domain.Session{}, err
	}
	return sessions[0], nil
}

func (repo *sessionRepository) GetAthlete(ctx context.Context, id int64) (domain.Athlete, error) {
	entity, err := repo.dao.GetAthlete(ctx, id)
	if err != nil {
		return domain.Athlete{}, err
	}
	return toAthlete(entity), nil
}

// withRosters 一次性加载分组成员和直接分配的运动员
func (repo *sessionRepository) withRosters(ctx context.Context, entities []dao.Session) ([]domain.Session, error) {
	if len(entities) == 0 {
		return []domain.Session{}, nil
	}
	groupIDs := slice.FilterMap(entities, func(_ int, src dao.Session) (int64, bool) {
		return src.GroupID, src.GroupID > 0
	})
	members, err := repo.dao.GroupMembers(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	direct, err := repo.dao.SessionAthletes(ctx, slice.Map(entities, func(_ int, src dao.Session) int64 {
		return src.ID
	}))
	if err != nil {
		return nil, err
	}
	orgNames := make(map[int64]string)
	for i := range entities {
		orgID := entities[i].OrganizationID
		if _, ok := orgNames[orgID]; ok {
			continue
		}
		org, er := repo.dao.GetOrganization(ctx, orgID)
		if er != nil {
			// 组织名称只用于模版展示
			repo.logger.Warn("查询组织失败", elog.Any("orgID", orgID), elog.FieldErr(er))
		}
		orgNames[orgID] = org.Name
	}

	return slice.Map(entities, func(_ int, src dao.Session) domain.Session {
		return domain.Session{
			ID:               src.ID,
			OrganizationID:   src.OrganizationID,
			OrganizationName: orgNames[src.OrganizationID],
			Name:             src.Name,
			Location:         src.Location,
			StartsAt:         time.UnixMilli(src.StartsAt),
			Status:           domain.SessionStatus(src.Status),
			GroupID:          src.GroupID,
			GroupMembers:     slice.Map(members[src.GroupID], toAthleteAt),
			Athletes:         slice.Map(direct[src.ID], toAthleteAt),
		}
	}), nil
}

func toAthleteAt(_ int, src dao.Athlete) domain.Athlete {
	return toAthlete(src)
}

func toAthlete(src dao.Athlete) domain.Athlete {
	return domain.Athlete{
		ID:    src.ID,
		Name:  src.Name,
		Email: src.Email,
		Phone: src.Phone,
	}
}
