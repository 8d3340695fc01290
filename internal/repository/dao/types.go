package dao

import (
	"context"
)

// ConfirmationHistoryDAO 确认记录只追加，不提供更新和删除
type ConfirmationHistoryDAO interface {
	// BatchCreate 批量写入一批确认记录，返回带ID的记录
	BatchCreate(ctx context.Context, records []ConfirmationHistory) ([]ConfirmationHistory, error)
	Create(ctx context.Context, record ConfirmationHistory) (ConfirmationHistory, error)
	GetByID(ctx context.Context, id int64) (ConfirmationHistory, error)
	// Find 按条件分页查询，按发送时间倒序
	Find(ctx context.Context, filter HistoryFilter, offset, limit int) ([]ConfirmationHistory, int64, error)
	// CountByStatus 按状态聚合计数
	CountByStatus(ctx context.Context, orgID, sessionID int64) (map[string]int64, error)
}

// SessionDAO 训练课和名单的只读视图
type SessionDAO interface {
	// FindPending 查找开始时间在 [start, end] 内的待开始训练课，ids 非空时只查这些训练课
	FindPending(ctx context.Context, orgID, start, end int64, ids []int64) ([]Session, error)
	GetByID(ctx context.Context, id int64) (Session, error)
	// GroupMembers 分组ID到成员的映射
	GroupMembers(ctx context.Context, groupIDs []int64) (map[int64][]Athlete, error)
	// SessionAthletes 训练课ID到直接分配运动员的映射
	SessionAthletes(ctx context.Context, sessionIDs []int64) (map[int64][]Athlete, error)
	GetAthlete(ctx context.Context, id int64) (Athlete, error)
	GetOrganization(ctx context.Context, id int64) (Organization, error)
}

// HistoryFilter 零值字段不参与过滤
type HistoryFilter struct {
	OrganizationID int64
	SessionID      int64
	AthleteID      int64
	Status         string
	BatchID        string
	// From To 为毫秒时间戳
	From int64
	To   int64
}
