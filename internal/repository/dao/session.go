package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"

	"club-notification/internal/errs"
)

type sessionDAO struct {
	db *egorm.Component
}

func NewSessionDAO(db *egorm.Component) SessionDAO {
	return &sessionDAO{db: db}
}

func (dao *sessionDAO) FindPending(ctx context.Context, orgID, start, end int64, ids []int64) ([]Session, error) {
	query := dao.db.WithContext(ctx).
		Where("organization_id = ? AND status = ?", orgID, sessionStatusPending).
		Where("starts_at >= ? AND starts_at <= ?", start, end)
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	var sessions []Session
	err := query.Order("starts_at ASC, id ASC").Find(&sessions).Error
	return sessions, err
}

func (dao *sessionDAO) GetByID(ctx context.Context, id int64) (Session, error) {
	var s Session
	err := dao.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, fmt.Errorf("%w: id = %d", errs.ErrSessionNotFound, id)
	}
	return s, err
}

// rosterRow 名单查询结果，OwnerID 为分组ID或训练课ID
type rosterRow struct {
	OwnerID int64
	Athlete
}

func (dao *sessionDAO) GroupMembers(ctx context.Context, groupIDs []int64) (map[int64][]Athlete, error) {
	if len(groupIDs) == 0 {
		return map[int64][]Athlete{}, nil
	}
	var rows []rosterRow
	err := dao.db.WithContext(ctx).Model(&GroupMember{}).
		Select("group_member.group_id AS owner_id, athlete.*").
		Joins("JOIN athlete ON athlete.id = group_member.athlete_id").
		Where("group_member.group_id IN ?", groupIDs).
		Order("group_member.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return groupByOwner(rows), nil
}

func (dao *sessionDAO) SessionAthletes(ctx context.Context, sessionIDs []int64) (map[int64][]Athlete, error) {
	if len(sessionIDs) == 0 {
		return map[int64][]Athlete{}, nil
	}
	var rows []rosterRow
	err := dao.db.WithContext(ctx).Model(&SessionAthlete{}).
		Select("session_athlete.session_id AS owner_id, athlete.*").
		Joins("JOIN athlete ON athlete.id = session_athlete.athlete_id").
		Where("session_athlete.session_id IN ?", sessionIDs).
		Order("session_athlete.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return groupByOwner(rows), nil
}

func groupByOwner(rows []rosterRow) map[int64][]Athlete {
	res := make(map[int64][]Athlete)
	for _, r := range rows {
		res[r.OwnerID] = append(res[r.OwnerID], r.Athlete)
	}
	return res
}

func (dao *sessionDAO) GetAthlete(ctx context.Context, id int64) (Athlete, error) {
	var a Athlete
	err := dao.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Athlete{}, fmt.Errorf("%w: id = %d", errs.ErrAthleteNotFound, id)
	}
	return a, err
}

func (dao *sessionDAO) GetOrganization(ctx context.Context, id int64) (Organization, error) {
	var o Organization
	err := dao.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	return o, err
}

const sessionStatusPending = "pending"

// 以下表由训练管理模块维护，这里只读

type Organization struct {
	ID    int64  `gorm:"primaryKey;autoIncrement;comment:'组织ID'"`
	Name  string `gorm:"type:VARCHAR(128);NOT NULL;comment:'组织名称'"`
	Ctime int64
	Utime int64
}

func (Organization) TableName() string {
	return "organization"
}

type Session struct {
	ID             int64  `gorm:"primaryKey;autoIncrement;comment:'训练课ID'"`
	OrganizationID int64  `gorm:"type:BIGINT;NOT NULL;index:idx_org_status_start,priority:1;comment:'组织ID'"`
	Name           string `gorm:"type:VARCHAR(128);NOT NULL;comment:'训练课名称'"`
	Location       string `gorm:"type:VARCHAR(255);comment:'地点'"`
	StartsAt       int64  `gorm:"type:BIGINT;NOT NULL;index:idx_org_status_start,priority:3;comment:'开始时间戳'"`
	Status         string `gorm:"type:ENUM('pending','started','completed','cancelled');NOT NULL;DEFAULT:'pending';index:idx_org_status_start,priority:2;comment:'状态'"`
	GroupID        int64  `gorm:"type:BIGINT;NOT NULL;DEFAULT:0;comment:'分组ID，0 表示未分组'"`
	Ctime          int64
	Utime          int64
}

func (Session) TableName() string {
	return "session"
}

type Athlete struct {
	ID    int64  `gorm:"primaryKey;autoIncrement;comment:'运动员ID'"`
	Name  string `gorm:"type:VARCHAR(128);NOT NULL;comment:'姓名'"`
	Email string `gorm:"type:VARCHAR(255);comment:'邮箱'"`
	Phone string `gorm:"type:VARCHAR(32);comment:'E.164 手机号'"`
	Ctime int64
	Utime int64
}

func (Athlete) TableName() string {
	return "athlete"
}

type Group struct {
	ID             int64  `gorm:"primaryKey;autoIncrement;comment:'分组ID'"`
	OrganizationID int64  `gorm:"type:BIGINT;NOT NULL;index:idx_org;comment:'组织ID'"`
	Name           string `gorm:"type:VARCHAR(128);NOT NULL;comment:'分组名称'"`
	Ctime          int64
	Utime          int64
}

func (Group) TableName() string {
	return "athlete_group"
}

type GroupMember struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	GroupID   int64 `gorm:"type:BIGINT;NOT NULL;uniqueIndex:uk_group_athlete,priority:1"`
	AthleteID int64 `gorm:"type:BIGINT;NOT NULL;uniqueIndex:uk_group_athlete,priority:2"`
	Ctime     int64
}

func (GroupMember) TableName() string {
	return "group_member"
}

type SessionAthlete struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	SessionID int64 `gorm:"type:BIGINT;NOT NULL;uniqueIndex:uk_session_athlete,priority:1"`
	AthleteID int64 `gorm:"type:BIGINT;NOT NULL;uniqueIndex:uk_session_athlete,priority:2"`
	Ctime     int64
}

func (SessionAthlete) TableName() string {
	return "session_athlete"
}
