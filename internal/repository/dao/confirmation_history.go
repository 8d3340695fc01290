package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"

	"club-notification/internal/errs"
)

// 单条 INSERT 语句最多写入的记录数
const historyInsertBatchSize = 200

type confirmationHistoryDAO struct {
	db *egorm.Component
}

func NewConfirmationHistoryDAO(db *egorm.Component) ConfirmationHistoryDAO {
	return &confirmationHistoryDAO{db: db}
}

func (dao *confirmationHistoryDAO) BatchCreate(ctx context.Context, records []ConfirmationHistory) ([]ConfirmationHistory, error) {
	if len(records) == 0 {
		return records, nil
	}
	now := time.Now().UnixMilli()
	for i := range records {
		records[i].Ctime, records[i].Utime = now, now
	}
	err := dao.db.WithContext(ctx).CreateInBatches(&records, historyInsertBatchSize).Error
	return records, err
}

func (dao *confirmationHistoryDAO) Create(ctx context.Context, record ConfirmationHistory) (ConfirmationHistory, error) {
	now := time.Now().UnixMilli()
	record.Ctime, record.Utime = now, now
	err := dao.db.WithContext(ctx).Create(&record).Error
	return record, err
}

func (dao *confirmationHistoryDAO) GetByID(ctx context.Context, id int64) (ConfirmationHistory, error) {
	var record ConfirmationHistory
	err := dao.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ConfirmationHistory{}, fmt.Errorf("%w: id = %d", errs.ErrHistoryNotFound, id)
	}
	return record, err
}

func (dao *confirmationHistoryDAO) Find(ctx context.Context, filter HistoryFilter, offset, limit int) ([]ConfirmationHistory, int64, error) {
	var total int64
	query := dao.filtered(ctx, filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []ConfirmationHistory{}, 0, nil
	}
	var records []ConfirmationHistory
	err := dao.filtered(ctx, filter).
		Order("sent_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	return records, total, err
}

func (dao *confirmationHistoryDAO) CountByStatus(ctx context.Context, orgID, sessionID int64) (map[string]int64, error) {
	var rows []struct {
		Status string
		Cnt    int64
	}
	err := dao.filtered(ctx, HistoryFilter{OrganizationID: orgID, SessionID: sessionID}).
		Select("status, COUNT(*) AS cnt").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make(map[string]int64, len(rows))
	for _, r := range rows {
		res[r.Status] = r.Cnt
	}
	return res, nil
}

func (dao *confirmationHistoryDAO) filtered(ctx context.Context, f HistoryFilter) *gorm.DB {
	query := dao.db.WithContext(ctx).Model(&ConfirmationHistory{}).
		Where("organization_id = ?", f.OrganizationID)
	if f.SessionID > 0 {
		query = query.Where("session_id = ?", f.SessionID)
	}
	if f.AthleteID > 0 {
		query = query.Where("athlete_id = ?", f.AthleteID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.BatchID != "" {
		query = query.Where("batch_id = ?", f.BatchID)
	}
	if f.From > 0 {
		query = query.Where("sent_at >= ?", f.From)
	}
	if f.To > 0 {
		query = query.Where("sent_at <= ?", f.To)
	}
	return query
}

// ConfirmationHistory 一次确认消息投递的审计记录
type ConfirmationHistory struct {
	ID             int64  `gorm:"primaryKey;autoIncrement;comment:'确认记录ID'"`
	OrganizationID int64  `gorm:"type:BIGINT;NOT NULL;index:idx_org_sent,priority:1;comment:'组织ID'"`
	SessionID      int64  `gorm:"type:BIGINT;NOT NULL;index:idx_session_athlete,priority:1;comment:'训练课ID'"`
	AthleteID      int64  `gorm:"type:BIGINT;NOT NULL;index:idx_session_athlete,priority:2;comment:'运动员ID'"`
	Channel        string `gorm:"type:ENUM('email','sms','whatsapp');NOT NULL;comment:'发送渠道'"`
	Status         string `gorm:"type:ENUM('sent','confirmed','failed');NOT NULL;DEFAULT:'sent';index:idx_status;comment:'确认状态'"`
	BatchID        string `gorm:"type:VARCHAR(64);NOT NULL;index:idx_batch_id;comment:'批次ID，同一次批量发送共享'"`
	TriggerJobID   string `gorm:"type:VARCHAR(128);comment:'异步任务ID或供应商消息ID'"`
	ErrorMessage   string `gorm:"type:VARCHAR(1024);comment:'失败原因'"`
	InitiatedBy    string `gorm:"type:VARCHAR(128);comment:'发起人'"`
	SentAt         int64  `gorm:"type:BIGINT;NOT NULL;index:idx_org_sent,priority:2;comment:'发送时间戳'"`
	ConfirmedAt    int64  `gorm:"type:BIGINT;NOT NULL;DEFAULT:0;comment:'确认时间戳，0 表示未确认'"`
	Ctime          int64
	Utime          int64
}

func (ConfirmationHistory) TableName() string {
	return "confirmation_history"
}
