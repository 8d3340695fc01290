package confirmation

import (
	"context"

	"club-notification/internal/domain"
)

// Service 训练课出勤确认的批量发送、重发和审计查询
//
//go:generate mockgen -source=./types.go -destination=./mocks/confirmation.mock.go -package=confirmationmocks Service LinkSigner
type Service interface {
	// BulkSend 对时间窗口内待开始的训练课批量发送确认消息，每次尝试写一条记录，共享同一个批次ID
	BulkSend(ctx context.Context, req domain.BulkSendRequest) (domain.BulkSendResult, error)
	// Resend 针对一条历史记录重发，总是新建记录
	Resend(ctx context.Context, req domain.ResendRequest) (domain.ResendResult, error)
	List(ctx context.Context, filter domain.HistoryFilter, offset, limit int) ([]domain.ConfirmationHistory, int64, error)
	Stats(ctx context.Context, orgID, sessionID int64) (domain.ConfirmationStats, error)
}

// LinkSigner 生成带签名的确认链接
type LinkSigner interface {
	ConfirmationURL(sessionID, athleteID int64) (string, error)
}
