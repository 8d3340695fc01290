package notification

import (
	"context"

	"club-notification/internal/domain"
)

// Service 通知发送的统一入口
//
//go:generate mockgen -source=./types.go -destination=./mocks/notification.mock.go -package=notificationmocks Service
type Service interface {
	// Send 单个接收者发送，只使用 To[0]，auto 渠道转交 SendAuto
	Send(ctx context.Context, payload domain.Payload) domain.Result
	// SendAuto 按优先级逐个尝试可用渠道
	SendAuto(ctx context.Context, payload domain.Payload) domain.Result
	// SendBatch 对 To 中每个接收者并发发送，结果顺序与 To 一致
	SendBatch(ctx context.Context, payload domain.Payload) domain.BatchResult
}
