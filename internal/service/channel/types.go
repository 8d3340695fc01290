package channel

import (
	"context"

	"club-notification/internal/domain"
)

// SendRequest 归一化后的单个接收者发送请求
type SendRequest struct {
	Channel   domain.Channel
	To        string
	Template  domain.TemplateID
	Variables map[string]string
	// Subject 和 Body 非空时跳过模版渲染
	Subject        string
	Body           string
	IdempotencyKey string
	Metadata       map[string]string
}

// Channel 渠道适配器
//
//go:generate mockgen -source=./types.go -destination=./mocks/channel.mock.go -package=channelmocks Channel
type Channel interface {
	// Send 发送通知
	// 供应商失败体现在 Result.Error 中，返回 error 表示适配器自身出错，如模版渲染失败
	Send(ctx context.Context, req SendRequest) (domain.Result, error)
	// Available 供应商是否已配置
	Available() bool
}
