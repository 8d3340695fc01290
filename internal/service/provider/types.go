package provider

import (
	"context"
	"time"

	"club-notification/internal/domain"
)

// Provider 供应商，负责把已渲染的消息交给外部服务
//
//go:generate mockgen -source=./types.go -destination=./mocks/provider.mock.go -package=providermocks Provider
type Provider interface {
	// Send 发送消息
	// 供应商侧拒绝时返回 *Error，便于归类是否可重试
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// Message 已渲染的消息
type Message struct {
	Channel  domain.Channel
	To       string
	Subject  string
	Body     string
	Template domain.TemplateID
	// Params 部分短信供应商只接受模版ID和参数
	Params         map[string]string
	IdempotencyKey string
	Metadata       map[string]string
}

// Receipt 供应商受理回执
type Receipt struct {
	ID        string
	Status    string
	CreatedAt time.Time
	Cost      *float64
}
