package console

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/service/provider"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 开发日志模式，未配置手机渠道供应商时使用
// 不真正发送，只记录日志并返回本地生成的消息ID
// 正文含运动员姓名和确认链接，日志只记录长度
type Provider struct {
	logger *elog.Component
}

func NewProvider() *Provider {
	return &Provider{
		logger: elog.DefaultLogger,
	}
}

func (p *Provider) Send(_ context.Context, msg provider.Message) (provider.Receipt, error) {
	id := "dev-" + uuid.NewString()
	p.logger.Info("开发模式，消息未真正发送",
		elog.String("channel", msg.Channel.String()),
		elog.String("to", msg.To),
		elog.String("template", msg.Template.String()),
		elog.String("messageId", id),
		elog.Int("bodyLen", len(msg.Body)))
	return provider.Receipt{
		ID:        id,
		Status:    "sent",
		CreatedAt: time.Now(),
	}, nil
}
