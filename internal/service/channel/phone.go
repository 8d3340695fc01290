package channel

import (
	"context"
	"fmt"

	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/service/provider"
	"club-notification/internal/service/provider/console"
	"club-notification/internal/service/template"
)

var _ Channel = (*phoneChannel)(nil)

// phoneChannel 短信和 WhatsApp 共用的适配器，每个渠道一个实例
type phoneChannel struct {
	channel    domain.Channel
	provider   provider.Provider
	configured bool
	templates  *template.Registry
	logger     *elog.Component
}

// NewPhoneChannel provider 为 nil 时进入开发日志模式，只记录日志并返回成功
func NewPhoneChannel(ch domain.Channel, p provider.Provider, templates *template.Registry) Channel {
	c := &phoneChannel{
		channel:    ch,
		provider:   p,
		configured: p != nil,
		templates:  templates,
		logger:     elog.DefaultLogger,
	}
	if p == nil {
		c.provider = console.NewProvider()
	}
	return c
}

func (c *phoneChannel) Available() bool {
	return c.configured
}

func (c *phoneChannel) Send(ctx context.Context, req SendRequest) (domain.Result, error) {
	if !c.channel.IsPhone() {
		return domain.Result{}, fmt.Errorf("%w: %s 不是手机渠道", errs.ErrNoAvailableChannel, c.channel)
	}
	body := req.Body
	if body == "" {
		var err error
		body, err = c.templates.Render(domain.TemplateFamilyMessaging, req.Template, req.Variables)
		if err != nil {
			return domain.Result{}, err
		}
	}
	return deliver(ctx, c.logger, c.provider, provider.Message{
		Channel:        c.channel,
		To:             req.To,
		Body:           body,
		Template:       req.Template,
		Params:         req.Variables,
		IdempotencyKey: req.IdempotencyKey,
		Metadata:       req.Metadata,
	}), nil
}
