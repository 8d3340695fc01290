package channel

import (
	"context"
	"fmt"

	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/service/provider"
	"club-notification/internal/service/template"
)

var _ Channel = (*emailChannel)(nil)

type emailChannel struct {
	provider  provider.Provider
	templates *template.Registry
	logger    *elog.Component
}

// NewEmailChannel provider 为 nil 表示邮件供应商未配置
func NewEmailChannel(p provider.Provider, templates *template.Registry) Channel {
	return &emailChannel{
		provider:  p,
		templates: templates,
		logger:    elog.DefaultLogger,
	}
}

func (c *emailChannel) Available() bool {
	return c.provider != nil
}

func (c *emailChannel) Send(ctx context.Context, req SendRequest) (domain.Result, error) {
	if c.provider == nil {
		return domain.Result{}, fmt.Errorf("%w: 邮件供应商未配置", errs.ErrNoAvailableProvider)
	}
	subject, body := req.Subject, req.Body
	if body == "" {
		content, err := c.templates.RenderEmail(req.Template, req.Variables)
		if err != nil {
			return domain.Result{}, err
		}
		body = content.Body
		if subject == "" {
			subject = content.Subject
		}
	}
	return deliver(ctx, c.logger, c.provider, provider.Message{
		Channel:        domain.ChannelEmail,
		To:             req.To,
		Subject:        subject,
		Body:           body,
		Template:       req.Template,
		Params:         req.Variables,
		IdempotencyKey: req.IdempotencyKey,
		Metadata:       req.Metadata,
	}), nil
}
