package phone

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/service/provider"
)

var _ provider.Provider = (*RESTProvider)(nil)

const (
	defaultTimeout = 10 * time.Second
	messagesPath   = "/messages"

	headerAPIKey         = "X-API-Key"
	headerSenderID       = "X-Sender-ID"
	headerIdempotencyKey = "Idempotency-Key"
)

type sendReq struct {
	Channel  string            `json:"channel"`
	To       string            `json:"to"`
	Body     string            `json:"body"`
	Template string            `json:"template,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type sendResp struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Cost      *float64  `json:"cost,omitempty"`
}

type errorResp struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RESTProvider 通过 REST 网关发送短信和 WhatsApp 消息
// 鉴权使用 X-API-Key 和 X-Sender-ID 请求头
type RESTProvider struct {
	client *resty.Client
}

func (p *RESTProvider) Send(ctx context.Context, msg provider.Message) (provider.Receipt, error) {
	req := p.client.R().
		SetContext(ctx).
		SetBody(sendReq{
			Channel:  msg.Channel.String(),
			To:       msg.To,
			Body:     msg.Body,
			Template: msg.Template.String(),
			Params:   msg.Params,
			Metadata: msg.Metadata,
		}).
		SetResult(&sendResp{}).
		SetError(&errorResp{})
	if msg.IdempotencyKey != "" {
		req.SetHeader(headerIdempotencyKey, msg.IdempotencyKey)
	}

	resp, err := req.Post(messagesPath)
	if err != nil {
		return provider.Receipt{}, fmt.Errorf("%w: %w", errs.ErrSendNotificationFailed, err)
	}
	if resp.IsError() {
		pe := &provider.Error{HTTPStatus: resp.StatusCode(), Message: resp.Status()}
		if e, ok := resp.Error().(*errorResp); ok && e != nil {
			pe.Code = e.Code
			if e.Message != "" {
				pe.Message = e.Message
			}
		}
		return provider.Receipt{}, pe
	}

	res, ok := resp.Result().(*sendResp)
	if !ok || res == nil || res.ID == "" {
		return provider.Receipt{}, fmt.Errorf("%w: 响应缺少消息ID", errs.ErrSendNotificationFailed)
	}
	createdAt := res.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return provider.Receipt{
		ID:        res.ID,
		Status:    res.Status,
		CreatedAt: createdAt,
		Cost:      res.Cost,
	}, nil
}

func NewRESTProvider(cfg domain.PhoneConfig) *RESTProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetTimeout(timeout).
		SetHeader(headerAPIKey, cfg.APIKey).
		SetHeader(headerSenderID, cfg.SenderID)
	return &RESTProvider{client: client}
}
