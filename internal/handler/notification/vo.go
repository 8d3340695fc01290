package notification

import (
	"club-notification/internal/domain"
)

// SendReq 单个或批量发送请求，批量时对 To 中每个接收者分别发送
type SendReq struct {
	Channel        string              `json:"channel"`
	To             []domain.Recipient  `json:"to"`
	Template       string              `json:"template"`
	Variables      map[string]string   `json:"variables"`
	IdempotencyKey string              `json:"idempotencyKey"`
	Metadata       map[string]string   `json:"metadata"`
	Priority       []string            `json:"priority"`
	Fallback       map[string]Fallback `json:"fallback"`
	Subject        string              `json:"subject"`
	Body           string              `json:"body"`
}

type Fallback struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (r SendReq) toPayload() domain.Payload {
	p := domain.Payload{
		Channel:        domain.Channel(r.Channel),
		To:             r.To,
		Template:       domain.TemplateID(r.Template),
		Data:           domain.RawVariables(r.Variables),
		IdempotencyKey: r.IdempotencyKey,
		Metadata:       r.Metadata,
		Subject:        r.Subject,
		Body:           r.Body,
	}
	for _, ch := range r.Priority {
		p.Priority = append(p.Priority, domain.Channel(ch))
	}
	if len(r.Fallback) > 0 {
		p.Fallback = make(map[domain.Channel]domain.Fallback, len(r.Fallback))
		for ch, fb := range r.Fallback {
			p.Fallback[domain.Channel(ch)] = domain.Fallback{Subject: fb.Subject, Body: fb.Body}
		}
	}
	return p
}

type SendResp struct {
	Result domain.Result `json:"result"`
}

type SendBatchResp struct {
	Result domain.BatchResult `json:"result"`
}
