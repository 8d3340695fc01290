package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"club-notification/internal/domain"
	"club-notification/internal/service/provider"
)

var _ provider.Provider = (*Provider)(nil)

// Dialer 便于测试替换 SMTP 连接
type Dialer interface {
	Dial() (gomail.SendCloser, error)
}

// Provider 基于 SMTP 的邮件供应商
type Provider struct {
	dialer   Dialer
	from     string
	fromName string
	// domain Message-ID 的域名部分
	domain string
}

// Send 发送 HTML 邮件
// 直接使用 SendCloser 而不是 DialAndSend，以便保留 SMTP 返回码用于错误归类
func (p *Provider) Send(_ context.Context, msg provider.Message) (provider.Receipt, error) {
	id := uuid.NewString()

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.from, p.fromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", id, p.domain))
	if msg.IdempotencyKey != "" {
		m.SetHeader("X-Idempotency-Key", msg.IdempotencyKey)
	}
	m.SetBody("text/html", msg.Body)

	sc, err := p.dialer.Dial()
	if err != nil {
		return provider.Receipt{}, err
	}
	defer sc.Close()

	if err = sc.Send(p.from, []string{msg.To}, m); err != nil {
		return provider.Receipt{}, err
	}
	return provider.Receipt{
		ID:        id,
		Status:    domain.DeliveryStatusSent.String(),
		CreatedAt: time.Now(),
	}, nil
}

func NewProvider(cfg domain.EmailConfig) *Provider {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.SSL
	return newProvider(d, cfg)
}

func newProvider(d Dialer, cfg domain.EmailConfig) *Provider {
	host := cfg.Host
	if at := strings.LastIndex(cfg.From, "@"); at >= 0 {
		host = cfg.From[at+1:]
	}
	return &Provider{
		dialer:   d,
		from:     cfg.From,
		fromName: cfg.FromName,
		domain:   host,
	}
}
