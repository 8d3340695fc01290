package domain

import (
	"fmt"

	"club-notification/internal/errs"
)

// Recipient 接收者，运动员或教练
type Recipient struct {
	AthleteID int64  `json:"athleteId,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"` // E.164
}

// Address 返回指定渠道下的联系地址
func (r Recipient) Address(ch Channel) string {
	if ch.IsEmail() {
		return r.Email
	}
	if ch.IsPhone() {
		return r.Phone
	}
	return ""
}

// Reachable 是否具备该渠道需要的联系方式
func (r Recipient) Reachable(ch Channel) bool {
	return r.Address(ch) != ""
}

// Fallback 自动渠道下按渠道覆盖的内容
type Fallback struct {
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
}

// Payload 通知请求
type Payload struct {
	Channel  Channel     `json:"channel"`
	To       []Recipient `json:"to"`
	Template TemplateID  `json:"template"`
	Data     Variables   `json:"-"`

	IdempotencyKey string            `json:"idempotencyKey,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`

	// 以下仅在自动渠道下生效
	Priority []Channel            `json:"priority,omitempty"`
	Fallback map[Channel]Fallback `json:"fallback,omitempty"`

	// 已渲染好的内容，非空时跳过模版渲染
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
}

// First 非批量发送只使用第一个接收者
func (p Payload) First() (Recipient, bool) {
	if len(p.To) == 0 {
		return Recipient{}, false
	}
	return p.To[0], true
}

// PriorityOrDefault 自动渠道的优先级
func (p Payload) PriorityOrDefault() []Channel {
	if len(p.Priority) == 0 {
		return DefaultPriority
	}
	return p.Priority
}

// Values 模版变量，Data 为空时返回空 map
func (p Payload) Values() map[string]string {
	if p.Data == nil {
		return map[string]string{}
	}
	return p.Data.Values()
}

// WithChannel 复制一份并切换渠道，自动渠道下逐个尝试时使用
func (p Payload) WithChannel(ch Channel) Payload {
	cp := p
	cp.Channel = ch
	if fb, ok := p.Fallback[ch]; ok {
		if fb.Subject != "" {
			cp.Subject = fb.Subject
		}
		if fb.Body != "" {
			cp.Body = fb.Body
		}
	}
	return cp
}

// WithRecipient 复制一份只包含单个接收者的请求
func (p Payload) WithRecipient(r Recipient) Payload {
	cp := p
	cp.To = []Recipient{r}
	return cp
}

func (p Payload) Validate() error {
	if !p.Channel.IsValid() {
		return fmt.Errorf("%w: Channel = %q", errs.ErrInvalidParameter, p.Channel)
	}
	if p.Template == "" && p.Body == "" {
		return fmt.Errorf("%w: Template 和 Body 不能同时为空", errs.ErrInvalidParameter)
	}
	for _, ch := range p.Priority {
		if !ch.IsValid() || ch == ChannelAuto {
			return fmt.Errorf("%w: Priority = %v", errs.ErrInvalidParameter, p.Priority)
		}
	}
	return nil
}
