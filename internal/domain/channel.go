package domain

import "regexp"

// Channel 通知渠道
type Channel string

const (
	ChannelEmail    Channel = "email"    // 邮件
	ChannelSMS      Channel = "sms"      // 短信
	ChannelWhatsApp Channel = "whatsapp" // WhatsApp
	ChannelAuto     Channel = "auto"     // 根据联系方式和优先级自动选择
)

// DefaultPriority 自动渠道的默认优先级
var DefaultPriority = []Channel{ChannelWhatsApp, ChannelSMS, ChannelEmail}

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelWhatsApp, ChannelAuto:
		return true
	}
	return false
}

// IsPhone 短信和 WhatsApp 都以手机号为地址
func (c Channel) IsPhone() bool {
	return c == ChannelSMS || c == ChannelWhatsApp
}

func (c Channel) IsEmail() bool {
	return c == ChannelEmail
}

// Family 渠道对应的模版族
func (c Channel) Family() TemplateFamily {
	if c.IsEmail() {
		return TemplateFamilyEmail
	}
	return TemplateFamilyMessaging
}

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

// IsE164 是否为 E.164 格式手机号，如 +5511999998888
func IsE164(phone string) bool {
	return e164Pattern.MatchString(phone)
}
