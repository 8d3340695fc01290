package domain

import "time"

// ProviderConfig 供应商配置，进程启动时解析一次，之后只读
type ProviderConfig struct {
	Email EmailConfig `yaml:"email"`
	Phone PhoneConfig `yaml:"phone"`
	Queue QueueConfig `yaml:"queue"`
}

// ChannelConfigured 渠道对应的供应商是否已配置
func (c ProviderConfig) ChannelConfigured(ch Channel) bool {
	switch {
	case ch.IsEmail():
		return c.Email.Configured()
	case ch.IsPhone():
		return c.Phone.Configured()
	}
	return false
}

// ConfiguredChannels 全渠道发送时使用的渠道集合，按默认优先级排列
func (c ProviderConfig) ConfiguredChannels() []Channel {
	res := make([]Channel, 0, len(DefaultPriority))
	for _, ch := range DefaultPriority {
		if c.ChannelConfigured(ch) {
			res = append(res, ch)
		}
	}
	return res
}

type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	FromName string `yaml:"fromName"`
	SSL      bool   `yaml:"ssl"`
}

func (c EmailConfig) Configured() bool {
	return c.Host != "" && c.From != ""
}

type PhoneConfig struct {
	// Provider rest / aliyun / tencent
	Provider string        `yaml:"provider"`
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"apiKey"`
	SenderID string        `yaml:"senderId"`
	Timeout  time.Duration `yaml:"timeout"`

	// 短信 SDK 供应商使用
	RegionID  string `yaml:"regionId"`
	AppID     string `yaml:"appId"`
	SecretID  string `yaml:"secretId"`
	SecretKey string `yaml:"secretKey"`
	SignName  string `yaml:"signName"`
	// 平台模版到供应商模版ID的映射
	Templates map[string]string `yaml:"templates"`
}

// Configured 未配置时手机渠道降级为开发日志模式
func (c PhoneConfig) Configured() bool {
	return c.APIKey != "" || c.SecretKey != ""
}

type QueueConfig struct {
	// SecretKey 为空表示未接入后台任务系统
	SecretKey string   `yaml:"secretKey"`
	Brokers   []string `yaml:"brokers"`
	Topic     string   `yaml:"topic"`
	GroupID   string   `yaml:"groupId"`
}

func (c QueueConfig) Configured() bool {
	return c.SecretKey != ""
}
