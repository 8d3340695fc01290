package ioc

import (
	"time"

	"github.com/gotomicro/ego/core/econf"

	"club-notification/internal/domain"
	"club-notification/internal/event/job"
)

// NotificationConfig notification 配置节
type NotificationConfig struct {
	Email domain.EmailConfig `yaml:"email"`
	Phone domain.PhoneConfig `yaml:"phone"`
	Queue domain.QueueConfig `yaml:"queue"`

	Concurrency int               `yaml:"concurrency"`
	Retry       job.RetryConfig   `yaml:"retry"`
	Idempotency IdempotencyConfig `yaml:"idempotency"`
}

func (c NotificationConfig) Providers() domain.ProviderConfig {
	return domain.ProviderConfig{Email: c.Email, Phone: c.Phone, Queue: c.Queue}
}

// IdempotencyConfig 按 IdempotencyKey 去重，默认关闭
type IdempotencyConfig struct {
	Enabled bool          `yaml:"enabled"`
	Expiry  time.Duration `yaml:"expiry"`
}

// ConfirmationConfig notification.confirmation 配置节
type ConfirmationConfig struct {
	BaseURL     string        `yaml:"baseUrl"`
	SigningKey  string        `yaml:"signingKey"`
	LinkTTL     time.Duration `yaml:"linkTtl"`
	Concurrency int           `yaml:"concurrency"`

	// BulkSendLimit 每个组织的批量发送频率，需要 redis
	BulkSendLimit BulkSendLimitConfig `yaml:"bulkSendLimit"`
}

// BulkSendLimitConfig Rate 为 0 表示不限流
type BulkSendLimitConfig struct {
	Interval time.Duration `yaml:"interval"`
	Rate     int           `yaml:"rate"`
}

func InitNotificationConfig() NotificationConfig {
	var cfg NotificationConfig
	err := econf.UnmarshalKey("notification", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

func InitConfirmationConfig() ConfirmationConfig {
	var cfg ConfirmationConfig
	err := econf.UnmarshalKey("notification.confirmation", &cfg)
	if err != nil {
		panic(err)
	}
	if cfg.SigningKey == "" {
		panic("notification.confirmation.signingKey 未配置")
	}
	return cfg
}
