package ioc

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"club-notification/internal/domain"
	"club-notification/internal/service/provider"
	"club-notification/internal/service/provider/breaker"
	"club-notification/internal/service/provider/email"
	"club-notification/internal/service/provider/metrics"
	"club-notification/internal/service/provider/phone"
	"club-notification/internal/service/provider/phone/client"
	"club-notification/internal/service/provider/sequential"
	"club-notification/internal/service/provider/tracing"
)

const (
	smsProviderAliyun  = "aliyun"
	smsProviderTencent = "tencent"
	smsProviderREST    = "rest"
)

// Providers 各渠道的供应商，未配置的为 nil
type Providers struct {
	Email    provider.Provider
	SMS      provider.Provider
	WhatsApp provider.Provider
}

func InitProviders(cfg NotificationConfig) Providers {
	var res Providers
	if cfg.Email.Configured() {
		res.Email = tracing.NewProvider(guard("smtp", email.NewProvider(cfg.Email)), "email")
	}
	if p := initSMSProvider(cfg.Phone); p != nil {
		res.SMS = tracing.NewProvider(p, "sms")
	}
	// WhatsApp 只有 REST 网关
	if cfg.Phone.APIKey != "" {
		res.WhatsApp = tracing.NewProvider(guard("whatsapp-rest", phone.NewRESTProvider(cfg.Phone)), "whatsapp")
	}
	return res
}

// initSMSProvider 短信 SDK 优先，REST 网关兜底
func initSMSProvider(cfg domain.PhoneConfig) provider.Provider {
	var providers []provider.Provider
	if c := initSMSClient(cfg); c != nil {
		sdk := phone.NewSDKProvider(cfg.Provider, c, cfg.SignName, cfg.Templates)
		providers = append(providers, guard(cfg.Provider, sdk))
	}
	if cfg.APIKey != "" {
		providers = append(providers, guard("sms-rest", phone.NewRESTProvider(cfg)))
	}
	if len(providers) == 0 {
		return nil
	}
	return sequential.NewProvider(providers...)
}

func initSMSClient(cfg domain.PhoneConfig) client.Client {
	if cfg.SecretKey == "" {
		return nil
	}
	switch cfg.Provider {
	case smsProviderAliyun:
		c, err := client.NewAliyunSMS(cfg.RegionID, cfg.SecretID, cfg.SecretKey)
		if err != nil {
			panic(fmt.Sprintf("初始化阿里云短信客户端失败: %v", err))
		}
		return c
	case smsProviderTencent:
		c, err := client.NewTencentSMS(cfg.RegionID, cfg.AppID, cfg.SecretID, cfg.SecretKey)
		if err != nil {
			panic(fmt.Sprintf("初始化腾讯云短信客户端失败: %v", err))
		}
		return c
	case "", smsProviderREST:
		return nil
	}
	panic(fmt.Sprintf("不支持的短信供应商: %s", cfg.Provider))
}

// guard 熔断在内层，被熔断拒绝的请求也计入指标
func guard(name string, p provider.Provider) provider.Provider {
	return metrics.NewProvider(name, breaker.NewSREProvider(p), prometheus.DefaultRegisterer)
}
