package ioc

import (
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"

	"club-notification/internal/domain"
	"club-notification/internal/service/channel"
	"club-notification/internal/service/notification"
	"club-notification/internal/service/template"
)

func InitTemplates() *template.Registry {
	return template.NewDefaultRegistry()
}

func InitChannelDispatcher(cfg NotificationConfig, templates *template.Registry) *channel.Dispatcher {
	providers := InitProviders(cfg)
	dispatcher := channel.NewDispatcher(map[domain.Channel]channel.Channel{
		domain.ChannelEmail:    channel.NewEmailChannel(providers.Email, templates),
		domain.ChannelSMS:      channel.NewPhoneChannel(domain.ChannelSMS, providers.SMS, templates),
		domain.ChannelWhatsApp: channel.NewPhoneChannel(domain.ChannelWhatsApp, providers.WhatsApp, templates),
	})
	if !dispatcher.Available() {
		elog.DefaultLogger.Warn("没有可用的通知渠道，自动渠道发送都会失败")
	}
	return dispatcher
}

func InitNotificationService(dispatcher *channel.Dispatcher, templates *template.Registry, cfg NotificationConfig) notification.Service {
	svc := notification.NewService(dispatcher, templates, cfg.Concurrency)
	return notification.NewMetricsService(svc, prometheus.DefaultRegisterer)
}
