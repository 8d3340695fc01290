package gate

import (
	"club-notification/internal/domain"
	"club-notification/internal/service/notification"
)

// NewDispatcher 配置了任务队列时优先走队列，否则直接发送
func NewDispatcher(cfg domain.QueueConfig, trigger Trigger, svc notification.Service) Dispatcher {
	direct := NewDirectDispatcher(svc)
	if !cfg.Configured() || trigger == nil {
		return direct
	}
	return NewFallbackDispatcher(NewQueueDispatcher(trigger), direct)
}
