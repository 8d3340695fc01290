package ioc

import (
	"club-notification/internal/event/job"
	"club-notification/internal/service/notification"
)

// InitTasks 没有接入任务队列时进程内不消费
func InitTasks(source job.Source, svc notification.Service, cfg NotificationConfig) []Task {
	if source == nil {
		return nil
	}
	return []Task{
		job.NewConsumer(source, svc, cfg.Queue.SecretKey, cfg.Retry),
	}
}
