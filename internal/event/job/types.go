package job

import (
	"time"

	"club-notification/internal/service/gate"
)

const (
	// Topic 通知任务的默认主题
	Topic = "club_notification_jobs"

	headerSecret = "x-queue-secret"
)

// Event 后台任务消息
type Event struct {
	ID          string    `json:"id"`
	Job         gate.Job  `json:"job"`
	TriggeredAt time.Time `json:"triggeredAt"`
}
