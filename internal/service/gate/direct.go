package gate

import (
	"context"

	"club-notification/internal/domain"
	"club-notification/internal/service/notification"
)

var _ Dispatcher = (*DirectDispatcher)(nil)

// DirectDispatcher 同步调用通知服务
type DirectDispatcher struct {
	svc notification.Service
}

func NewDirectDispatcher(svc notification.Service) *DirectDispatcher {
	return &DirectDispatcher{svc: svc}
}

func (d *DirectDispatcher) Dispatch(ctx context.Context, payload domain.Payload, _ JobContext) Outcome {
	res := d.svc.Send(ctx, payload)
	return Outcome{
		Success: res.Success,
		ID:      res.MessageID,
		Error:   res.Error,
	}
}
