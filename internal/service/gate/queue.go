package gate

import (
	"context"
	"fmt"

	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
)

var _ Dispatcher = (*QueueDispatcher)(nil)

// QueueDispatcher 交给后台任务系统，立即返回任务ID，重试由任务系统负责
type QueueDispatcher struct {
	trigger Trigger
	logger  *elog.Component
}

func NewQueueDispatcher(trigger Trigger) *QueueDispatcher {
	return &QueueDispatcher{
		trigger: trigger,
		logger:  elog.DefaultLogger,
	}
}

func (q *QueueDispatcher) Dispatch(ctx context.Context, payload domain.Payload, jc JobContext) Outcome {
	outcome, err := q.Enqueue(ctx, payload, jc)
	if err != nil {
		return Outcome{
			UsedQueue: true,
			Error: &domain.SendError{
				Code:      domain.ErrorCodeSendFailed,
				Message:   err.Error(),
				Retryable: true,
			},
		}
	}
	return outcome
}

// Enqueue 提交失败时返回 error，便于上层降级
func (q *QueueDispatcher) Enqueue(ctx context.Context, payload domain.Payload, jc JobContext) (Outcome, error) {
	handle, err := q.trigger.Trigger(ctx, NewJob(payload, jc))
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", errs.ErrTriggerJobFailed, err)
	}
	q.logger.Debug("通知已提交到后台任务",
		elog.String("jobId", handle.ID),
		elog.String("channel", payload.Channel.String()),
		elog.String("batchId", jc.BatchID))
	return Outcome{
		Success:   true,
		ID:        handle.ID,
		UsedQueue: true,
	}, nil
}
