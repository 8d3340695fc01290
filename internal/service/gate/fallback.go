package gate

import (
	"context"

	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/domain"
)

var _ Dispatcher = (*FallbackDispatcher)(nil)

// FallbackDispatcher 优先走队列，提交失败时降级为直接发送
type FallbackDispatcher struct {
	queue  *QueueDispatcher
	direct *DirectDispatcher
	logger *elog.Component
}

func NewFallbackDispatcher(queue *QueueDispatcher, direct *DirectDispatcher) *FallbackDispatcher {
	return &FallbackDispatcher{
		queue:  queue,
		direct: direct,
		logger: elog.DefaultLogger,
	}
}

func (f *FallbackDispatcher) Dispatch(ctx context.Context, payload domain.Payload, jc JobContext) Outcome {
	outcome, err := f.queue.Enqueue(ctx, payload, jc)
	if err == nil {
		return outcome
	}
	f.logger.Warn("提交后台任务失败，降级为直接发送",
		elog.String("channel", payload.Channel.String()),
		elog.String("batchId", jc.BatchID),
		elog.FieldErr(err))
	return f.direct.Dispatch(ctx, payload, jc)
}
