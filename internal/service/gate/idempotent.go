package gate

import (
	"context"

	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/pkg/idempotent"
)

var _ Dispatcher = (*IdempotentDispatcher)(nil)

// IdempotentDispatcher 按 IdempotencyKey 去重，默认不启用
// 发送失败时释放幂等键，幂等服务不可用时放行，宁可重复也不丢消息
type IdempotentDispatcher struct {
	next   Dispatcher
	guard  idempotent.Guard
	logger *elog.Component
}

func NewIdempotentDispatcher(next Dispatcher, guard idempotent.Guard) *IdempotentDispatcher {
	return &IdempotentDispatcher{
		next:   next,
		guard:  guard,
		logger: elog.DefaultLogger,
	}
}

func (d *IdempotentDispatcher) Dispatch(ctx context.Context, payload domain.Payload, jc JobContext) Outcome {
	key := payload.IdempotencyKey
	if key == "" {
		return d.next.Dispatch(ctx, payload, jc)
	}
	acquired, err := d.guard.Acquire(ctx, key)
	if err != nil {
		d.logger.Warn("幂等检查失败，直接放行", elog.String("key", key), elog.FieldErr(err))
		return d.next.Dispatch(ctx, payload, jc)
	}
	if !acquired {
		return Outcome{
			Error: &domain.SendError{
				Code:    domain.ErrorCodeSendFailed,
				Message: errs.ErrDuplicateRequest.Error() + ": " + key,
			},
		}
	}
	out := d.next.Dispatch(ctx, payload, jc)
	if !out.Success {
		if err := d.guard.Release(ctx, key); err != nil {
			d.logger.Warn("释放幂等键失败", elog.String("key", key), elog.FieldErr(err))
		}
	}
	return out
}
