package gate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"

	"club-notification/internal/domain"
)

// DispatchBatch 对每个接收者分别经过闸门，结果与 payload.To 一一对应
// 幂等键按接收者下标拆分，避免同一批次内互相去重
func DispatchBatch(ctx context.Context, d Dispatcher, payload domain.Payload, jc JobContext, limit int) []Outcome {
	outcomes := make([]Outcome, len(payload.To))
	if limit <= 0 {
		limit = 1
	}

	var eg errgroup.Group
	eg.SetLimit(limit)
	for i, r := range payload.To {
		p := payload.WithRecipient(r)
		if p.IdempotencyKey != "" {
			p.IdempotencyKey = p.IdempotencyKey + ":" + strconv.Itoa(i)
		}
		eg.Go(func() error {
			defer func() {
				if e := recover(); e != nil {
					elog.DefaultLogger.Error("批量发送时发生 panic",
						elog.Int("index", i),
						elog.Any("panic", e))
					outcomes[i] = Outcome{Error: &domain.SendError{
						Code:    domain.ErrorCodeSendFailed,
						Message: fmt.Sprintf("panic: %v", e),
					}}
				}
			}()
			outcomes[i] = d.Dispatch(ctx, p, jc)
			return nil
		})
	}
	_ = eg.Wait()
	return outcomes
}
