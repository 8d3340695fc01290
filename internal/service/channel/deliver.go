package channel

import (
	"context"

	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/domain"
	"club-notification/internal/service/provider"
)

// deliver 调用供应商并归一化结果，每次尝试记录一行日志
func deliver(ctx context.Context, logger *elog.Component, p provider.Provider, msg provider.Message) domain.Result {
	receipt, err := p.Send(ctx, msg)
	var res domain.Result
	if err != nil {
		res = provider.ErrorResult(msg.Channel, err)
	} else {
		res = provider.ToResult(msg.Channel, receipt)
	}

	fields := []elog.Field{
		elog.String("channel", msg.Channel.String()),
		elog.String("to", msg.To),
		elog.String("template", msg.Template.String()),
		elog.String("status", res.Status.String()),
	}
	if res.Success {
		logger.Info("发送通知成功", append(fields, elog.String("messageId", res.MessageID))...)
		return res
	}
	logger.Warn("发送通知失败", append(fields,
		elog.String("code", res.Error.Code.String()),
		elog.Any("retryable", res.Error.Retryable),
		elog.FieldErr(err))...)
	return res
}
