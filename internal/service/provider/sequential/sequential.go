package sequential

import (
	"context"
	"errors"
	"fmt"

	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"

	"club-notification/internal/errs"
	"club-notification/internal/service/provider"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 按顺序尝试多个供应商
// 可重试错误和当前供应商不支持的消息切换到下一个供应商，其余永久错误直接返回
type Provider struct {
	providers []provider.Provider
	logger    *elog.Component
}

func (p *Provider) Send(ctx context.Context, msg provider.Message) (provider.Receipt, error) {
	if len(p.providers) == 0 {
		return provider.Receipt{}, fmt.Errorf("%w", errs.ErrNoAvailableProvider)
	}
	var lastErr error
	var merr *multierror.Error
	for idx, pro := range p.providers {
		receipt, err := pro.Send(ctx, msg)
		if err == nil {
			return receipt, nil
		}
		lastErr = err
		merr = multierror.Append(merr, err)
		// 当前供应商不支持该消息时换下一个，否则只有可重试错误才换
		if !provider.Classify(err).Retryable && !errors.Is(err, errs.ErrNoAvailableProvider) {
			return provider.Receipt{}, err
		}
		p.logger.Warn("供应商发送失败，切换下一个供应商",
			elog.Int("index", idx),
			elog.String("channel", msg.Channel.String()),
			elog.FieldErr(err))
	}
	p.logger.Error("所有供应商均发送失败", elog.FieldErr(merr.ErrorOrNil()))
	// 返回最后一个错误，保留其分类
	return provider.Receipt{}, lastErr
}

// NewProvider 只有一个供应商时直接返回该供应商
func NewProvider(providers ...provider.Provider) provider.Provider {
	if len(providers) == 1 {
		return providers[0]
	}
	return &Provider{
		providers: providers,
		logger:    elog.DefaultLogger,
	}
}
