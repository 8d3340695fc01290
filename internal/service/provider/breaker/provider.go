package breaker

import (
	"context"
	"fmt"

	"github.com/go-kratos/aegis/circuitbreaker"
	"github.com/go-kratos/aegis/circuitbreaker/sre"

	"club-notification/internal/errs"
	"club-notification/internal/service/provider"
)

// Provider 熔断装饰器
// 只有可重试错误才算作供应商故障，收件人被拒之类的永久错误不影响熔断
type Provider struct {
	provider provider.Provider
	breaker  circuitbreaker.CircuitBreaker
}

func (p *Provider) Send(ctx context.Context, msg provider.Message) (provider.Receipt, error) {
	if err := p.breaker.Allow(); err != nil {
		p.breaker.MarkFailed()
		return provider.Receipt{}, fmt.Errorf("%w: %w", errs.ErrCircuitBreaker, err)
	}
	receipt, err := p.provider.Send(ctx, msg)
	if err != nil && provider.Classify(err).Retryable {
		p.breaker.MarkFailed()
		return receipt, err
	}
	p.breaker.MarkSuccess()
	return receipt, err
}

func NewProvider(p provider.Provider, breaker circuitbreaker.CircuitBreaker) *Provider {
	return &Provider{
		provider: p,
		breaker:  breaker,
	}
}

// NewSREProvider 使用 Google SRE 自适应熔断
func NewSREProvider(p provider.Provider) *Provider {
	return NewProvider(p, sre.NewBreaker())
}
