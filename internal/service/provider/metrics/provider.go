package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"club-notification/internal/service/provider"
)

const namespace = "club_notification"

// 供应商调用一般在百毫秒到数秒之间，SMTP 握手慢时会到十秒以上
var durationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

var _ provider.Provider = (*Provider)(nil)

// Provider 记录供应商调用耗时和结果
// 失败按归一化后的错误码分类，成功按投递状态分类
type Provider struct {
	provider provider.Provider
	duration *prometheus.HistogramVec
	results  *prometheus.CounterVec
}

func (p *Provider) Send(ctx context.Context, msg provider.Message) (provider.Receipt, error) {
	start := time.Now()
	receipt, err := p.provider.Send(ctx, msg)
	elapsed := time.Since(start).Seconds()

	ch := msg.Channel.String()
	outcome, retryable := provider.MapStatus(receipt.Status).String(), false
	if err != nil {
		se := provider.Classify(err)
		outcome, retryable = se.Code.String(), se.Retryable
	}
	p.duration.WithLabelValues(ch, strconv.FormatBool(err == nil)).Observe(elapsed)
	p.results.WithLabelValues(ch, outcome, strconv.FormatBool(retryable)).Inc()
	return receipt, err
}

// NewProvider name 作为常量标签，同一个 registerer 下每个 name 只能创建一次
func NewProvider(name string, p provider.Provider, registerer prometheus.Registerer) *Provider {
	constLabels := prometheus.Labels{"provider": name}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   "provider",
		Name:        "send_duration_seconds",
		Help:        "供应商调用耗时（秒）",
		Buckets:     durationBuckets,
		ConstLabels: constLabels,
	}, []string{"channel", "success"})
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   "provider",
		Name:        "send_results_total",
		Help:        "供应商调用结果，outcome 为投递状态或错误码",
		ConstLabels: constLabels,
	}, []string{"channel", "outcome", "retryable"})
	registerer.MustRegister(duration, results)

	return &Provider{
		provider: p,
		duration: duration,
		results:  results,
	}
}
