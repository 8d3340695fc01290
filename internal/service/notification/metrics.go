package notification

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"club-notification/internal/domain"
)

const (
	metricsMaxAge        = 5 * time.Minute
	metricsP50Percentile = 0.5
	metricsP50Error      = 0.05
	metricsP90Percentile = 0.9
	metricsP90Error      = 0.01
	metricsP95Percentile = 0.95
	metricsP95Error      = 0.005
	metricsP99Percentile = 0.99
	metricsP99Error      = 0.001

	// 批量发送的耗时使用特殊标签
	metricsBatchTag = "batch"
)

var _ Service = (*MetricsService)(nil)

// MetricsService 为通知发送添加指标收集的装饰器
type MetricsService struct {
	svc                 Service
	sendDurationSummary *prometheus.SummaryVec
	sendCounter         *prometheus.CounterVec
	batchSendCounter    *prometheus.CounterVec
	sentStatus          *prometheus.CounterVec
}

func (m *MetricsService) Send(ctx context.Context, payload domain.Payload) domain.Result {
	return m.observe(payload.Channel, func() domain.Result {
		return m.svc.Send(ctx, payload)
	})
}

func (m *MetricsService) SendAuto(ctx context.Context, payload domain.Payload) domain.Result {
	return m.observe(domain.ChannelAuto, func() domain.Result {
		return m.svc.SendAuto(ctx, payload)
	})
}

func (m *MetricsService) observe(ch domain.Channel, fn func() domain.Result) domain.Result {
	startTime := time.Now()
	m.sendCounter.WithLabelValues(ch.String()).Inc()

	res := fn()

	// auto 渠道记录实际使用的渠道
	used := res.Channel
	if used == "" {
		used = ch
	}
	m.sentStatus.WithLabelValues(used.String(), res.Status.String()).Inc()
	m.sendDurationSummary.WithLabelValues(used.String(), res.Status.String()).
		Observe(time.Since(startTime).Seconds())
	return res
}

func (m *MetricsService) SendBatch(ctx context.Context, payload domain.Payload) domain.BatchResult {
	startTime := time.Now()
	ch := payload.Channel.String()
	m.batchSendCounter.WithLabelValues(ch).Inc()

	res := m.svc.SendBatch(ctx, payload)

	for i := range res.Results {
		m.sentStatus.WithLabelValues(res.Results[i].Channel.String(), res.Results[i].Status.String()).Inc()
	}
	m.sendDurationSummary.WithLabelValues(ch, metricsBatchTag).Observe(time.Since(startTime).Seconds())
	return res
}

// NewMetricsService 创建带指标收集的通知服务
func NewMetricsService(svc Service, registerer prometheus.Registerer) *MetricsService {
	sendDurationSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "notification_send_duration_seconds",
			Help: "通知发送耗时统计（秒）",
			Objectives: map[float64]float64{
				metricsP50Percentile: metricsP50Error,
				metricsP90Percentile: metricsP90Error,
				metricsP95Percentile: metricsP95Error,
				metricsP99Percentile: metricsP99Error,
			},
			MaxAge: metricsMaxAge,
		},
		[]string{"channel", "status"},
	)

	sendCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_send_total",
			Help: "通知发送总数",
		},
		[]string{"channel"},
	)

	batchSendCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_batch_send_total",
			Help: "批量通知发送总数",
		},
		[]string{"channel"},
	)

	sentStatus := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_sent_status_total",
			Help: "通知发送状态统计",
		},
		[]string{"channel", "status"},
	)

	registerer.MustRegister(sendDurationSummary, sendCounter, batchSendCounter, sentStatus)

	return &MetricsService{
		svc:                 svc,
		sendDurationSummary: sendDurationSummary,
		sendCounter:         sendCounter,
		batchSendCounter:    batchSendCounter,
		sentStatus:          sentStatus,
	}
}
