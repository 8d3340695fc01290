package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"club-notification/internal/service/provider"
)

const instrumentation = "club-notification/provider"

var _ provider.Provider = (*Provider)(nil)

// Provider 每次供应商调用一个 span，批量确认的元数据带到 span 上便于按批次排查
type Provider struct {
	provider provider.Provider
	tracer   trace.Tracer
	name     string
}

// NewProvider name 是渠道名或供应商名，如 sms、smtp
func NewProvider(p provider.Provider, name string) *Provider {
	return &Provider{
		provider: p,
		name:     name,
		tracer:   otel.Tracer(instrumentation),
	}
}

func (p *Provider) Send(ctx context.Context, msg provider.Message) (provider.Receipt, error) {
	ctx, span := p.tracer.Start(ctx, p.name+".Send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(messageAttributes(p.name, msg)...))
	defer span.End()

	receipt, err := p.provider.Send(ctx, msg)
	if err != nil {
		se := provider.Classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, se.Code.String())
		span.SetAttributes(
			attribute.String("notification.error_code", se.Code.String()),
			attribute.Bool("notification.retryable", se.Retryable),
		)
		return receipt, err
	}
	span.SetAttributes(
		attribute.String("notification.message_id", receipt.ID),
		attribute.String("notification.status", provider.MapStatus(receipt.Status).String()),
	)
	return receipt, nil
}

// metadataKeys 只记录这些元数据，接收者地址不上报
var metadataKeys = []string{"batchId", "sessionId", "athleteId"}

func messageAttributes(name string, msg provider.Message) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("notification.provider", name),
		attribute.String("notification.channel", msg.Channel.String()),
	}
	if msg.Template != "" {
		attrs = append(attrs, attribute.String("notification.template", msg.Template.String()))
	}
	for _, k := range metadataKeys {
		if v, ok := msg.Metadata[k]; ok {
			attrs = append(attrs, attribute.String("notification."+k, v))
		}
	}
	return attrs
}
