package metrics

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/service/provider"
)

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	inner := provider.NewMockProvider(
		nil,
		&provider.Error{HTTPStatus: http.StatusTooManyRequests},
		&provider.Error{Code: "unsubscribed", HTTPStatus: http.StatusBadRequest},
		errs.ErrCircuitBreaker,
	)
	p := NewProvider("sms-rest", inner, reg)

	msg := provider.Message{Channel: domain.ChannelSMS}
	_, err := p.Send(context.Background(), msg)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = p.Send(context.Background(), msg)
		require.Error(t, err)
	}

	testCases := []struct {
		outcome   string
		retryable string
	}{
		{outcome: "sent", retryable: "false"},
		{outcome: "rate_limited", retryable: "true"},
		{outcome: "unsubscribed", retryable: "false"},
		{outcome: "circuit_open", retryable: "true"},
	}
	for _, tc := range testCases {
		assert.Equal(t, float64(1), testutil.ToFloat64(p.results.WithLabelValues("sms", tc.outcome, tc.retryable)), tc.outcome)
	}
	assert.Equal(t, 2, testutil.CollectAndCount(p.duration))

	// 不同名字可以注册在同一个 registerer 下
	assert.NotPanics(t, func() {
		NewProvider("aliyun", inner, reg)
	})
	// 同名重复注册会 panic
	assert.Panics(t, func() {
		NewProvider("sms-rest", inner, reg)
	})
}

func TestProvider_SendPassesErrorThrough(t *testing.T) {
	t.Parallel()

	sendErr := errors.New("dial tcp: connection refused")
	p := NewProvider("smtp", provider.NewMockProvider(sendErr), prometheus.NewRegistry())
	_, err := p.Send(context.Background(), provider.Message{Channel: domain.ChannelEmail})
	assert.ErrorIs(t, err, sendErr)
	assert.Equal(t, float64(1), testutil.ToFloat64(p.results.WithLabelValues("email", "provider_error", "true")))
}
