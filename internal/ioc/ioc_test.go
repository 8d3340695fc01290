package ioc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"club-notification/internal/domain"
	"club-notification/internal/event/job"
	"club-notification/internal/service/gate"
	notificationmocks "club-notification/internal/service/notification/mocks"
)

func TestInitQueue(t *testing.T) {
	t.Parallel()

	trigger, source := InitQueue(domain.QueueConfig{})
	assert.Nil(t, trigger)
	assert.Nil(t, source)

	// 没有 brokers 时使用进程内队列
	trigger, source = InitQueue(domain.QueueConfig{SecretKey: "s"})
	require.NotNil(t, trigger)
	require.NotNil(t, source)
	assert.IsType(t, &job.MQTrigger{}, trigger)
}

func TestInitGate(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := notificationmocks.NewMockService(ctrl)

	testCases := []struct {
		name    string
		cfg     NotificationConfig
		trigger bool
		want    gate.Dispatcher
	}{
		{
			name: "直接发送",
			want: &gate.DirectDispatcher{},
		},
		{
			name:    "队列优先",
			cfg:     NotificationConfig{Queue: domain.QueueConfig{SecretKey: "s"}},
			trigger: true,
			want:    &gate.FallbackDispatcher{},
		},
		{
			name: "开启幂等",
			cfg:  NotificationConfig{Idempotency: IdempotencyConfig{Enabled: true}},
			want: &gate.IdempotentDispatcher{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var trigger gate.Trigger
			if tc.trigger {
				trigger, _ = InitQueue(tc.cfg.Queue)
			}
			got := InitGate(tc.cfg, trigger, svc, nil)
			assert.IsType(t, tc.want, got)
		})
	}
}

func TestInitProviders_Unconfigured(t *testing.T) {
	t.Parallel()

	// 未配置时全部为 nil，手机渠道进入开发日志模式
	got := InitProviders(NotificationConfig{})
	assert.Nil(t, got.Email)
	assert.Nil(t, got.SMS)
	assert.Nil(t, got.WhatsApp)
}
