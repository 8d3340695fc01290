package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/google/uuid"

	"club-notification/internal/service/gate"
)

var _ gate.Trigger = (*MQTrigger)(nil)

// MQTrigger 基于 mq-api 的任务提交
type MQTrigger struct {
	producer mq.Producer
	secret   string
}

func NewMQTrigger(producer mq.Producer, secret string) *MQTrigger {
	return &MQTrigger{
		producer: producer,
		secret:   secret,
	}
}

func (t *MQTrigger) Trigger(ctx context.Context, job gate.Job) (gate.JobHandle, error) {
	evt := Event{
		ID:          uuid.NewString(),
		Job:         job,
		TriggeredAt: time.Now(),
	}
	val, err := json.Marshal(evt)
	if err != nil {
		return gate.JobHandle{}, fmt.Errorf("序列化任务失败: %w", err)
	}
	_, err = t.producer.Produce(ctx, &mq.Message{
		Key:    []byte(evt.ID),
		Value:  val,
		Header: mq.Header{headerSecret: t.secret},
	})
	if err != nil {
		return gate.JobHandle{}, fmt.Errorf("发送任务消息失败: %w", err)
	}
	return gate.JobHandle{ID: evt.ID}, nil
}
