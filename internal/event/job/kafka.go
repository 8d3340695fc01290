package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/ecodeclub/mq-api"
	"github.com/google/uuid"

	"club-notification/internal/service/gate"
)

const poll = 1000

var _ gate.Trigger = (*KafkaTrigger)(nil)

// KafkaTrigger 基于 Kafka 的任务提交，等待投递回执后返回
type KafkaTrigger struct {
	producer *kafka.Producer
	topic    string
	secret   string
}

func NewKafkaTrigger(producer *kafka.Producer, topic, secret string) *KafkaTrigger {
	return &KafkaTrigger{
		producer: producer,
		topic:    topic,
		secret:   secret,
	}
}

func (t *KafkaTrigger) Trigger(ctx context.Context, job gate.Job) (gate.JobHandle, error) {
	evt := Event{
		ID:          uuid.NewString(),
		Job:         job,
		TriggeredAt: time.Now(),
	}
	val, err := json.Marshal(evt)
	if err != nil {
		return gate.JobHandle{}, fmt.Errorf("序列化任务失败: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	err = t.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &t.topic, Partition: kafka.PartitionAny},
		Key:            []byte(evt.ID),
		Value:          val,
		Headers:        []kafka.Header{{Key: headerSecret, Value: []byte(t.secret)}},
	}, deliveryChan)
	if err != nil {
		return gate.JobHandle{}, fmt.Errorf("发送任务消息失败: %w", err)
	}

	select {
	case e := <-deliveryChan:
		m, ok := e.(*kafka.Message)
		if !ok {
			return gate.JobHandle{}, fmt.Errorf("未知的投递回执: %v", e)
		}
		if m.TopicPartition.Error != nil {
			return gate.JobHandle{}, fmt.Errorf("任务消息投递失败: %w", m.TopicPartition.Error)
		}
		return gate.JobHandle{ID: evt.ID}, nil
	case <-ctx.Done():
		return gate.JobHandle{}, ctx.Err()
	}
}

// KafkaSource 把 Kafka 消费者适配为任务消费者的消息来源
type KafkaSource struct {
	consumer *kafka.Consumer
}

func NewKafkaSource(consumer *kafka.Consumer, topic string) (*KafkaSource, error) {
	if err := consumer.SubscribeTopics([]string{topic}, nil); err != nil {
		return nil, fmt.Errorf("订阅主题失败: %w", err)
	}
	return &KafkaSource{consumer: consumer}, nil
}

// Consume 阻塞直到拿到一条消息，拿到即提交
func (s *KafkaSource) Consume(ctx context.Context) (*mq.Message, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev := s.consumer.Poll(poll)
		if ev == nil {
			continue
		}
		switch e := ev.(type) {
		case *kafka.Message:
			msg := &mq.Message{
				Topic:     *e.TopicPartition.Topic,
				Partition: int64(e.TopicPartition.Partition),
				Offset:    int64(e.TopicPartition.Offset),
				Key:       e.Key,
				Value:     e.Value,
				Header:    make(mq.Header, len(e.Headers)),
			}
			for _, h := range e.Headers {
				msg.Header[h.Key] = string(h.Value)
			}
			if _, err := s.consumer.CommitMessage(e); err != nil {
				return nil, fmt.Errorf("提交消息失败: %w", err)
			}
			return msg, nil
		case kafka.Error:
			return nil, fmt.Errorf("kafka错误: %w", e)
		}
	}
}
