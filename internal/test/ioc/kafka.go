package ioc

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"club-notification/internal/event/job"
)

const (
	maxInterval = 10 * time.Second
	maxRetries  = 10
	number1     = 1

	kafkaAddr = "localhost:9092"
)

func InitTopic() {
	initTopic(kafka.TopicSpecification{
		Topic:             job.Topic,
		NumPartitions:     number1,
		ReplicationFactor: number1,
	})
}

func InitProducer(id string) *kafka.Producer {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": kafkaAddr,
		"client.id":         id,
	})
	if err != nil {
		panic(fmt.Sprintf("创建生产者失败: %v", err))
	}
	return producer
}

func InitConsumer(groupID string) *kafka.Consumer {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": kafkaAddr,
		"group.id":          groupID,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		panic(fmt.Sprintf("创建消费者失败: %v", err))
	}
	return consumer
}

func initTopic(topics ...kafka.TopicSpecification) {
	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": kafkaAddr,
	})
	if err != nil {
		panic(fmt.Sprintf("创建kafka连接失败: %v", err))
	}
	defer adminClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), maxInterval)
	defer cancel()
	results, err := adminClient.CreateTopics(ctx, topics)
	if err != nil {
		panic(fmt.Sprintf("创建topic失败: %v", err))
	}
	for _, result := range results {
		if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrTopicAlreadyExists {
			panic(fmt.Sprintf("创建topic失败 %s: %v", result.Topic, result.Error))
		}
	}
}
