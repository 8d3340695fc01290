package ioc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/gotomicro/ego/core/elog"
	"github.com/redis/go-redis/v9"

	"club-notification/internal/domain"
	"club-notification/internal/event/job"
	"club-notification/internal/pkg/idempotent"
	"club-notification/internal/service/gate"
	"club-notification/internal/service/notification"
)

const (
	defaultGroupID    = "club-notification"
	defaultPartitions = 1

	defaultIdempotencyExpiry = 24 * time.Hour
)

// InitQueue 配置了 brokers 时走 Kafka，否则使用进程内队列
// 未配置任务系统时两者都为 nil
func InitQueue(cfg domain.QueueConfig) (gate.Trigger, job.Source) {
	if !cfg.Configured() {
		return nil, nil
	}
	topic := cfg.Topic
	if topic == "" {
		topic = job.Topic
	}
	groupID := cfg.GroupID
	if groupID == "" {
		groupID = defaultGroupID
	}
	if len(cfg.Brokers) > 0 {
		return initKafkaQueue(cfg, topic, groupID)
	}

	q := memory.NewMQ()
	if err := q.CreateTopic(context.Background(), topic, defaultPartitions); err != nil {
		panic(err)
	}
	consumer, err := q.Consumer(topic, groupID)
	if err != nil {
		panic(err)
	}
	producer, err := q.Producer(topic)
	if err != nil {
		panic(err)
	}
	elog.DefaultLogger.Info("使用进程内任务队列", elog.String("topic", topic))
	return job.NewMQTrigger(producer, cfg.SecretKey), consumer
}

func initKafkaQueue(cfg domain.QueueConfig, topic, groupID string) (gate.Trigger, job.Source) {
	servers := strings.Join(cfg.Brokers, ",")
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": servers,
	})
	if err != nil {
		panic(fmt.Sprintf("创建生产者失败: %v", err))
	}
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  servers,
		"group.id":           groupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": true,
	})
	if err != nil {
		panic(fmt.Sprintf("创建消费者失败: %v", err))
	}
	source, err := job.NewKafkaSource(consumer, topic)
	if err != nil {
		panic(err)
	}
	return job.NewKafkaTrigger(producer, topic, cfg.SecretKey), source
}

// InitGate 幂等去重在最外层，重复请求不会进入队列
func InitGate(cfg NotificationConfig, trigger gate.Trigger, svc notification.Service, rdb redis.Cmdable) gate.Dispatcher {
	dispatcher := gate.NewDispatcher(cfg.Queue, trigger, svc)
	if !cfg.Idempotency.Enabled {
		return dispatcher
	}
	expiry := cfg.Idempotency.Expiry
	if expiry <= 0 {
		expiry = defaultIdempotencyExpiry
	}
	var guard idempotent.Guard
	if rdb != nil {
		guard = idempotent.NewRedisGuard(rdb, expiry)
	} else {
		guard = idempotent.NewLocalGuard(expiry)
	}
	return gate.NewIdempotentDispatcher(dispatcher, guard)
}
