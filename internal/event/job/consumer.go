package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"

	"club-notification/internal/domain"
	"club-notification/internal/service/notification"
)

// Source 消息来源，mq.Consumer 和 KafkaSource 都满足
type Source interface {
	Consume(ctx context.Context) (*mq.Message, error)
}

// RetryConfig 可重试失败的退避参数
type RetryConfig struct {
	InitialInterval time.Duration `yaml:"initialInterval"`
	MaxInterval     time.Duration `yaml:"maxInterval"`
	MaxRetries      int32         `yaml:"maxRetries"`
	// Concurrency 同时在退避重试的任务数，达到上限时消费循环等待
	Concurrency int `yaml:"concurrency"`
}

// Consumer 消费后台任务并调用通知服务
// 可重试的失败在后台按指数退避重试，不阻塞后面的任务，用尽后放弃并记录日志
type Consumer struct {
	source  Source
	svc     notification.Service
	secret  string
	retry   RetryConfig
	retries *errgroup.Group
	logger  *elog.Component
}

const (
	defaultInitialInterval  = time.Second
	defaultMaxInterval      = 30 * time.Second
	defaultMaxRetries       = 5
	defaultRetryConcurrency = 16
)

// NewConsumer 退避参数缺省时使用默认值，MaxRetries 为 0 在 ekit 中表示无限重试
func NewConsumer(source Source, svc notification.Service, secret string, cfg RetryConfig) *Consumer {
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaultInitialInterval
	}
	if cfg.MaxInterval < cfg.InitialInterval {
		cfg.MaxInterval = max(defaultMaxInterval, cfg.InitialInterval)
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultRetryConcurrency
	}
	retries := &errgroup.Group{}
	retries.SetLimit(cfg.Concurrency)
	return &Consumer{
		source:  source,
		svc:     svc,
		secret:  secret,
		retry:   cfg,
		retries: retries,
		logger:  elog.DefaultLogger,
	}
}

// Start 在后台循环消费，ctx 取消后退出
func (c *Consumer) Start(ctx context.Context) {
	go func() {
		for {
			er := c.Consume(ctx)
			if ctx.Err() != nil {
				return
			}
			if er != nil {
				c.logger.Error("消费通知任务失败", elog.FieldErr(er))
			}
		}
	}()
}

// Wait 等待后台重试全部结束
func (c *Consumer) Wait() {
	_ = c.retries.Wait()
}

// Consume 处理一条消息，返回最终的发送结果由日志记录
func (c *Consumer) Consume(ctx context.Context) error {
	msg, err := c.source.Consume(ctx)
	if err != nil {
		return err
	}
	_, err = c.handle(ctx, msg)
	return err
}

// handle 返回第一次发送的结果，可重试的失败交给后台继续重试
func (c *Consumer) handle(ctx context.Context, msg *mq.Message) (domain.Result, error) {
	if c.secret != "" && msg.Header[headerSecret] != c.secret {
		return domain.Result{}, errors.New("任务消息密钥不匹配，丢弃")
	}
	var evt Event
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		return domain.Result{}, fmt.Errorf("反序列化任务失败: %w", err)
	}

	payload := evt.Job.RestorePayload()
	res := c.svc.Send(ctx, payload)
	if !res.Retryable() {
		c.report(evt, res)
		return res, nil
	}
	c.retries.Go(func() error {
		c.report(evt, c.retrySend(ctx, evt, payload, res))
		return nil
	})
	return res, nil
}

func (c *Consumer) report(evt Event, res domain.Result) {
	fields := []elog.Field{
		elog.String("jobId", evt.ID),
		elog.String("channel", res.Channel.String()),
		elog.String("batchId", evt.Job.Context.BatchID),
	}
	if res.Success {
		c.logger.Info("通知任务执行成功", append(fields, elog.String("messageId", res.MessageID))...)
		return
	}
	c.logger.Error("通知任务执行失败", append(fields,
		elog.String("code", res.Error.Code.String()),
		elog.String("message", res.Error.Message))...)
}

func (c *Consumer) retrySend(ctx context.Context, evt Event, payload domain.Payload, last domain.Result) domain.Result {
	strategy, err := retry.NewExponentialBackoffRetryStrategy(c.retry.InitialInterval, c.retry.MaxInterval, c.retry.MaxRetries)
	if err != nil {
		c.logger.Error("创建重试策略失败", elog.String("jobId", evt.ID), elog.FieldErr(err))
		return last
	}
	for last.Retryable() {
		next, ok := strategy.Next()
		if !ok {
			c.logger.Warn("重试次数用尽", elog.String("jobId", evt.ID))
			return last
		}
		timer := time.NewTimer(next)
		select {
		case <-ctx.Done():
			timer.Stop()
			return last
		case <-timer.C:
		}
		last = c.svc.Send(ctx, payload)
	}
	return last
}
