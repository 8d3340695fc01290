package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/service/channel"
	"club-notification/internal/service/template"
)

const defaultConcurrency = 16

var _ Service = (*service)(nil)

type service struct {
	channels    *channel.Dispatcher
	templates   *template.Registry
	concurrency int
	logger      *elog.Component
}

// NewService concurrency 为批量发送的最大并发数，小于等于 0 时使用默认值
func NewService(channels *channel.Dispatcher, templates *template.Registry, concurrency int) Service {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &service{
		channels:    channels,
		templates:   templates,
		concurrency: concurrency,
		logger:      elog.DefaultLogger,
	}
}

func (s *service) Send(ctx context.Context, payload domain.Payload) domain.Result {
	if payload.Channel == domain.ChannelAuto {
		return s.SendAuto(ctx, payload)
	}
	res, err := s.send(ctx, payload)
	if err != nil {
		s.logger.Error("渠道适配器出错",
			elog.String("channel", payload.Channel.String()),
			elog.String("template", payload.Template.String()),
			elog.FieldErr(err))
		return adapterFailure(payload.Channel, err)
	}
	return res
}

// send 校验并调用渠道适配器，返回的 error 只表示适配器出错
func (s *service) send(ctx context.Context, payload domain.Payload) (domain.Result, error) {
	ch := payload.Channel
	if !ch.IsValid() || ch == domain.ChannelAuto {
		return domain.Result{}, fmt.Errorf("%w: %s", errs.ErrNoAvailableChannel, ch)
	}
	// 列表形式的 To 只取第一个，批量发送请使用 SendBatch
	recipient, ok := payload.First()
	if !ok {
		return domain.FailedWith(ch, domain.ErrorCodeNoRecipient, "没有接收者", false), nil
	}
	to := recipient.Address(ch)
	if to == "" {
		return domain.FailedWith(ch, domain.ErrorCodeNoRecipient,
			fmt.Sprintf("接收者缺少 %s 渠道的联系方式", ch), false), nil
	}
	if ch.IsPhone() && !domain.IsE164(to) {
		return domain.FailedWith(ch, domain.ErrorCodeInvalidPhone,
			fmt.Sprintf("手机号 %s 不是 E.164 格式", to), false), nil
	}
	if payload.Body == "" && !s.templates.Has(ch.Family(), payload.Template) {
		return domain.FailedWith(ch, domain.ErrorCodeInvalidTemplate,
			fmt.Sprintf("模版 %s 不支持 %s 渠道", payload.Template, ch), false), nil
	}

	return s.channels.Send(ctx, channel.SendRequest{
		Channel:        ch,
		To:             to,
		Template:       payload.Template,
		Variables:      payload.Values(),
		Subject:        payload.Subject,
		Body:           payload.Body,
		IdempotencyKey: payload.IdempotencyKey,
		Metadata:       payload.Metadata,
	})
}

// adapterFailure 模版错误归为 invalid_template，其余为 send_failed
func adapterFailure(ch domain.Channel, err error) domain.Result {
	if errors.Is(err, errs.ErrUnknownTemplate) || errors.Is(err, errs.ErrMissingVariable) {
		return domain.FailedWith(ch, domain.ErrorCodeInvalidTemplate, err.Error(), false)
	}
	return domain.FailedWith(ch, domain.ErrorCodeSendFailed, err.Error(), false)
}

func (s *service) SendAuto(ctx context.Context, payload domain.Payload) domain.Result {
	recipient, ok := payload.First()
	if !ok {
		return domain.FailedWith(domain.ChannelAuto, domain.ErrorCodeNoRecipient, "没有接收者", false)
	}

	for _, ch := range payload.PriorityOrDefault() {
		if !s.available(recipient, ch) {
			continue
		}
		res, err := s.send(ctx, payload.WithChannel(ch))
		if err != nil {
			s.logger.Warn("渠道适配器出错，尝试下一个渠道",
				elog.String("channel", ch.String()),
				elog.FieldErr(err))
			continue
		}
		if res.Success {
			return res
		}
		// 临时错误换渠道也大概率失败，交给调用方重试
		if res.Retryable() {
			return res
		}
		s.logger.Warn("渠道永久失败，尝试下一个渠道",
			elog.String("channel", ch.String()),
			elog.String("code", res.Error.Code.String()),
			elog.String("message", res.Error.Message))
	}
	return domain.FailedWith(domain.ChannelAuto, domain.ErrorCodeAllChannelsFailed, "所有可用渠道均发送失败", false)
}

// available 渠道已配置且接收者具备合法的联系方式
func (s *service) available(r domain.Recipient, ch domain.Channel) bool {
	if !s.channels.ChannelAvailable(ch) {
		return false
	}
	switch {
	case ch.IsPhone():
		return r.Phone != "" && domain.IsE164(r.Phone)
	case ch.IsEmail():
		return r.Email != ""
	}
	return false
}

func (s *service) SendBatch(ctx context.Context, payload domain.Payload) domain.BatchResult {
	results := make([]domain.Result, len(payload.To))

	var eg errgroup.Group
	eg.SetLimit(s.concurrency)
	for i, r := range payload.To {
		eg.Go(func() error {
			defer func() {
				if e := recover(); e != nil {
					s.logger.Error("发送通知时发生 panic",
						elog.Int("index", i),
						elog.Any("panic", e))
					results[i] = domain.FailedWith(payload.Channel, domain.ErrorCodeSendFailed,
						fmt.Sprintf("panic: %v", e), false)
				}
			}()
			results[i] = s.Send(ctx, payload.WithRecipient(r))
			// 单个接收者失败不影响其他接收者
			return nil
		})
	}
	_ = eg.Wait()
	return domain.NewBatchResult(results)
}
