package confirmation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/repository"
	"club-notification/internal/service/gate"
)

const (
	defaultConcurrency = 16
	defaultPageSize    = 20
	maxPageSize        = 100

	sessionDateLayout = "Mon, Jan 2 2006"
	sessionTimeLayout = "15:04"
)

var _ Service = (*service)(nil)

type service struct {
	sessions repository.SessionRepository
	history  repository.ConfirmationRepository
	gate     gate.Dispatcher
	signer   LinkSigner
	// channels 全渠道模式下使用的已配置渠道
	channels    []domain.Channel
	concurrency int
	now         func() time.Time
	logger      *elog.Component
}

// NewService channels 为全渠道模式下使用的渠道，通常是供应商已配置的渠道
func NewService(
	sessions repository.SessionRepository,
	history repository.ConfirmationRepository,
	dispatcher gate.Dispatcher,
	signer LinkSigner,
	channels []domain.Channel,
	concurrency int,
) Service {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &service{
		sessions:    sessions,
		history:     history,
		gate:        dispatcher,
		signer:      signer,
		channels:    channels,
		concurrency: concurrency,
		now:         time.Now,
		logger:      elog.DefaultLogger,
	}
}

// attempt 一次 (训练课, 运动员, 渠道) 发送
type attempt struct {
	session domain.Session
	athlete domain.Athlete
	channel domain.Channel
}

func (s *service) BulkSend(ctx context.Context, req domain.BulkSendRequest) (domain.BulkSendResult, error) {
	if err := req.Validate(); err != nil {
		return domain.BulkSendResult{}, err
	}
	now := s.now()
	sessions, err := s.sessions.FindPending(ctx, req.OrganizationID, now, req.Window.End(now), req.SessionIDs)
	if err != nil {
		return domain.BulkSendResult{}, fmt.Errorf("查询待开始训练课失败: %w", err)
	}

	res := domain.BulkSendResult{
		BatchID:      uuid.NewString(),
		SessionCount: len(sessions),
	}
	channels := s.channels
	if !req.AllChannels() {
		channels = []domain.Channel{req.Channel}
	}

	if len(channels) == 0 {
		s.logger.Warn("没有已配置的渠道，全部接收者计为跳过",
			elog.Int64("organizationId", req.OrganizationID))
	}

	var attempts []attempt
	for _, sess := range sessions {
		for _, a := range sess.Recipients() {
			if len(channels) == 0 {
				res.Skipped++
				continue
			}
			for _, ch := range channels {
				// 缺少联系方式的在发送前跳过，不产生记录
				if !a.Recipient().Reachable(ch) {
					res.Skipped++
					continue
				}
				attempts = append(attempts, attempt{session: sess, athlete: a, channel: ch})
			}
		}
	}

	records := make([]domain.ConfirmationHistory, len(attempts))
	var eg errgroup.Group
	eg.SetLimit(s.concurrency)
	for i := range attempts {
		eg.Go(func() error {
			defer func() {
				if e := recover(); e != nil {
					s.logger.Error("发送确认消息时发生 panic", elog.Int("index", i), elog.Any("panic", e))
					records[i] = s.newRecord(attempts[i], res.BatchID, req.InitiatedBy, now)
					records[i].Status = domain.ConfirmationStatusFailed
					records[i].ErrorMessage = fmt.Sprintf("panic: %v", e)
				}
			}()
			records[i] = s.send(ctx, attempts[i], res.BatchID, req.InitiatedBy)
			return nil
		})
	}
	_ = eg.Wait()

	var softErr error
	for i := range records {
		if records[i].Status == domain.ConfirmationStatusSent {
			res.Sent++
			continue
		}
		res.Failed++
		softErr = multierror.Append(softErr, fmt.Errorf("训练课 %d 运动员 %d 渠道 %s: %s",
			records[i].SessionID, records[i].AthleteID, records[i].Channel, records[i].ErrorMessage))
	}
	if _, err = s.history.BatchCreate(ctx, records); err != nil {
		// 消息已经发出，记录写入失败只告警
		s.logger.Warn("写入确认记录失败",
			elog.String("batchID", res.BatchID),
			elog.Int("records", len(records)),
			elog.FieldErr(err))
	}
	if softErr != nil {
		s.logger.Warn("批量确认存在发送失败",
			elog.String("batchID", res.BatchID),
			elog.Int("failed", res.Failed),
			elog.FieldErr(softErr))
	}
	s.logger.Info("批量确认发送完成",
		elog.Any("orgID", req.OrganizationID),
		elog.String("window", string(req.Window)),
		elog.String("batchID", res.BatchID),
		elog.Int("sessions", res.SessionCount),
		elog.Int("sent", res.Sent),
		elog.Int("failed", res.Failed),
		elog.Int("skipped", res.Skipped))
	return res, nil
}

// send 生成确认链接并交给执行闸门，返回待写入的记录
func (s *service) send(ctx context.Context, at attempt, batchID, initiatedBy string) domain.ConfirmationHistory {
	record := s.newRecord(at, batchID, initiatedBy, s.now())
	link, err := s.signer.ConfirmationURL(at.session.ID, at.athlete.ID)
	if err != nil {
		record.Status = domain.ConfirmationStatusFailed
		record.ErrorMessage = fmt.Sprintf("生成确认链接失败: %s", err)
		return record
	}
	payload := domain.Payload{
		Channel:  at.channel,
		To:       []domain.Recipient{at.athlete.Recipient()},
		Template: domain.TemplateSessionConfirmation,
		Data: domain.SessionConfirmationData{
			AthleteName:      at.athlete.Name,
			SessionName:      at.session.Name,
			SessionDate:      at.session.StartsAt.Format(sessionDateLayout),
			SessionTime:      at.session.StartsAt.Format(sessionTimeLayout),
			Location:         at.session.Location,
			ConfirmationURL:  link,
			OrganizationName: at.session.OrganizationName,
		},
		IdempotencyKey: fmt.Sprintf("%s:%d:%d:%s", batchID, at.session.ID, at.athlete.ID, at.channel),
		Metadata: map[string]string{
			"batchId":   batchID,
			"sessionId": fmt.Sprint(at.session.ID),
			"athleteId": fmt.Sprint(at.athlete.ID),
		},
	}
	out := s.gate.Dispatch(ctx, payload, gate.JobContext{
		OrganizationID: at.session.OrganizationID,
		SessionID:      at.session.ID,
		AthleteID:      at.athlete.ID,
		BatchID:        batchID,
		InitiatedBy:    initiatedBy,
	})
	record.TriggerJobID = out.ID
	if !out.Success {
		record.Status = domain.ConfirmationStatusFailed
		if out.Error != nil {
			record.ErrorMessage = out.Error.Message
		}
	}
	return record
}

func (s *service) newRecord(at attempt, batchID, initiatedBy string, sentAt time.Time) domain.ConfirmationHistory {
	return domain.ConfirmationHistory{
		OrganizationID: at.session.OrganizationID,
		SessionID:      at.session.ID,
		AthleteID:      at.athlete.ID,
		Channel:        at.channel,
		Status:         domain.ConfirmationStatusSent,
		BatchID:        batchID,
		InitiatedBy:    initiatedBy,
		SentAt:         sentAt,
	}
}

func (s *service) Resend(ctx context.Context, req domain.ResendRequest) (domain.ResendResult, error) {
	original, err := s.history.GetByID(ctx, req.HistoryID)
	if err != nil {
		return domain.ResendResult{}, err
	}
	ch := req.Channel
	if ch == "" {
		ch = original.Channel
	}
	if !ch.IsValid() || ch == domain.ChannelAuto {
		return domain.ResendResult{}, fmt.Errorf("%w: 不支持的渠道 %q", errs.ErrBadRequest, ch)
	}

	sess, err := s.sessions.GetByID(ctx, original.SessionID)
	if err != nil {
		return domain.ResendResult{}, badRequestIfGone(err, errs.ErrSessionNotFound)
	}
	if sess.StartsAt.Before(s.now()) {
		return domain.ResendResult{}, fmt.Errorf("%w: 训练课 %d 已经开始", errs.ErrBadRequest, sess.ID)
	}
	athlete, err := s.sessions.GetAthlete(ctx, original.AthleteID)
	if err != nil {
		return domain.ResendResult{}, badRequestIfGone(err, errs.ErrAthleteNotFound)
	}
	if !athlete.Recipient().Reachable(ch) {
		return domain.ResendResult{}, fmt.Errorf("%w: 运动员 %d 缺少 %s 渠道的联系方式", errs.ErrBadRequest, athlete.ID, ch)
	}

	initiatedBy := req.InitiatedBy
	if initiatedBy == "" {
		initiatedBy = original.InitiatedBy
	}
	record := s.send(ctx, attempt{session: sess, athlete: athlete, channel: ch}, uuid.NewString(), initiatedBy)
	created, err := s.history.Create(ctx, record)
	if err != nil {
		return domain.ResendResult{}, fmt.Errorf("写入确认记录失败: %w", err)
	}
	return domain.ResendResult{
		History: created,
		Success: created.Status == domain.ConfirmationStatusSent,
		Error:   created.ErrorMessage,
	}, nil
}

// badRequestIfGone 训练课或运动员已不存在属于调用方错误
func badRequestIfGone(err, notFound error) error {
	if errors.Is(err, notFound) {
		return fmt.Errorf("%w: %w", errs.ErrBadRequest, err)
	}
	return err
}

func (s *service) List(ctx context.Context, filter domain.HistoryFilter, offset, limit int) ([]domain.ConfirmationHistory, int64, error) {
	if filter.OrganizationID <= 0 {
		return nil, 0, fmt.Errorf("%w: OrganizationID = %d", errs.ErrInvalidParameter, filter.OrganizationID)
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, fmt.Errorf("%w: Status = %q", errs.ErrInvalidParameter, filter.Status)
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	limit = min(limit, maxPageSize)
	return s.history.Find(ctx, filter, offset, limit)
}

func (s *service) Stats(ctx context.Context, orgID, sessionID int64) (domain.ConfirmationStats, error) {
	if orgID <= 0 {
		return domain.ConfirmationStats{}, fmt.Errorf("%w: OrganizationID = %d", errs.ErrInvalidParameter, orgID)
	}
	return s.history.Stats(ctx, orgID, sessionID)
}
