package confirmation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/pkg/signlink"
	repomocks "club-notification/internal/repository/mocks"
	"club-notification/internal/service/channel"
	"club-notification/internal/service/gate"
	gatemocks "club-notification/internal/service/gate/mocks"
	"club-notification/internal/service/notification"
	"club-notification/internal/service/provider"
	"club-notification/internal/service/template"
)

// 2026-10-14 是周三
var now = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func athlete(id int64, name, email, phone string) domain.Athlete {
	return domain.Athlete{ID: id, Name: name, Email: email, Phone: phone}
}

// todaySessions 一节课使用三人分组，另一节课直接分配两名运动员，其中一人没有邮箱
func todaySessions() []domain.Session {
	return []domain.Session{
		{
			ID:               11,
			OrganizationID:   1,
			OrganizationName: "Lions",
			Name:             "U15 Training",
			StartsAt:         now.Add(2 * time.Hour),
			Status:           domain.SessionStatusPending,
			GroupID:          9,
			GroupMembers: []domain.Athlete{
				athlete(1, "Ann", "ann@example.com", ""),
				athlete(2, "Bob", "bob@example.com", "+15550000002"),
				athlete(3, "Cid", "cid@example.com", ""),
			},
			// 有分组成员时不会使用
			Athletes: []domain.Athlete{athlete(99, "Zed", "zed@example.com", "")},
		},
		{
			ID:             12,
			OrganizationID: 1,
			Name:           "U17 Training",
			StartsAt:       now.Add(5 * time.Hour),
			Status:         domain.SessionStatusPending,
			Athletes: []domain.Athlete{
				athlete(4, "Dan", "dan@example.com", "+15550000004"),
				athlete(5, "Eve", "", "+15550000005"),
			},
		},
	}
}

type BulkSendTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	sessions *repomocks.MockSessionRepository
	history  *repomocks.MockConfirmationRepository
	email    *provider.MockProvider
	sms      *provider.MockProvider
	signer   *signlink.Signer
}

func TestBulkSend(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BulkSendTestSuite))
}

func (s *BulkSendTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sessions = repomocks.NewMockSessionRepository(s.ctrl)
	s.history = repomocks.NewMockConfirmationRepository(s.ctrl)
	s.email = provider.NewMockProvider()
	s.sms = provider.NewMockProvider()
	s.signer = signlink.NewSigner("secret", "https://club.example", time.Hour)
}

// newService 直接发送，邮件和短信供应商都是内存实现
func (s *BulkSendTestSuite) newService(channels ...domain.Channel) *service {
	registry := template.NewDefaultRegistry()
	dispatcher := channel.NewDispatcher(map[domain.Channel]channel.Channel{
		domain.ChannelEmail: channel.NewEmailChannel(s.email, registry),
		domain.ChannelSMS:   channel.NewPhoneChannel(domain.ChannelSMS, s.sms, registry),
	})
	direct := gate.NewDirectDispatcher(notification.NewService(dispatcher, registry, 4))
	svc := NewService(s.sessions, s.history, direct, s.signer, channels, 4).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func (s *BulkSendTestSuite) TestConfirmToday() {
	t := s.T()
	svc := s.newService(domain.ChannelEmail, domain.ChannelSMS)

	endOfDay := time.Date(2026, 10, 14, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	s.sessions.EXPECT().FindPending(gomock.Any(), int64(1), now, endOfDay, []int64(nil)).
		Return(todaySessions(), nil)

	var saved []domain.ConfirmationHistory
	s.history.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, records []domain.ConfirmationHistory) ([]domain.ConfirmationHistory, error) {
			saved = records
			return records, nil
		})

	res, err := svc.BulkSend(context.Background(), domain.BulkSendRequest{
		OrganizationID: 1,
		Window:         domain.WindowToday,
		Channel:        domain.ChannelEmail,
		InitiatedBy:    "coach@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Sent)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 2, res.SessionCount)
	assert.NotEmpty(t, res.BatchID)
	assert.Equal(t, 4, s.email.Count())
	assert.Zero(t, s.sms.Count())

	// 跳过的接收者不产生记录
	require.Len(t, saved, 4)
	athletes := make([]int64, 0, len(saved))
	for _, r := range saved {
		assert.Equal(t, res.BatchID, r.BatchID)
		assert.Equal(t, domain.ConfirmationStatusSent, r.Status)
		assert.Equal(t, domain.ChannelEmail, r.Channel)
		assert.Equal(t, "coach@example.com", r.InitiatedBy)
		assert.True(t, strings.HasPrefix(r.TriggerJobID, "mock-"))
		assert.Equal(t, now, r.SentAt)
		athletes = append(athletes, r.AthleteID)
	}
	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, athletes)

	// 每条消息带着各自的确认链接
	for _, msg := range s.email.Messages() {
		assert.Contains(t, msg.Subject, "Confirm your attendance")
		assert.Contains(t, msg.Body, "https://club.example/confirm?token=")
	}
}

func (s *BulkSendTestSuite) TestAllChannels() {
	t := s.T()
	svc := s.newService(domain.ChannelSMS, domain.ChannelEmail)

	s.sessions.EXPECT().FindPending(gomock.Any(), int64(1), now, gomock.Any(), []int64{12}).
		Return(todaySessions()[1:], nil)
	var saved []domain.ConfirmationHistory
	s.history.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, records []domain.ConfirmationHistory) ([]domain.ConfirmationHistory, error) {
			saved = records
			return records, nil
		})

	res, err := svc.BulkSend(context.Background(), domain.BulkSendRequest{
		OrganizationID: 1,
		Window:         domain.WindowWeek,
		SessionIDs:     []int64{12},
	})
	require.NoError(t, err)
	// Dan 两个渠道都发，Eve 只发短信
	assert.Equal(t, 3, res.Sent)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.SessionCount)
	assert.Equal(t, 2, s.sms.Count())
	assert.Equal(t, 1, s.email.Count())
	assert.Len(t, saved, 3)
	assert.Equal(t, res.Sent+res.Failed+res.Skipped, 4)
}

func (s *BulkSendTestSuite) TestAllChannelsNoneConfigured() {
	t := s.T()
	svc := s.newService()

	s.sessions.EXPECT().FindPending(gomock.Any(), int64(1), now, gomock.Any(), []int64(nil)).
		Return(todaySessions(), nil)
	s.history.EXPECT().BatchCreate(gomock.Any(), gomock.Len(0)).Return(nil, nil)

	res, err := svc.BulkSend(context.Background(), domain.BulkSendRequest{
		OrganizationID: 1,
		Window:         domain.WindowToday,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.SessionCount)
	assert.Zero(t, res.Sent)
	assert.Zero(t, res.Failed)
	// 没有可用渠道时每个接收者都计为跳过
	assert.Equal(t, 5, res.Skipped)
	assert.Zero(t, s.email.Count()+s.sms.Count())
}

func (s *BulkSendTestSuite) TestWeekWindow() {
	svc := s.newService(domain.ChannelEmail)
	sunday := time.Date(2026, 10, 18, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	s.sessions.EXPECT().FindPending(gomock.Any(), int64(1), now, sunday, []int64(nil)).
		Return([]domain.Session{}, nil)
	s.history.EXPECT().BatchCreate(gomock.Any(), gomock.Len(0)).Return(nil, nil)

	res, err := svc.BulkSend(context.Background(), domain.BulkSendRequest{
		OrganizationID: 1,
		Window:         domain.WindowWeek,
		Channel:        domain.ChannelEmail,
	})
	s.NoError(err)
	s.Zero(res.SessionCount)
	s.Zero(res.Sent + res.Failed + res.Skipped)
}

func (s *BulkSendTestSuite) TestHistoryWriteFailure() {
	svc := s.newService(domain.ChannelEmail)
	s.sessions.EXPECT().FindPending(gomock.Any(), int64(1), now, gomock.Any(), gomock.Any()).
		Return(todaySessions()[:1], nil)
	s.history.EXPECT().BatchCreate(gomock.Any(), gomock.Len(3)).Return(nil, errors.New("db down"))

	// 消息已经发出，写记录失败不影响返回
	res, err := svc.BulkSend(context.Background(), domain.BulkSendRequest{
		OrganizationID: 1,
		Window:         domain.WindowToday,
		Channel:        domain.ChannelEmail,
	})
	s.NoError(err)
	s.Equal(3, res.Sent)
}

func (s *BulkSendTestSuite) TestInvalidRequest() {
	svc := s.newService(domain.ChannelEmail)

	_, err := svc.BulkSend(context.Background(), domain.BulkSendRequest{OrganizationID: 1, Window: "month"})
	s.ErrorIs(err, errs.ErrInvalidParameter)

	_, err = svc.BulkSend(context.Background(), domain.BulkSendRequest{
		OrganizationID: 1, Window: domain.WindowToday, Channel: domain.ChannelAuto,
	})
	s.ErrorIs(err, errs.ErrInvalidParameter)

	s.sessions.EXPECT().FindPending(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))
	_, err = svc.BulkSend(context.Background(), domain.BulkSendRequest{OrganizationID: 1, Window: domain.WindowToday})
	s.Error(err)
}

func TestBulkSend_GateFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	sessions := repomocks.NewMockSessionRepository(ctrl)
	history := repomocks.NewMockConfirmationRepository(ctrl)
	dispatcher := gatemocks.NewMockDispatcher(ctrl)

	sessions.EXPECT().FindPending(gomock.Any(), int64(1), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(todaySessions()[:1], nil)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p domain.Payload, jc gate.JobContext) gate.Outcome {
			assert.Equal(t, domain.TemplateSessionConfirmation, p.Template)
			assert.Equal(t, int64(11), jc.SessionID)
			assert.Equal(t, jc.AthleteID, p.To[0].AthleteID)
			assert.NotEmpty(t, p.IdempotencyKey)
			if jc.AthleteID == 2 {
				return gate.Outcome{Error: &domain.SendError{Code: domain.ErrorCodeBounce, Message: "mailbox unavailable"}}
			}
			return gate.Outcome{Success: true, ID: "job-1", UsedQueue: true}
		}).Times(3)

	var saved []domain.ConfirmationHistory
	history.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, records []domain.ConfirmationHistory) ([]domain.ConfirmationHistory, error) {
			saved = records
			return records, nil
		})

	svc := NewService(sessions, history, dispatcher, signlink.NewSigner("k", "https://club.example", 0),
		[]domain.Channel{domain.ChannelEmail}, 2)
	res, err := svc.BulkSend(context.Background(), domain.BulkSendRequest{
		OrganizationID: 1,
		Window:         domain.WindowWeek,
		Channel:        domain.ChannelEmail,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, saved, 3)
	for _, r := range saved {
		if r.AthleteID == 2 {
			assert.Equal(t, domain.ConfirmationStatusFailed, r.Status)
			assert.Equal(t, "mailbox unavailable", r.ErrorMessage)
			continue
		}
		assert.Equal(t, "job-1", r.TriggerJobID)
	}
}

func TestResend(t *testing.T) {
	t.Parallel()

	original := domain.ConfirmationHistory{
		ID:             7,
		OrganizationID: 1,
		SessionID:      11,
		AthleteID:      2,
		Channel:        domain.ChannelEmail,
		Status:         domain.ConfirmationStatusFailed,
		BatchID:        "b-1",
		InitiatedBy:    "coach@example.com",
	}
	future := todaySessions()[0]

	testCases := []struct {
		name    string
		req     domain.ResendRequest
		mock    func(sessions *repomocks.MockSessionRepository, history *repomocks.MockConfirmationRepository)
		wantErr error
	}{
		{
			name: "记录不存在",
			req:  domain.ResendRequest{HistoryID: 8},
			mock: func(_ *repomocks.MockSessionRepository, history *repomocks.MockConfirmationRepository) {
				history.EXPECT().GetByID(gomock.Any(), int64(8)).Return(domain.ConfirmationHistory{}, errs.ErrHistoryNotFound)
			},
			wantErr: errs.ErrHistoryNotFound,
		},
		{
			name: "训练课已删除",
			req:  domain.ResendRequest{HistoryID: 7},
			mock: func(sessions *repomocks.MockSessionRepository, history *repomocks.MockConfirmationRepository) {
				history.EXPECT().GetByID(gomock.Any(), int64(7)).Return(original, nil)
				sessions.EXPECT().GetByID(gomock.Any(), int64(11)).Return(domain.Session{}, errs.ErrSessionNotFound)
			},
			wantErr: errs.ErrBadRequest,
		},
		{
			name: "训练课已开始",
			req:  domain.ResendRequest{HistoryID: 7},
			mock: func(sessions *repomocks.MockSessionRepository, history *repomocks.MockConfirmationRepository) {
				history.EXPECT().GetByID(gomock.Any(), int64(7)).Return(original, nil)
				past := future
				past.StartsAt = now.Add(-time.Minute)
				sessions.EXPECT().GetByID(gomock.Any(), int64(11)).Return(past, nil)
			},
			wantErr: errs.ErrBadRequest,
		},
		{
			name: "运动员已删除",
			req:  domain.ResendRequest{HistoryID: 7},
			mock: func(sessions *repomocks.MockSessionRepository, history *repomocks.MockConfirmationRepository) {
				history.EXPECT().GetByID(gomock.Any(), int64(7)).Return(original, nil)
				sessions.EXPECT().GetByID(gomock.Any(), int64(11)).Return(future, nil)
				sessions.EXPECT().GetAthlete(gomock.Any(), int64(2)).Return(domain.Athlete{}, errs.ErrAthleteNotFound)
			},
			wantErr: errs.ErrBadRequest,
		},
		{
			name: "缺少渠道联系方式",
			req:  domain.ResendRequest{HistoryID: 7, Channel: domain.ChannelWhatsApp},
			mock: func(sessions *repomocks.MockSessionRepository, history *repomocks.MockConfirmationRepository) {
				history.EXPECT().GetByID(gomock.Any(), int64(7)).Return(original, nil)
				sessions.EXPECT().GetByID(gomock.Any(), int64(11)).Return(future, nil)
				sessions.EXPECT().GetAthlete(gomock.Any(), int64(2)).Return(athlete(2, "Bob", "bob@example.com", ""), nil)
			},
			wantErr: errs.ErrBadRequest,
		},
		{
			name: "不支持自动渠道",
			req:  domain.ResendRequest{HistoryID: 7, Channel: domain.ChannelAuto},
			mock: func(_ *repomocks.MockSessionRepository, history *repomocks.MockConfirmationRepository) {
				history.EXPECT().GetByID(gomock.Any(), int64(7)).Return(original, nil)
			},
			wantErr: errs.ErrBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			sessions := repomocks.NewMockSessionRepository(ctrl)
			history := repomocks.NewMockConfirmationRepository(ctrl)
			tc.mock(sessions, history)

			svc := NewService(sessions, history, gatemocks.NewMockDispatcher(ctrl),
				signlink.NewSigner("k", "https://club.example", 0), nil, 0).(*service)
			svc.now = func() time.Time { return now }
			_, err := svc.Resend(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestResend_Twice(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	sessions := repomocks.NewMockSessionRepository(ctrl)
	history := repomocks.NewMockConfirmationRepository(ctrl)
	dispatcher := gatemocks.NewMockDispatcher(ctrl)

	original := domain.ConfirmationHistory{
		ID: 7, OrganizationID: 1, SessionID: 11, AthleteID: 2,
		Channel: domain.ChannelEmail, Status: domain.ConfirmationStatusFailed, BatchID: "b-1",
		InitiatedBy: "coach@example.com",
	}
	history.EXPECT().GetByID(gomock.Any(), int64(7)).Return(original, nil).Times(2)
	sessions.EXPECT().GetByID(gomock.Any(), int64(11)).Return(todaySessions()[0], nil).Times(2)
	sessions.EXPECT().GetAthlete(gomock.Any(), int64(2)).
		Return(athlete(2, "Bob", "bob@example.com", "+15550000002"), nil).Times(2)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p domain.Payload, _ gate.JobContext) gate.Outcome {
			assert.Equal(t, domain.ChannelSMS, p.Channel)
			assert.Equal(t, "+15550000002", p.To[0].Phone)
			return gate.Outcome{Success: true, ID: "job-x", UsedQueue: true}
		}).Times(2)

	nextID := int64(100)
	history.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r domain.ConfirmationHistory) (domain.ConfirmationHistory, error) {
			nextID++
			r.ID = nextID
			return r, nil
		}).Times(2)

	svc := NewService(sessions, history, dispatcher, signlink.NewSigner("k", "https://club.example", 0), nil, 0).(*service)
	svc.now = func() time.Time { return now }

	req := domain.ResendRequest{HistoryID: 7, Channel: domain.ChannelSMS}
	first, err := svc.Resend(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Resend(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, first.Success)
	assert.True(t, second.Success)
	assert.NotEqual(t, first.History.ID, second.History.ID)
	assert.NotEqual(t, first.History.BatchID, second.History.BatchID)
	assert.NotEqual(t, original.BatchID, first.History.BatchID)
	assert.Equal(t, "coach@example.com", first.History.InitiatedBy)
	assert.Equal(t, domain.ChannelSMS, first.History.Channel)
}

func TestListAndStats(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	history := repomocks.NewMockConfirmationRepository(ctrl)
	svc := NewService(repomocks.NewMockSessionRepository(ctrl), history, gatemocks.NewMockDispatcher(ctrl),
		signlink.NewSigner("k", "https://club.example", 0), nil, 0)
	ctx := context.Background()

	_, _, err := svc.List(ctx, domain.HistoryFilter{}, 0, 10)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
	_, _, err = svc.List(ctx, domain.HistoryFilter{OrganizationID: 1, Status: "unknown"}, 0, 10)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)

	filter := domain.HistoryFilter{OrganizationID: 1, Status: domain.ConfirmationStatusSent}
	history.EXPECT().Find(gomock.Any(), filter, 0, maxPageSize).Return([]domain.ConfirmationHistory{{ID: 1}}, int64(1), nil)
	got, total, err := svc.List(ctx, filter, -5, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, got, 1)

	history.EXPECT().Find(gomock.Any(), filter, 0, defaultPageSize).Return(nil, int64(0), nil)
	_, _, err = svc.List(ctx, filter, 0, 0)
	require.NoError(t, err)

	_, err = svc.Stats(ctx, 0, 0)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
	history.EXPECT().Stats(gomock.Any(), int64(1), int64(11)).Return(domain.ConfirmationStats{Total: 1}, nil)
	stats, err := svc.Stats(ctx, 1, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
}
