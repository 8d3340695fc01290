//go:build e2e

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/ego-component/egorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"club-notification/internal/domain"
	"club-notification/internal/pkg/signlink"
	"club-notification/internal/repository"
	rediscache "club-notification/internal/repository/cache/redis"
	"club-notification/internal/repository/dao"
	"club-notification/internal/service/channel"
	"club-notification/internal/service/confirmation"
	"club-notification/internal/service/gate"
	"club-notification/internal/service/notification"
	"club-notification/internal/service/provider"
	"club-notification/internal/service/template"
	testioc "club-notification/internal/test/ioc"
)

type ConfirmationTestSuite struct {
	suite.Suite
	db     *egorm.Component
	email  *provider.MockProvider
	sms    *provider.MockProvider
	signer *signlink.Signer
	svc    confirmation.Service

	orgID     int64
	sessionID int64
}

func TestConfirmationSuite(t *testing.T) {
	suite.Run(t, new(ConfirmationTestSuite))
}

func (s *ConfirmationTestSuite) SetupSuite() {
	s.db = testioc.InitDBAndTables()
	s.email = provider.NewMockProvider()
	s.sms = provider.NewMockProvider()
	s.signer = signlink.NewSigner("e2e-secret", "https://club.example", time.Hour)

	registry := template.NewDefaultRegistry()
	dispatcher := channel.NewDispatcher(map[domain.Channel]channel.Channel{
		domain.ChannelEmail:    channel.NewEmailChannel(s.email, registry),
		domain.ChannelSMS:      channel.NewPhoneChannel(domain.ChannelSMS, s.sms, registry),
		domain.ChannelWhatsApp: channel.NewPhoneChannel(domain.ChannelWhatsApp, nil, registry),
	})
	direct := gate.NewDirectDispatcher(notification.NewService(dispatcher, registry, 4))

	sessions := repository.NewSessionRepository(dao.NewSessionDAO(s.db))
	history := repository.NewConfirmationRepository(
		dao.NewConfirmationHistoryDAO(s.db),
		rediscache.NewStatsCache(testioc.InitRedis()))
	s.svc = confirmation.NewService(sessions, history, direct, s.signer,
		[]domain.Channel{domain.ChannelEmail, domain.ChannelSMS}, 4)
}

func (s *ConfirmationTestSuite) SetupTest() {
	t := s.T()
	nowMs := time.Now().UnixMilli()

	org := dao.Organization{Name: "Lions", Ctime: nowMs, Utime: nowMs}
	require.NoError(t, s.db.Create(&org).Error)
	s.orgID = org.ID

	athletes := []dao.Athlete{
		{Name: "Ann", Email: "ann@example.com", Ctime: nowMs, Utime: nowMs},
		{Name: "Bob", Email: "bob@example.com", Phone: "+15550000002", Ctime: nowMs, Utime: nowMs},
		{Name: "Eve", Phone: "+15550000005", Ctime: nowMs, Utime: nowMs},
	}
	require.NoError(t, s.db.Create(&athletes).Error)

	group := dao.Group{OrganizationID: org.ID, Name: "U15", Ctime: nowMs, Utime: nowMs}
	require.NoError(t, s.db.Create(&group).Error)
	members := make([]dao.GroupMember, 0, len(athletes))
	for _, a := range athletes {
		members = append(members, dao.GroupMember{GroupID: group.ID, AthleteID: a.ID, Ctime: nowMs})
	}
	require.NoError(t, s.db.Create(&members).Error)

	// 一分钟后开始，总在本周窗口内
	session := dao.Session{
		OrganizationID: org.ID,
		Name:           "U15 Training",
		StartsAt:       time.Now().Add(time.Minute).UnixMilli(),
		Status:         domain.SessionStatusPending.String(),
		GroupID:        group.ID,
		Ctime:          nowMs,
		Utime:          nowMs,
	}
	require.NoError(t, s.db.Create(&session).Error)
	s.sessionID = session.ID
}

func (s *ConfirmationTestSuite) TearDownTest() {
	t := s.T()
	for _, table := range []string{
		"confirmation_history", "session_athlete", "group_member",
		"athlete_group", "session", "athlete", "organization",
	} {
		require.NoError(t, s.db.Exec("TRUNCATE TABLE `"+table+"`").Error)
	}
}

func (s *ConfirmationTestSuite) TestBulkSendAndStats() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := s.svc.BulkSend(ctx, domain.BulkSendRequest{
		OrganizationID: s.orgID,
		Window:         domain.WindowWeek,
		InitiatedBy:    "coach@example.com",
	})
	require.NoError(t, err)
	// 邮件 2 人，短信 2 人，各跳过 1 人
	assert.Equal(t, 1, res.SessionCount)
	assert.Equal(t, 4, res.Sent)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 0, res.Failed)

	records, total, err := s.svc.List(ctx, domain.HistoryFilter{
		OrganizationID: s.orgID,
		BatchID:        res.BatchID,
	}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	for _, r := range records {
		assert.Equal(t, domain.ConfirmationStatusSent, r.Status)
		assert.Equal(t, s.sessionID, r.SessionID)
		assert.NotEmpty(t, r.TriggerJobID)
	}

	stats, err := s.svc.Stats(ctx, s.orgID, s.sessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationStats{Total: 4, Sent: 4, Pending: 4}, stats)

	// 链接可以被校验
	for _, msg := range s.email.Messages() {
		assert.Contains(t, msg.Body, "https://club.example/confirm?token=")
	}
}

func (s *ConfirmationTestSuite) TestResendInvalidatesStats() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := s.svc.BulkSend(ctx, domain.BulkSendRequest{
		OrganizationID: s.orgID,
		Window:         domain.WindowWeek,
		Channel:        domain.ChannelEmail,
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.Sent)

	stats, err := s.svc.Stats(ctx, s.orgID, s.sessionID)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Total)

	records, _, err := s.svc.List(ctx, domain.HistoryFilter{OrganizationID: s.orgID}, 0, 20)
	require.NoError(t, err)
	require.NotEmpty(t, records)

	// 不指定渠道时沿用原记录的邮件渠道
	resent, err := s.svc.Resend(ctx, domain.ResendRequest{HistoryID: records[0].ID})
	require.NoError(t, err)
	assert.True(t, resent.Success)
	assert.Equal(t, domain.ChannelEmail, resent.History.Channel)
	assert.NotEqual(t, records[0].ID, resent.History.ID)
	assert.NotEqual(t, records[0].BatchID, resent.History.BatchID)

	// 写入后统计缓存失效
	stats, err = s.svc.Stats(ctx, s.orgID, s.sessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
}
