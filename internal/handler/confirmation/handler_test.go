package confirmation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/pkg/signlink"
	confirmationmocks "club-notification/internal/service/confirmation/mocks"
	"club-notification/internal/test"
)

var signer = signlink.NewSigner("secret", "https://club.example", time.Hour)

func newServer(svc *confirmationmocks.MockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	NewHandler(svc, signer).PublicRoutes(server)
	return server
}

func TestHandler_BulkSend(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		req      BulkSendReq
		mock     func(svc *confirmationmocks.MockService)
		wantCode int
		want     BulkSendResp
	}{
		{
			name: "今天的训练课",
			req:  BulkSendReq{OrganizationID: 1, Window: "today", Channel: "email", InitiatedBy: "coach"},
			mock: func(svc *confirmationmocks.MockService) {
				svc.EXPECT().BulkSend(gomock.Any(), domain.BulkSendRequest{
					OrganizationID: 1,
					Window:         domain.WindowToday,
					Channel:        domain.ChannelEmail,
					InitiatedBy:    "coach",
				}).Return(domain.BulkSendResult{BatchID: "b-1", Sent: 4, Skipped: 1, SessionCount: 2}, nil)
			},
			wantCode: http.StatusOK,
			want:     BulkSendResp{BatchID: "b-1", Sent: 4, Skipped: 1, SessionCount: 2},
		},
		{
			name: "窗口非法",
			req:  BulkSendReq{OrganizationID: 1, Window: "month"},
			mock: func(svc *confirmationmocks.MockService) {
				svc.EXPECT().BulkSend(gomock.Any(), gomock.Any()).
					Return(domain.BulkSendResult{}, fmt.Errorf("%w: Window", errs.ErrInvalidParameter))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "系统错误",
			req:  BulkSendReq{OrganizationID: 1, Window: "week"},
			mock: func(svc *confirmationmocks.MockService) {
				svc.EXPECT().BulkSend(gomock.Any(), gomock.Any()).
					Return(domain.BulkSendResult{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			svc := confirmationmocks.NewMockService(ctrl)
			tc.mock(svc)

			req, err := http.NewRequest(http.MethodPost, "/confirmations/bulk", iox.NewJSONReader(tc.req))
			require.NoError(t, err)
			req.Header.Set("content-type", "application/json")
			recorder := test.NewJSONResponseRecorder[BulkSendResp]()

			newServer(svc).ServeHTTP(recorder, req)

			require.Equal(t, tc.wantCode, recorder.Code)
			assert.Equal(t, tc.want, recorder.MustScan().Data)
		})
	}
}

func TestHandler_Resend(t *testing.T) {
	t.Parallel()

	sentAt := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	testCases := []struct {
		name     string
		path     string
		body     any
		mock     func(svc *confirmationmocks.MockService)
		wantCode int
		wantID   int64
	}{
		{
			name: "重发成功",
			path: "/confirmations/history/7/resend",
			body: ResendReq{Channel: "sms"},
			mock: func(svc *confirmationmocks.MockService) {
				svc.EXPECT().Resend(gomock.Any(), domain.ResendRequest{HistoryID: 7, Channel: domain.ChannelSMS}).
					Return(domain.ResendResult{
						History: domain.ConfirmationHistory{ID: 8, SessionID: 1, Status: domain.ConfirmationStatusSent, SentAt: sentAt},
						Success: true,
					}, nil)
			},
			wantCode: http.StatusOK,
			wantID:   8,
		},
		{
			name: "空请求体沿用原渠道",
			path: "/confirmations/history/7/resend",
			mock: func(svc *confirmationmocks.MockService) {
				svc.EXPECT().Resend(gomock.Any(), domain.ResendRequest{HistoryID: 7}).
					Return(domain.ResendResult{History: domain.ConfirmationHistory{ID: 9}, Success: true}, nil)
			},
			wantCode: http.StatusOK,
			wantID:   9,
		},
		{
			name:     "ID 非法",
			path:     "/confirmations/history/abc/resend",
			mock:     func(_ *confirmationmocks.MockService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "记录不存在",
			path: "/confirmations/history/70/resend",
			mock: func(svc *confirmationmocks.MockService) {
				svc.EXPECT().Resend(gomock.Any(), gomock.Any()).
					Return(domain.ResendResult{}, fmt.Errorf("%w: id = 70", errs.ErrHistoryNotFound))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "训练课已开始",
			path: "/confirmations/history/7/resend",
			mock: func(svc *confirmationmocks.MockService) {
				svc.EXPECT().Resend(gomock.Any(), gomock.Any()).
					Return(domain.ResendResult{}, fmt.Errorf("%w: 已开始", errs.ErrBadRequest))
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			svc := confirmationmocks.NewMockService(ctrl)
			tc.mock(svc)

			req, err := http.NewRequest(http.MethodPost, tc.path, nil)
			if tc.body != nil {
				req, err = http.NewRequest(http.MethodPost, tc.path, iox.NewJSONReader(tc.body))
			}
			require.NoError(t, err)
			req.Header.Set("content-type", "application/json")
			recorder := test.NewJSONResponseRecorder[ResendResp]()

			newServer(svc).ServeHTTP(recorder, req)

			require.Equal(t, tc.wantCode, recorder.Code)
			assert.Equal(t, tc.wantID, recorder.MustScan().Data.History.ID)
		})
	}
}

func TestHandler_ListHistory(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	svc := confirmationmocks.NewMockService(ctrl)
	sentAt := time.UnixMilli(1760000000000)

	svc.EXPECT().List(gomock.Any(), gomock.Any(), 10, 5).DoAndReturn(
		func(_ context.Context, f domain.HistoryFilter, _, _ int) ([]domain.ConfirmationHistory, int64, error) {
			assert.Equal(t, int64(1), f.OrganizationID)
			assert.Equal(t, int64(11), f.SessionID)
			assert.Equal(t, domain.ConfirmationStatusFailed, f.Status)
			assert.Equal(t, "b-1", f.BatchID)
			assert.Equal(t, sentAt, f.From)
			assert.True(t, f.To.IsZero())
			return []domain.ConfirmationHistory{{
				ID: 3, SessionID: 11, Status: domain.ConfirmationStatusFailed, BatchID: "b-1",
				Channel: domain.ChannelSMS, ErrorMessage: "bounce", SentAt: sentAt,
			}}, 12, nil
		})

	req, err := http.NewRequest(http.MethodGet,
		"/confirmations/history?organizationId=1&sessionId=11&status=failed&batchId=b-1&from=1760000000000&offset=10&limit=5", nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[ListHistoryResp]()
	newServer(svc).ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	res := recorder.MustScan()
	assert.Equal(t, int64(12), res.Data.Total)
	require.Len(t, res.Data.Records, 1)
	assert.Equal(t, History{
		ID: 3, SessionID: 11, Channel: "sms", Status: "failed", BatchID: "b-1",
		ErrorMessage: "bounce", SentAt: 1760000000000,
	}, res.Data.Records[0])
}

func TestHandler_Stats(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	svc := confirmationmocks.NewMockService(ctrl)
	svc.EXPECT().Stats(gomock.Any(), int64(1), int64(0)).Return(domain.ConfirmationStats{
		Total: 5, Sent: 4, Confirmed: 1, Pending: 3, Failed: 1, ConfirmationRate: 25,
	}, nil)

	req, err := http.NewRequest(http.MethodGet, "/confirmations/stats?organizationId=1", nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[StatsResp]()
	newServer(svc).ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, StatsResp{Total: 5, Sent: 4, Confirmed: 1, Pending: 3, Failed: 1, ConfirmationRate: 25},
		recorder.MustScan().Data)
}

func TestHandler_Verify(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	svc := confirmationmocks.NewMockService(ctrl)

	token, err := signer.Sign(11, 2)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "/confirmations/verify?token="+token, nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[VerifyResp]()
	newServer(svc).ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, VerifyResp{SessionID: 11, AthleteID: 2}, recorder.MustScan().Data)

	req, err = http.NewRequest(http.MethodGet, "/confirmations/verify?token=forged", nil)
	require.NoError(t, err)
	recorder = test.NewJSONResponseRecorder[VerifyResp]()
	newServer(svc).ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
