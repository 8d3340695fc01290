package provider

import (
	"errors"
	"fmt"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		err       error
		wantCode  domain.ErrorCode
		wantRetry bool
	}{
		{
			name:      "限流",
			err:       &Error{HTTPStatus: http.StatusTooManyRequests, Message: "slow down"},
			wantCode:  domain.ErrorCodeRateLimited,
			wantRetry: true,
		},
		{
			name:      "服务端错误",
			err:       &Error{HTTPStatus: http.StatusServiceUnavailable},
			wantCode:  domain.ErrorCodeProviderError,
			wantRetry: true,
		},
		{
			name:     "退订",
			err:      &Error{Code: "unsubscribed", HTTPStatus: http.StatusUnprocessableEntity},
			wantCode: domain.ErrorCodeUnsubscribed,
		},
		{
			name:     "永久错误码优先于状态码",
			err:      fmt.Errorf("wrap: %w", &Error{Code: "blocked", HTTPStatus: http.StatusInternalServerError}),
			wantCode: domain.ErrorCodeBlocked,
		},
		{
			name:     "未授权",
			err:      &Error{HTTPStatus: http.StatusUnauthorized},
			wantCode: domain.ErrorCodeUnauthorized,
		},
		{
			name:     "禁止",
			err:      &Error{HTTPStatus: http.StatusForbidden},
			wantCode: domain.ErrorCodeForbidden,
		},
		{
			name:     "其他4xx",
			err:      &Error{HTTPStatus: http.StatusBadRequest, Code: "whatever"},
			wantCode: domain.ErrorCodeInvalidRecipient,
		},
		{
			name:      "没有状态码",
			err:       &Error{Code: "weird"},
			wantCode:  domain.ErrorCodeProviderError,
			wantRetry: true,
		},
		{
			name:      "SMTP 4xx",
			err:       &textproto.Error{Code: 451, Msg: "local error"},
			wantCode:  domain.ErrorCodeProviderError,
			wantRetry: true,
		},
		{
			name:     "SMTP 550",
			err:      &textproto.Error{Code: 550, Msg: "no such user"},
			wantCode: domain.ErrorCodeBounce,
		},
		{
			name:     "SMTP 553",
			err:      &textproto.Error{Code: 553, Msg: "bad mailbox"},
			wantCode: domain.ErrorCodeInvalidEmail,
		},
		{
			name:     "SMTP 554",
			err:      &textproto.Error{Code: 554, Msg: "rejected"},
			wantCode: domain.ErrorCodeBlocked,
		},
		{
			name:      "熔断",
			err:       fmt.Errorf("%w: open", errs.ErrCircuitBreaker),
			wantCode:  domain.ErrorCodeCircuitOpen,
			wantRetry: true,
		},
		{
			name:      "未知错误",
			err:       errors.New("connection reset"),
			wantCode:  domain.ErrorCodeProviderError,
			wantRetry: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tc.err)
			assert.Equal(t, tc.wantCode, got.Code)
			assert.Equal(t, tc.wantRetry, got.Retryable)
			assert.NotEmpty(t, got.Message)
		})
	}

	assert.Equal(t, domain.SendError{}, Classify(nil))
}
