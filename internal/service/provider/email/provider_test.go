package email

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"club-notification/internal/domain"
	"club-notification/internal/service/provider"
)

type fakeSendCloser struct {
	err    error
	from   string
	to     []string
	body   bytes.Buffer
	closed bool
}

func (f *fakeSendCloser) Send(from string, to []string, msg io.WriterTo) error {
	if f.err != nil {
		return f.err
	}
	f.from = from
	f.to = to
	_, err := msg.WriteTo(&f.body)
	return err
}

func (f *fakeSendCloser) Close() error {
	f.closed = true
	return nil
}

type fakeDialer struct {
	sc  *fakeSendCloser
	err error
}

func (f *fakeDialer) Dial() (gomail.SendCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sc, nil
}

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	cfg := domain.EmailConfig{Host: "smtp.example.com", Port: 587, From: "noreply@club.example", FromName: "Club"}
	msg := provider.Message{
		Channel: domain.ChannelEmail,
		To:      "a@b.com",
		Subject: "Welcome to Foo",
		Body:    "<p>Hi Ann</p>",
	}

	testCases := []struct {
		name      string
		dialer    *fakeDialer
		wantCode  domain.ErrorCode
		wantRetry bool
		wantErr   bool
	}{
		{
			name:   "发送成功",
			dialer: &fakeDialer{sc: &fakeSendCloser{}},
		},
		{
			name:      "邮箱不存在",
			dialer:    &fakeDialer{sc: &fakeSendCloser{err: &textproto.Error{Code: 550, Msg: "mailbox unavailable"}}},
			wantErr:   true,
			wantCode:  domain.ErrorCodeBounce,
			wantRetry: false,
		},
		{
			name:      "临时拒绝",
			dialer:    &fakeDialer{sc: &fakeSendCloser{err: &textproto.Error{Code: 421, Msg: "try again later"}}},
			wantErr:   true,
			wantCode:  domain.ErrorCodeProviderError,
			wantRetry: true,
		},
		{
			name:      "认证失败",
			dialer:    &fakeDialer{err: &textproto.Error{Code: 535, Msg: "auth failed"}},
			wantErr:   true,
			wantCode:  domain.ErrorCodeUnauthorized,
			wantRetry: false,
		},
		{
			name:      "连接失败",
			dialer:    &fakeDialer{err: errors.New("dial tcp: connection refused")},
			wantErr:   true,
			wantCode:  domain.ErrorCodeProviderError,
			wantRetry: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := newProvider(tc.dialer, cfg)
			receipt, err := p.Send(context.Background(), msg)
			if tc.wantErr {
				require.Error(t, err)
				se := provider.Classify(err)
				assert.Equal(t, tc.wantCode, se.Code)
				assert.Equal(t, tc.wantRetry, se.Retryable)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, receipt.ID)
			assert.Equal(t, "sent", receipt.Status)

			sc := tc.dialer.sc
			assert.True(t, sc.closed)
			assert.Equal(t, "noreply@club.example", sc.from)
			assert.Equal(t, []string{"a@b.com"}, sc.to)
			assert.Contains(t, sc.body.String(), "Subject: Welcome to Foo")
			assert.Contains(t, sc.body.String(), receipt.ID+"@club.example")
		})
	}
}
