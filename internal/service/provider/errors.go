package provider

import (
	"errors"
	"fmt"
	"net/http"
	"net/textproto"
	"strings"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
)

// Error 供应商返回的错误
type Error struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *Error) Error() string {
	return fmt.Sprintf("供应商错误: status = %d, code = %s, message = %s", e.HTTPStatus, e.Code, e.Message)
}

// permanentCodes 供应商错误码到永久错误的映射
var permanentCodes = map[string]domain.ErrorCode{
	"unsubscribed":      domain.ErrorCodeUnsubscribed,
	"opted_out":         domain.ErrorCodeUnsubscribed,
	"blocked":           domain.ErrorCodeBlocked,
	"spam":              domain.ErrorCodeSpam,
	"complained":        domain.ErrorCodeSpam,
	"bounce":            domain.ErrorCodeBounce,
	"bounced":           domain.ErrorCodeBounce,
	"unauthorized":      domain.ErrorCodeUnauthorized,
	"forbidden":         domain.ErrorCodeForbidden,
	"invalid_email":     domain.ErrorCodeInvalidEmail,
	"invalid_address":   domain.ErrorCodeInvalidEmail,
	"invalid_recipient": domain.ErrorCodeInvalidRecipient,
	"invalid_number":    domain.ErrorCodeInvalidRecipient,
	"invalid_phone":     domain.ErrorCodeInvalidPhone,
	"invalid_template":  domain.ErrorCodeInvalidTemplate,
}

// Classify 按错误分类归一化
// 429、5xx、SMTP 4xx、熔断和未知错误可重试，其余供应商拒绝为永久错误
func Classify(err error) domain.SendError {
	if err == nil {
		return domain.SendError{}
	}
	if errors.Is(err, errs.ErrCircuitBreaker) {
		return domain.SendError{Code: domain.ErrorCodeCircuitOpen, Message: err.Error(), Retryable: true}
	}

	var pe *Error
	if errors.As(err, &pe) {
		return classifyProviderError(pe)
	}

	var te *textproto.Error
	if errors.As(err, &te) {
		return classifySMTP(te)
	}

	return domain.SendError{Code: domain.ErrorCodeProviderError, Message: err.Error(), Retryable: true}
}

func classifyProviderError(pe *Error) domain.SendError {
	msg := pe.Message
	if msg == "" {
		msg = pe.Error()
	}
	if code, ok := permanentCodes[strings.ToLower(pe.Code)]; ok {
		return domain.SendError{Code: code, Message: msg}
	}
	switch {
	case pe.HTTPStatus == http.StatusTooManyRequests:
		return domain.SendError{Code: domain.ErrorCodeRateLimited, Message: msg, Retryable: true}
	case pe.HTTPStatus >= http.StatusInternalServerError:
		return domain.SendError{Code: domain.ErrorCodeProviderError, Message: msg, Retryable: true}
	case pe.HTTPStatus == http.StatusUnauthorized:
		return domain.SendError{Code: domain.ErrorCodeUnauthorized, Message: msg}
	case pe.HTTPStatus == http.StatusForbidden:
		return domain.SendError{Code: domain.ErrorCodeForbidden, Message: msg}
	case pe.HTTPStatus >= http.StatusBadRequest:
		return domain.SendError{Code: domain.ErrorCodeInvalidRecipient, Message: msg}
	}
	// 没有 HTTP 状态码，无法判断，按临时错误处理
	return domain.SendError{Code: domain.ErrorCodeProviderError, Message: msg, Retryable: true}
}

// classifySMTP 5xx 为永久拒绝，4xx 为临时拒绝
func classifySMTP(te *textproto.Error) domain.SendError {
	const (
		mailboxUnavailable = 550
		mailboxNameInvalid = 553
		authRequired       = 530
		authFailed         = 535
	)
	switch {
	case te.Code >= 400 && te.Code < 500:
		return domain.SendError{Code: domain.ErrorCodeProviderError, Message: te.Msg, Retryable: true}
	case te.Code == mailboxUnavailable:
		return domain.SendError{Code: domain.ErrorCodeBounce, Message: te.Msg}
	case te.Code == mailboxNameInvalid:
		return domain.SendError{Code: domain.ErrorCodeInvalidEmail, Message: te.Msg}
	case te.Code == authRequired, te.Code == authFailed:
		return domain.SendError{Code: domain.ErrorCodeUnauthorized, Message: te.Msg}
	}
	return domain.SendError{Code: domain.ErrorCodeBlocked, Message: te.Msg}
}
