package domain

import "time"

// DeliveryStatus 投递状态
type DeliveryStatus string

const (
	DeliveryStatusPending      DeliveryStatus = "pending"
	DeliveryStatusQueued       DeliveryStatus = "queued"
	DeliveryStatusSent         DeliveryStatus = "sent"
	DeliveryStatusDelivered    DeliveryStatus = "delivered"
	DeliveryStatusFailed       DeliveryStatus = "failed"
	DeliveryStatusBounced      DeliveryStatus = "bounced"
	DeliveryStatusSpam         DeliveryStatus = "spam"
	DeliveryStatusUnsubscribed DeliveryStatus = "unsubscribed"
)

func (s DeliveryStatus) String() string {
	return string(s)
}

// IsTerminalFailure 失败类的终态
func (s DeliveryStatus) IsTerminalFailure() bool {
	switch s {
	case DeliveryStatusFailed, DeliveryStatusBounced, DeliveryStatusSpam, DeliveryStatusUnsubscribed:
		return true
	}
	return false
}

// ErrorCode 错误码
type ErrorCode string

const (
	// 参数校验类，调用方可修复，不重试
	ErrorCodeNoRecipient     ErrorCode = "no_recipient"
	ErrorCodeInvalidPhone    ErrorCode = "invalid_phone"
	ErrorCodeInvalidTemplate ErrorCode = "invalid_template"

	// 供应商永久错误，不重试，自动渠道下切换到下一个渠道
	ErrorCodeUnsubscribed     ErrorCode = "unsubscribed"
	ErrorCodeBlocked          ErrorCode = "blocked"
	ErrorCodeSpam             ErrorCode = "spam"
	ErrorCodeBounce           ErrorCode = "bounce"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeForbidden        ErrorCode = "forbidden"
	ErrorCodeInvalidEmail     ErrorCode = "invalid_email"
	ErrorCodeInvalidRecipient ErrorCode = "invalid_recipient"

	// 供应商临时错误，可重试
	ErrorCodeRateLimited   ErrorCode = "rate_limited"
	ErrorCodeProviderError ErrorCode = "provider_error"
	ErrorCodeCircuitOpen   ErrorCode = "circuit_open"

	// 聚合类
	ErrorCodeAllChannelsFailed ErrorCode = "all_channels_failed"
	ErrorCodeSendFailed        ErrorCode = "send_failed"
)

func (c ErrorCode) String() string {
	return string(c)
}

// SendError 归一化后的失败原因
type SendError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
}

func (e *SendError) Error() string {
	return e.Code.String() + ": " + e.Message
}

// Result 单次发送的归一化结果
// Success 为 true 时 Error 一定为 nil，反之一定不为 nil
type Result struct {
	Success   bool           `json:"success"`
	Channel   Channel        `json:"channel"`
	MessageID string         `json:"messageId,omitempty"`
	Status    DeliveryStatus `json:"status"`
	Error     *SendError     `json:"error,omitempty"`
	SentAt    time.Time      `json:"sentAt,omitempty"`
	Cost      *float64       `json:"cost,omitempty"`
}

// Retryable 失败且可重试
func (r Result) Retryable() bool {
	return !r.Success && r.Error != nil && r.Error.Retryable
}

// Succeeded 构造成功结果
func Succeeded(ch Channel, messageID string, status DeliveryStatus, sentAt time.Time) Result {
	if status == "" || status.IsTerminalFailure() {
		status = DeliveryStatusSent
	}
	return Result{
		Success:   true,
		Channel:   ch,
		MessageID: messageID,
		Status:    status,
		SentAt:    sentAt,
	}
}

// Failed 构造失败结果，status 非失败终态时统一为 failed
func Failed(ch Channel, status DeliveryStatus, err SendError) Result {
	if !status.IsTerminalFailure() {
		status = DeliveryStatusFailed
	}
	return Result{
		Success: false,
		Channel: ch,
		Status:  status,
		Error:   &err,
	}
}

// FailedWith 以失败码构造失败结果
func FailedWith(ch Channel, code ErrorCode, msg string, retryable bool) Result {
	return Failed(ch, DeliveryStatusFailed, SendError{Code: code, Message: msg, Retryable: retryable})
}

// BatchResult 批量发送结果
// Total == len(Results) == Successful + Failed
type BatchResult struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// NewBatchResult 根据每个接收者的结果汇总
func NewBatchResult(results []Result) BatchResult {
	res := BatchResult{
		Total:   len(results),
		Results: results,
	}
	for i := range results {
		if results[i].Success {
			res.Successful++
		} else {
			res.Failed++
		}
	}
	return res
}
