package provider

import (
	"strings"

	"club-notification/internal/domain"
)

// statusTable 供应商状态到投递状态的固定映射
var statusTable = map[string]domain.DeliveryStatus{
	"":             domain.DeliveryStatusSent,
	"pending":      domain.DeliveryStatusPending,
	"accepted":     domain.DeliveryStatusQueued,
	"queued":       domain.DeliveryStatusQueued,
	"scheduled":    domain.DeliveryStatusQueued,
	"sending":      domain.DeliveryStatusSent,
	"sent":         domain.DeliveryStatusSent,
	"ok":           domain.DeliveryStatusSent,
	"delivered":    domain.DeliveryStatusDelivered,
	"read":         domain.DeliveryStatusDelivered,
	"failed":       domain.DeliveryStatusFailed,
	"undelivered":  domain.DeliveryStatusFailed,
	"rejected":     domain.DeliveryStatusFailed,
	"bounced":      domain.DeliveryStatusBounced,
	"bounce":       domain.DeliveryStatusBounced,
	"blocked":      domain.DeliveryStatusSpam,
	"spam":         domain.DeliveryStatusSpam,
	"complained":   domain.DeliveryStatusSpam,
	"unsubscribed": domain.DeliveryStatusUnsubscribed,
	"opted_out":    domain.DeliveryStatusUnsubscribed,
}

// MapStatus 未知状态按 sent 处理
func MapStatus(raw string) domain.DeliveryStatus {
	if s, ok := statusTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return domain.DeliveryStatusSent
}

// statusErrors 终态失败状态对应的错误码
var statusErrors = map[domain.DeliveryStatus]domain.ErrorCode{
	domain.DeliveryStatusFailed:       domain.ErrorCodeSendFailed,
	domain.DeliveryStatusBounced:      domain.ErrorCodeBounce,
	domain.DeliveryStatusSpam:         domain.ErrorCodeSpam,
	domain.DeliveryStatusUnsubscribed: domain.ErrorCodeUnsubscribed,
}

// ToResult 把供应商回执转换为结果，回执状态为失败终态时视为永久失败
func ToResult(ch domain.Channel, receipt Receipt) domain.Result {
	status := MapStatus(receipt.Status)
	if code, ok := statusErrors[status]; ok {
		return domain.Failed(ch, status, domain.SendError{
			Code:    code,
			Message: "供应商返回状态 " + receipt.Status,
		})
	}
	res := domain.Succeeded(ch, receipt.ID, status, receipt.CreatedAt)
	res.Cost = receipt.Cost
	return res
}

// failureStatus 永久错误码对应的投递状态
var failureStatus = map[domain.ErrorCode]domain.DeliveryStatus{
	domain.ErrorCodeBounce:       domain.DeliveryStatusBounced,
	domain.ErrorCodeSpam:         domain.DeliveryStatusSpam,
	domain.ErrorCodeBlocked:      domain.DeliveryStatusSpam,
	domain.ErrorCodeUnsubscribed: domain.DeliveryStatusUnsubscribed,
}

// ErrorResult 把供应商错误转换为失败结果
func ErrorResult(ch domain.Channel, err error) domain.Result {
	se := Classify(err)
	status, ok := failureStatus[se.Code]
	if !ok {
		status = domain.DeliveryStatusFailed
	}
	return domain.Failed(ch, status, se)
}
