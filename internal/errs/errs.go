package errs

import "errors"

var (
	ErrInvalidParameter   = errors.New("参数错误")
	ErrNoAvailableChannel = errors.New("无可用通知渠道")

	ErrUnknownTemplate = errors.New("未知模版")
	ErrMissingVariable = errors.New("模版变量缺失")

	ErrSendNotificationFailed = errors.New("发送通知失败")
	ErrNoAvailableProvider    = errors.New("无可用供应商")
	ErrCircuitBreaker         = errors.New("触发熔断")

	ErrQueueNotConfigured = errors.New("任务队列未配置")
	ErrTriggerJobFailed   = errors.New("提交异步任务失败")
	ErrDuplicateRequest   = errors.New("重复请求")
	ErrRateLimited        = errors.New("请求过于频繁")

	// ErrBadRequest 调用方可修复的错误，如会话已过期、联系方式缺失
	ErrBadRequest       = errors.New("请求不合法")
	ErrHistoryNotFound  = errors.New("确认记录不存在")
	ErrSessionNotFound  = errors.New("训练课不存在")
	ErrAthleteNotFound  = errors.New("运动员不存在")
	ErrInvalidLinkToken = errors.New("确认链接无效")
)
