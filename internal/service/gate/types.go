package gate

import (
	"context"
	"time"

	"club-notification/internal/domain"
)

// JobContext 发送上下文，用于审计归属和任务追踪
type JobContext struct {
	OrganizationID int64  `json:"organizationId,omitempty"`
	SessionID      int64  `json:"sessionId,omitempty"`
	AthleteID      int64  `json:"athleteId,omitempty"`
	BatchID        string `json:"batchId,omitempty"`
	InitiatedBy    string `json:"initiatedBy,omitempty"`
}

// Outcome 执行结果
// UsedQueue 只用于日志和监控，调用方不应该依赖它判断成败
type Outcome struct {
	Success bool
	// ID 走队列时为任务ID，直接发送时为消息ID
	ID        string
	Error     *domain.SendError
	UsedQueue bool
}

// Result 转成对外的发送结果，走队列成功时状态为 queued
func (o Outcome) Result(ch domain.Channel) domain.Result {
	if o.Success {
		status := domain.DeliveryStatusSent
		if o.UsedQueue {
			status = domain.DeliveryStatusQueued
		}
		return domain.Succeeded(ch, o.ID, status, time.Now())
	}
	if o.Error == nil {
		return domain.FailedWith(ch, domain.ErrorCodeSendFailed, "发送失败", false)
	}
	return domain.Failed(ch, domain.DeliveryStatusFailed, *o.Error)
}

// Dispatcher 执行闸门，决定走后台任务还是直接发送
//
//go:generate mockgen -source=./types.go -destination=./mocks/gate.mock.go -package=gatemocks Dispatcher Trigger
type Dispatcher interface {
	Dispatch(ctx context.Context, payload domain.Payload, jc JobContext) Outcome
}

// Job 提交给后台任务系统的任务
type Job struct {
	Payload domain.Payload `json:"payload"`
	// Variables 模版变量，Payload.Data 不参与序列化
	Variables map[string]string `json:"variables,omitempty"`
	Context   JobContext        `json:"context"`
}

// NewJob 展开模版变量
func NewJob(payload domain.Payload, jc JobContext) Job {
	return Job{
		Payload:   payload,
		Variables: payload.Values(),
		Context:   jc,
	}
}

// RestorePayload 还原出可直接发送的请求
func (j Job) RestorePayload() domain.Payload {
	p := j.Payload
	p.Data = domain.RawVariables(j.Variables)
	return p
}

// JobHandle 任务句柄
type JobHandle struct {
	ID string
}

// Trigger 后台任务系统的提交入口
type Trigger interface {
	Trigger(ctx context.Context, job Job) (JobHandle, error)
}
