package domain

import (
	"fmt"
	"time"

	"club-notification/internal/errs"
)

// SessionStatus 训练课状态
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusStarted   SessionStatus = "started"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) String() string {
	return string(s)
}

// Athlete 运动员联系信息
type Athlete struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

func (a Athlete) Recipient() Recipient {
	return Recipient{
		AthleteID: a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
	}
}

// Session 训练课
type Session struct {
	ID               int64
	OrganizationID   int64
	OrganizationName string
	Name             string
	Location         string
	StartsAt         time.Time
	Status           SessionStatus

	GroupID      int64
	GroupMembers []Athlete
	// Athletes 直接分配到训练课的运动员
	Athletes []Athlete
}

// Recipients 有分组且分组有成员时使用分组名单，否则使用直接分配的运动员，二者不合并
func (s Session) Recipients() []Athlete {
	if s.GroupID > 0 && len(s.GroupMembers) > 0 {
		return s.GroupMembers
	}
	return s.Athletes
}

// ConfirmationStatus 确认记录状态
type ConfirmationStatus string

const (
	ConfirmationStatusSent      ConfirmationStatus = "sent"
	ConfirmationStatusConfirmed ConfirmationStatus = "confirmed"
	ConfirmationStatusFailed    ConfirmationStatus = "failed"
)

func (s ConfirmationStatus) String() string {
	return string(s)
}

func (s ConfirmationStatus) IsValid() bool {
	switch s {
	case ConfirmationStatusSent, ConfirmationStatusConfirmed, ConfirmationStatusFailed:
		return true
	}
	return false
}

// ConfirmationHistory 一次（训练课, 运动员）确认消息的投递记录
// 只追加，重发会新建记录
type ConfirmationHistory struct {
	ID             int64
	OrganizationID int64
	SessionID      int64
	AthleteID      int64
	Channel        Channel
	Status         ConfirmationStatus
	BatchID        string
	TriggerJobID   string
	ErrorMessage   string
	InitiatedBy    string
	SentAt         time.Time
	ConfirmedAt    time.Time
}

// Window 批量确认的时间窗口
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
)

func (w Window) IsValid() bool {
	return w == WindowToday || w == WindowWeek
}

// End 窗口结束时间：today 为当天结束，week 为 ISO 周（周日）结束
func (w Window) End(now time.Time) time.Time {
	y, m, d := now.Date()
	endOfDay := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
	if w != WindowWeek {
		return endOfDay
	}
	// time.Sunday == 0，ISO 周以周日结束
	daysLeft := (7 - int(now.Weekday())) % 7
	return endOfDay.AddDate(0, 0, daysLeft)
}

// BulkSendRequest 批量发送出勤确认
type BulkSendRequest struct {
	OrganizationID int64
	Window         Window
	// Channel 为空表示向所有已配置渠道发送
	Channel     Channel
	SessionIDs  []int64
	InitiatedBy string
}

// AllChannels 全渠道模式
func (r BulkSendRequest) AllChannels() bool {
	return r.Channel == ""
}

func (r BulkSendRequest) Validate() error {
	if r.OrganizationID <= 0 {
		return fmt.Errorf("%w: OrganizationID = %d", errs.ErrInvalidParameter, r.OrganizationID)
	}
	if !r.Window.IsValid() {
		return fmt.Errorf("%w: Window = %q", errs.ErrInvalidParameter, r.Window)
	}
	if !r.AllChannels() && (!r.Channel.IsValid() || r.Channel == ChannelAuto) {
		return fmt.Errorf("%w: Channel = %q", errs.ErrInvalidParameter, r.Channel)
	}
	return nil
}

// BulkSendResult 批量发送汇总
// Sent + Failed + Skipped 等于所有处理过的训练课（按渠道）的接收者总数
type BulkSendResult struct {
	BatchID      string
	Sent         int
	Failed       int
	Skipped      int
	SessionCount int
}

// ResendRequest 针对某条历史记录重发
type ResendRequest struct {
	HistoryID int64
	// Channel 为空时沿用原记录渠道
	Channel     Channel
	InitiatedBy string
}

type ResendResult struct {
	History ConfirmationHistory
	Success bool
	Error   string
}

// HistoryFilter 历史记录查询条件，零值字段不参与过滤
type HistoryFilter struct {
	OrganizationID int64
	SessionID      int64
	AthleteID      int64
	Status         ConfirmationStatus
	BatchID        string
	From           time.Time
	To             time.Time
}

// ConfirmationStats 确认统计
type ConfirmationStats struct {
	Total     int64
	Sent      int64 // 投递成功，含已确认
	Confirmed int64
	Pending   int64 // 投递成功但未确认
	Failed    int64
	// ConfirmationRate 百分比，保留两位小数
	ConfirmationRate float64
}
