package confirmation

import (
	"time"

	"club-notification/internal/domain"
)

type BulkSendReq struct {
	OrganizationID int64  `json:"organizationId"`
	Window         string `json:"window"` // today / week
	// Channel 为空表示所有已配置渠道
	Channel     string  `json:"channel"`
	SessionIDs  []int64 `json:"sessionIds"`
	InitiatedBy string  `json:"initiatedBy"`
}

type BulkSendResp struct {
	BatchID      string `json:"batchId"`
	Sent         int    `json:"sent"`
	Failed       int    `json:"failed"`
	Skipped      int    `json:"skipped"`
	SessionCount int    `json:"sessionCount"`
}

type ResendReq struct {
	Channel     string `json:"channel"`
	InitiatedBy string `json:"initiatedBy"`
}

type ResendResp struct {
	History History `json:"history"`
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
}

// ListHistoryReq 时间为毫秒时间戳
type ListHistoryReq struct {
	OrganizationID int64  `form:"organizationId"`
	SessionID      int64  `form:"sessionId"`
	AthleteID      int64  `form:"athleteId"`
	Status         string `form:"status"`
	BatchID        string `form:"batchId"`
	From           int64  `form:"from"`
	To             int64  `form:"to"`
	Offset         int    `form:"offset"`
	Limit          int    `form:"limit"`
}

func (r ListHistoryReq) toFilter() domain.HistoryFilter {
	return domain.HistoryFilter{
		OrganizationID: r.OrganizationID,
		SessionID:      r.SessionID,
		AthleteID:      r.AthleteID,
		Status:         domain.ConfirmationStatus(r.Status),
		BatchID:        r.BatchID,
		From:           fromMillis(r.From),
		To:             fromMillis(r.To),
	}
}

type ListHistoryResp struct {
	Records []History `json:"records"`
	Total   int64     `json:"total"`
}

type History struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organizationId"`
	SessionID      int64  `json:"sessionId"`
	AthleteID      int64  `json:"athleteId"`
	Channel        string `json:"channel"`
	Status         string `json:"status"`
	BatchID        string `json:"batchId"`
	TriggerJobID   string `json:"triggerJobId,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
	InitiatedBy    string `json:"initiatedBy,omitempty"`
	SentAt         int64  `json:"sentAt"`
	ConfirmedAt    int64  `json:"confirmedAt,omitempty"`
}

type StatsReq struct {
	OrganizationID int64 `form:"organizationId"`
	SessionID      int64 `form:"sessionId"`
}

type StatsResp struct {
	Total            int64   `json:"total"`
	Sent             int64   `json:"sent"`
	Confirmed        int64   `json:"confirmed"`
	Pending          int64   `json:"pending"`
	Failed           int64   `json:"failed"`
	ConfirmationRate float64 `json:"confirmationRate"`
}

type VerifyReq struct {
	Token string `form:"token"`
}

type VerifyResp struct {
	SessionID int64 `json:"sessionId"`
	AthleteID int64 `json:"athleteId"`
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
