package confirmation

import (
	"fmt"
	"strconv"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/handler"
	"club-notification/internal/pkg/signlink"
	confirmationsvc "club-notification/internal/service/confirmation"
)

var _ ginx.Handler = &Handler{}

// LinkVerifier 校验确认链接中的令牌
type LinkVerifier interface {
	Verify(token string) (signlink.Claims, error)
}

type Handler struct {
	svc      confirmationsvc.Service
	verifier LinkVerifier
}

func NewHandler(svc confirmationsvc.Service, verifier LinkVerifier) *Handler {
	return &Handler{svc: svc, verifier: verifier}
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/confirmations")
	g.POST("/bulk", handler.Wrap(h.BulkSend))
	g.POST("/history/:id/resend", handler.Wrap(h.Resend))
	g.GET("/history", handler.Wrap(h.ListHistory))
	g.GET("/stats", handler.Wrap(h.Stats))
	g.GET("/verify", handler.Wrap(h.Verify))
}

// BulkSend 对今天或本周待开始的训练课批量发送出勤确认
func (h *Handler) BulkSend(ctx *ginx.Context, req BulkSendReq) (ginx.Result, error) {
	res, err := h.svc.BulkSend(ctx.Request.Context(), domain.BulkSendRequest{
		OrganizationID: req.OrganizationID,
		Window:         domain.Window(req.Window),
		Channel:        domain.Channel(req.Channel),
		SessionIDs:     req.SessionIDs,
		InitiatedBy:    req.InitiatedBy,
	})
	if err != nil {
		return handler.ErrorResult(err), err
	}
	return ginx.Result{
		Msg: fmt.Sprintf("成功 %d 失败 %d 跳过 %d", res.Sent, res.Failed, res.Skipped),
		Data: BulkSendResp{
			BatchID:      res.BatchID,
			Sent:         res.Sent,
			Failed:       res.Failed,
			Skipped:      res.Skipped,
			SessionCount: res.SessionCount,
		},
	}, nil
}

// Resend 针对一条历史记录重发，新建一条记录
func (h *Handler) Resend(ctx *ginx.Context, req ResendReq) (ginx.Result, error) {
	id, err := strconv.ParseInt(ctx.Context.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		err = fmt.Errorf("%w: id = %q", errs.ErrInvalidParameter, ctx.Context.Param("id"))
		return handler.ErrorResult(err), err
	}
	res, err := h.svc.Resend(ctx.Request.Context(), domain.ResendRequest{
		HistoryID:   id,
		Channel:     domain.Channel(req.Channel),
		InitiatedBy: req.InitiatedBy,
	})
	if err != nil {
		return handler.ErrorResult(err), err
	}
	return ginx.Result{
		Msg: res.Error,
		Data: ResendResp{
			History: toHistoryVO(res.History),
			Success: res.Success,
			Error:   res.Error,
		},
	}, nil
}

func (h *Handler) ListHistory(ctx *ginx.Context, req ListHistoryReq) (ginx.Result, error) {
	records, total, err := h.svc.List(ctx.Request.Context(), req.toFilter(), req.Offset, req.Limit)
	if err != nil {
		return handler.ErrorResult(err), err
	}
	return ginx.Result{
		Data: ListHistoryResp{
			Records: slice.Map(records, func(_ int, src domain.ConfirmationHistory) History {
				return toHistoryVO(src)
			}),
			Total: total,
		},
	}, nil
}

func (h *Handler) Stats(ctx *ginx.Context, req StatsReq) (ginx.Result, error) {
	stats, err := h.svc.Stats(ctx.Request.Context(), req.OrganizationID, req.SessionID)
	if err != nil {
		return handler.ErrorResult(err), err
	}
	return ginx.Result{
		Data: StatsResp{
			Total:            stats.Total,
			Sent:             stats.Sent,
			Confirmed:        stats.Confirmed,
			Pending:          stats.Pending,
			Failed:           stats.Failed,
			ConfirmationRate: stats.ConfirmationRate,
		},
	}, nil
}

// Verify 供回执处理方校验确认链接
func (h *Handler) Verify(_ *ginx.Context, req VerifyReq) (ginx.Result, error) {
	claims, err := h.verifier.Verify(req.Token)
	if err != nil {
		return handler.ErrorResult(err), err
	}
	return ginx.Result{
		Data: VerifyResp{SessionID: claims.SessionID, AthleteID: claims.AthleteID},
	}, nil
}

func toHistoryVO(src domain.ConfirmationHistory) History {
	return History{
		ID:             src.ID,
		OrganizationID: src.OrganizationID,
		SessionID:      src.SessionID,
		AthleteID:      src.AthleteID,
		Channel:        src.Channel.String(),
		Status:         src.Status.String(),
		BatchID:        src.BatchID,
		TriggerJobID:   src.TriggerJobID,
		ErrorMessage:   src.ErrorMessage,
		InitiatedBy:    src.InitiatedBy,
		SentAt:         toMillis(src.SentAt),
		ConfirmedAt:    toMillis(src.ConfirmedAt),
	}
}
