package notification

import (
	"fmt"

	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/handler"
	"club-notification/internal/service/gate"
)

var _ ginx.Handler = &Handler{}

// Handler 单个和批量发送都经过执行闸门，配置了任务队列时由队列负责重试
type Handler struct {
	dispatcher  gate.Dispatcher
	concurrency int
}

func NewHandler(dispatcher gate.Dispatcher, concurrency int) *Handler {
	return &Handler{dispatcher: dispatcher, concurrency: concurrency}
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/notifications")
	g.POST("/send", handler.Wrap(h.Send))
	g.POST("/batch", handler.Wrap(h.SendBatch))
}

// Send 单个接收者发送，channel 为 auto 时自动选择渠道
func (h *Handler) Send(ctx *ginx.Context, req SendReq) (ginx.Result, error) {
	payload := req.toPayload()
	if err := payload.Validate(); err != nil {
		return handler.ErrorResult(err), err
	}
	res := h.dispatcher.Dispatch(ctx.Request.Context(), payload, gate.JobContext{}).Result(payload.Channel)
	if !res.Success {
		err := resultError(res)
		return ginx.Result{
			Code: handler.StatusOf(err),
			Msg:  res.Error.Message,
			Data: SendResp{Result: res},
		}, err
	}
	return ginx.Result{Data: SendResp{Result: res}}, nil
}

// SendBatch 单个接收者失败不影响整体，始终返回汇总
func (h *Handler) SendBatch(ctx *ginx.Context, req SendReq) (ginx.Result, error) {
	payload := req.toPayload()
	if err := payload.Validate(); err != nil {
		return handler.ErrorResult(err), err
	}
	if len(payload.To) == 0 {
		err := fmt.Errorf("%w: To 不能为空", errs.ErrInvalidParameter)
		return handler.ErrorResult(err), err
	}
	outcomes := gate.DispatchBatch(ctx.Request.Context(), h.dispatcher, payload, gate.JobContext{}, h.concurrency)
	results := make([]domain.Result, 0, len(outcomes))
	for _, o := range outcomes {
		results = append(results, o.Result(payload.Channel))
	}
	res := domain.NewBatchResult(results)
	return ginx.Result{
		Msg:  fmt.Sprintf("成功 %d 失败 %d", res.Successful, res.Failed),
		Data: SendBatchResp{Result: res},
	}, nil
}

// resultError 参数类失败由调用方修复，其余视为下游发送失败
func resultError(res domain.Result) error {
	switch res.Error.Code {
	case domain.ErrorCodeNoRecipient, domain.ErrorCodeInvalidPhone, domain.ErrorCodeInvalidTemplate:
		return fmt.Errorf("%w: %s", errs.ErrInvalidParameter, res.Error.Message)
	}
	return fmt.Errorf("%w: %s", errs.ErrSendNotificationFailed, res.Error.Message)
}
