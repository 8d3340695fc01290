package handler

import (
	"errors"
	"net/http"

	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/errs"
)

// Wrap 绑定请求并调用业务方法，按错误类型决定 HTTP 状态码
// 业务方法返回错误时响应体仍然使用它返回的 Result
func Wrap[Req any](fn func(ctx *ginx.Context, req Req) (ginx.Result, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Req
		// POST 空请求体时只依赖路径参数
		if c.Request.Method == http.MethodGet || hasBody(c.Request) {
			if err := c.ShouldBind(&req); err != nil {
				c.PureJSON(http.StatusBadRequest, ErrorResult(err))
				return
			}
		}
		res, err := fn(&ginx.Context{Context: c}, req)
		if err != nil {
			status := StatusOf(err)
			if status >= http.StatusInternalServerError {
				elog.DefaultLogger.Error("处理请求失败",
					elog.String("path", c.FullPath()),
					elog.FieldErr(err))
			}
			c.PureJSON(status, res)
			return
		}
		c.PureJSON(http.StatusOK, res)
	}
}

// hasBody 分块传输和测试构造的请求 ContentLength 可能为 0 或 -1，只看 Body 本身
func hasBody(req *http.Request) bool {
	return req.Body != nil && req.Body != http.NoBody
}

// StatusOf 错误对应的 HTTP 状态码
func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidParameter),
		errors.Is(err, errs.ErrBadRequest),
		errors.Is(err, errs.ErrInvalidLinkToken):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrHistoryNotFound),
		errors.Is(err, errs.ErrSessionNotFound),
		errors.Is(err, errs.ErrAthleteNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, errs.ErrSendNotificationFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// ErrorResult 系统错误不把内部信息返回给调用方
func ErrorResult(err error) ginx.Result {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		return ginx.Result{Code: status, Msg: "系统错误"}
	}
	return ginx.Result{Code: status, Msg: err.Error()}
}
