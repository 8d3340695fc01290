package phone

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/service/provider"
	"club-notification/internal/service/provider/phone/client"
)

var _ provider.Provider = (*SDKProvider)(nil)

// SDKProvider 基于云厂商短信 SDK 的供应商
// 云厂商只接受审核过的模版，正文由供应商按模版ID和参数生成
type SDKProvider struct {
	name      string
	client    client.Client
	signName  string
	templates map[string]string
}

func (p *SDKProvider) Send(_ context.Context, msg provider.Message) (provider.Receipt, error) {
	templateID, ok := p.templates[msg.Template.String()]
	if !ok {
		// 换到其他供应商仍可能成功，但单独重试本供应商不会成功
		return provider.Receipt{}, fmt.Errorf("%w: %w", errs.ErrNoAvailableProvider, &provider.Error{
			Code:       string(domain.ErrorCodeInvalidTemplate),
			Message:    fmt.Sprintf("供应商 %s 未配置模版 %q", p.name, msg.Template),
			HTTPStatus: http.StatusBadRequest,
		})
	}

	resp, err := p.client.Send(client.SendReq{
		PhoneNumbers:  []string{msg.To},
		SignName:      p.signName,
		TemplateID:    templateID,
		TemplateParam: orderedParams(msg.Params),
	})
	if err != nil {
		return provider.Receipt{}, fmt.Errorf("%w: %w", errs.ErrSendNotificationFailed, err)
	}

	status, ok := resp.PhoneNumbers[msg.To]
	if !ok {
		return provider.Receipt{}, fmt.Errorf("%w: 响应缺少号码 %s 的状态", errs.ErrSendNotificationFailed, msg.To)
	}
	if !strings.EqualFold(status.Code, client.OK) {
		return provider.Receipt{}, sdkError(status)
	}

	id := status.SerialNo
	if id == "" {
		id = resp.RequestID
	}
	return provider.Receipt{
		ID:        id,
		Status:    "sent",
		CreatedAt: time.Now(),
	}, nil
}

// orderedParams 按参数名排序，保证位置参数稳定
func orderedParams(params map[string]string) []client.Param {
	res := make([]client.Param, 0, len(params))
	for k, v := range params {
		res = append(res, client.Param{Name: k, Value: v})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res
}

// sdkError 云厂商错误码没有 HTTP 状态，按关键字归类
func sdkError(status client.SendRespStatus) *provider.Error {
	code := strings.ToUpper(status.Code)
	pe := &provider.Error{Code: status.Code, Message: status.Message, HTTPStatus: http.StatusBadRequest}
	switch {
	case strings.Contains(code, "LIMIT"):
		pe.HTTPStatus = http.StatusTooManyRequests
	case strings.Contains(code, "BLACK"):
		pe.Code = string(domain.ErrorCodeBlocked)
	case strings.Contains(code, "SYSTEM"), strings.Contains(code, "INTERNAL"):
		pe.HTTPStatus = http.StatusBadGateway
	}
	return pe
}

func NewSDKProvider(name string, c client.Client, signName string, templates map[string]string) *SDKProvider {
	return &SDKProvider{
		name:      name,
		client:    c,
		signName:  signName,
		templates: templates,
	}
}
