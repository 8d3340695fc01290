package client

import "errors"

//go:generate mockgen -source=./types.go -destination=./mocks/client.mock.go -package=clientmocks Client

var (
	ErrInvalidParameter = errors.New("参数错误")
	ErrSendFailed       = errors.New("发送短信失败")
)

// OK 供应商返回的成功码
const OK = "OK"

// Client 短信 SDK 客户端
type Client interface {
	Send(req SendReq) (SendResp, error)
}

type SendReq struct {
	PhoneNumbers []string
	SignName     string
	TemplateID   string
	// TemplateParam 有序参数，腾讯云按位置填充
	TemplateParam []Param
}

type Param struct {
	Name  string
	Value string
}

type SendResp struct {
	RequestID string
	// PhoneNumbers 手机号到发送状态的映射
	PhoneNumbers map[string]SendRespStatus
}

type SendRespStatus struct {
	Code    string
	Message string
	// SerialNo 供应商流水号，没有时使用 RequestID
	SerialNo string
}
