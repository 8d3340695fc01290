package client

import (
	"fmt"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	sms "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
)

var _ Client = (*TencentSMS)(nil)

// TencentSMS 腾讯云短信实现
type TencentSMS struct {
	client *sms.Client
	appID  string
}

func (c *TencentSMS) Send(req SendReq) (SendResp, error) {
	if len(req.PhoneNumbers) == 0 {
		return SendResp{}, fmt.Errorf("%w: %v", ErrInvalidParameter, "手机号码不能为空")
	}

	request := sms.NewSendSmsRequest()
	request.SmsSdkAppId = common.StringPtr(c.appID)
	request.SignName = common.StringPtr(req.SignName)
	request.TemplateId = common.StringPtr(req.TemplateID)
	request.PhoneNumberSet = common.StringPtrs(req.PhoneNumbers)
	// 腾讯云模版参数按位置填充
	request.TemplateParamSet = common.StringPtrs(slice.Map(req.TemplateParam, func(_ int, src Param) string {
		return src.Value
	}))

	response, err := c.client.SendSms(request)
	if err != nil {
		return SendResp{}, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	if response.Response == nil {
		return SendResp{}, fmt.Errorf("%w: %v", ErrSendFailed, "响应异常")
	}

	result := SendResp{
		PhoneNumbers: make(map[string]SendRespStatus, len(response.Response.SendStatusSet)),
	}
	if response.Response.RequestId != nil {
		result.RequestID = *response.Response.RequestId
	}
	for _, status := range response.Response.SendStatusSet {
		if status == nil || status.PhoneNumber == nil {
			continue
		}
		result.PhoneNumbers[*status.PhoneNumber] = SendRespStatus{
			Code:     strings.ToUpper(value(status.Code)),
			Message:  value(status.Message),
			SerialNo: value(status.SerialNo),
		}
	}
	return result, nil
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NewTencentSMS 创建腾讯云短信实例
func NewTencentSMS(regionID, appID, secretID, secretKey string) (*TencentSMS, error) {
	credential := common.NewCredential(secretID, secretKey)
	client, err := sms.NewClient(credential, regionID, profile.NewClientProfile())
	if err != nil {
		return nil, err
	}
	return &TencentSMS{client: client, appID: appID}, nil
}
