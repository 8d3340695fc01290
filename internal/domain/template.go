package domain

// TemplateFamily 模版族，邮件和消息类（短信、WhatsApp）模版各自独立
type TemplateFamily string

const (
	TemplateFamilyEmail     TemplateFamily = "email"
	TemplateFamilyMessaging TemplateFamily = "messaging"
)

func (f TemplateFamily) String() string {
	return string(f)
}

// TemplateID 模版标识，按模版族封闭枚举
type TemplateID string

const (
	TemplateWelcome             TemplateID = "welcome"
	TemplateSessionConfirmation TemplateID = "session_confirmation"
	TemplateSessionReminder     TemplateID = "session_reminder"
	TemplateSessionCancelled    TemplateID = "session_cancelled"
	TemplateVerificationCode    TemplateID = "verification_code"
	TemplatePasswordReset       TemplateID = "password_reset"
	TemplateInvitation          TemplateID = "invitation"
)

func (id TemplateID) String() string {
	return string(id)
}

// Template 模版，进程启动时注册，运行期只读
type Template struct {
	ID                TemplateID
	Family            TemplateFamily
	Subject           string // 仅邮件
	Content           string
	RequiredVariables []string
	MaxLength         int // 仅消息类，0 表示不限制
}

// Variables 模版变量
type Variables interface {
	Values() map[string]string
}

// RawVariables 未做类型约束的变量，用于反序列化和外部调用
type RawVariables map[string]string

func (v RawVariables) Values() map[string]string {
	return v
}

// WelcomeData welcome 模版变量
type WelcomeData struct {
	AppName string
	Name    string
}

func (d WelcomeData) Values() map[string]string {
	return compact(map[string]string{
		"appName": d.AppName,
		"name":    d.Name,
	})
}

// SessionConfirmationData 训练课出勤确认模版变量
type SessionConfirmationData struct {
	AthleteName      string
	SessionName      string
	SessionDate      string
	SessionTime      string
	Location         string
	ConfirmationURL  string
	OrganizationName string
}

func (d SessionConfirmationData) Values() map[string]string {
	return compact(map[string]string{
		"athleteName":      d.AthleteName,
		"sessionName":      d.SessionName,
		"sessionDate":      d.SessionDate,
		"sessionTime":      d.SessionTime,
		"location":         d.Location,
		"confirmationUrl":  d.ConfirmationURL,
		"organizationName": d.OrganizationName,
	})
}

// SessionReminderData 训练课提醒模版变量
type SessionReminderData struct {
	AthleteName string
	SessionName string
	SessionDate string
	SessionTime string
	Location    string
}

func (d SessionReminderData) Values() map[string]string {
	return compact(map[string]string{
		"athleteName": d.AthleteName,
		"sessionName": d.SessionName,
		"sessionDate": d.SessionDate,
		"sessionTime": d.SessionTime,
		"location":    d.Location,
	})
}

// SessionCancelledData 训练课取消模版变量
type SessionCancelledData struct {
	SessionName string
	SessionDate string
	Reason      string
}

func (d SessionCancelledData) Values() map[string]string {
	return compact(map[string]string{
		"sessionName": d.SessionName,
		"sessionDate": d.SessionDate,
		"reason":      d.Reason,
	})
}

// VerificationCodeData 验证码模版变量
type VerificationCodeData struct {
	AppName string
	Code    string
	Minutes string
}

func (d VerificationCodeData) Values() map[string]string {
	return compact(map[string]string{
		"appName": d.AppName,
		"code":    d.Code,
		"minutes": d.Minutes,
	})
}

// compact 去掉空值，空值与未提供等价
func compact(values map[string]string) map[string]string {
	for k, v := range values {
		if v == "" {
			delete(values, k)
		}
	}
	return values
}
