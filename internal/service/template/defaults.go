package template

import "club-notification/internal/domain"

const (
	// 单条短信长度
	smsMaxLength = 160
	// 带链接的消息允许拼接为两条
	linkMessageMaxLength = 320
)

// Defaults 内置模版
func Defaults() []domain.Template {
	return []domain.Template{
		// 消息类
		{
			ID:                domain.TemplateWelcome,
			Family:            domain.TemplateFamilyMessaging,
			Content:           "Welcome to {{appName}}, {{name}}! We're excited to have you on board.",
			RequiredVariables: []string{"appName", "name"},
			MaxLength:         smsMaxLength,
		},
		{
			ID:     domain.TemplateSessionConfirmation,
			Family: domain.TemplateFamilyMessaging,
			Content: "Hi {{athleteName}}, please confirm your attendance for {{sessionName}} " +
				"on {{sessionDate}} at {{sessionTime}}: {{confirmationUrl}}",
			RequiredVariables: []string{"athleteName", "sessionName", "sessionDate", "sessionTime", "confirmationUrl"},
			MaxLength:         linkMessageMaxLength,
		},
		{
			ID:                domain.TemplateSessionReminder,
			Family:            domain.TemplateFamilyMessaging,
			Content:           "Reminder: {{sessionName}} starts on {{sessionDate}} at {{sessionTime}}. See you there, {{athleteName}}!",
			RequiredVariables: []string{"athleteName", "sessionName", "sessionDate", "sessionTime"},
			MaxLength:         smsMaxLength,
		},
		{
			ID:                domain.TemplateSessionCancelled,
			Family:            domain.TemplateFamilyMessaging,
			Content:           "{{sessionName}} on {{sessionDate}} has been cancelled. {{reason}}",
			RequiredVariables: []string{"sessionName", "sessionDate", "reason"},
			MaxLength:         smsMaxLength,
		},
		{
			ID:                domain.TemplateVerificationCode,
			Family:            domain.TemplateFamilyMessaging,
			Content:           "Your {{appName}} verification code is {{code}}. It expires in {{minutes}} minutes.",
			RequiredVariables: []string{"appName", "code", "minutes"},
			MaxLength:         smsMaxLength,
		},

		// 邮件
		{
			ID:      domain.TemplateWelcome,
			Family:  domain.TemplateFamilyEmail,
			Subject: "Welcome to {{appName}}",
			Content: "<p>Hi {{name}},</p>" +
				"<p>Welcome to {{appName}}! We're excited to have you on board.</p>",
			RequiredVariables: []string{"appName", "name"},
		},
		{
			ID:      domain.TemplateSessionConfirmation,
			Family:  domain.TemplateFamilyEmail,
			Subject: "Confirm your attendance: {{sessionName}}",
			Content: "<p>Hi {{athleteName}},</p>" +
				"<p>Please confirm your attendance for <strong>{{sessionName}}</strong> " +
				"on {{sessionDate}} at {{sessionTime}}.</p>" +
				`<p><a href="{{confirmationUrl}}">Confirm attendance</a></p>`,
			RequiredVariables: []string{"athleteName", "sessionName", "sessionDate", "sessionTime", "confirmationUrl"},
		},
		{
			ID:      domain.TemplateSessionReminder,
			Family:  domain.TemplateFamilyEmail,
			Subject: "Reminder: {{sessionName}}",
			Content: "<p>Hi {{athleteName}},</p>" +
				"<p>{{sessionName}} starts on {{sessionDate}} at {{sessionTime}}. See you there!</p>",
			RequiredVariables: []string{"athleteName", "sessionName", "sessionDate", "sessionTime"},
		},
		{
			ID:      domain.TemplatePasswordReset,
			Family:  domain.TemplateFamilyEmail,
			Subject: "Reset your {{appName}} password",
			Content: "<p>Hi {{name}},</p>" +
				`<p>Use the link below to reset your password:</p><p><a href="{{resetUrl}}">Reset password</a></p>`,
			RequiredVariables: []string{"appName", "name", "resetUrl"},
		},
		{
			ID:      domain.TemplateInvitation,
			Family:  domain.TemplateFamilyEmail,
			Subject: "{{organizationName}} invited you to {{appName}}",
			Content: "<p>Hi {{name}},</p>" +
				"<p>{{organizationName}} invited you to join {{appName}}.</p>" +
				`<p><a href="{{inviteUrl}}">Accept invitation</a></p>`,
			RequiredVariables: []string{"appName", "name", "organizationName", "inviteUrl"},
		},
	}
}
