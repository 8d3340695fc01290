package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
)

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// MissingVariableError 渲染后仍有占位符未被替换
type MissingVariableError struct {
	Template  domain.TemplateID
	Variables []string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("%s: template = %s, variables = %s",
		errs.ErrMissingVariable, e.Template, strings.Join(e.Variables, ","))
}

func (e *MissingVariableError) Unwrap() error {
	return errs.ErrMissingVariable
}

// ValidationResult 预检查结果
type ValidationResult struct {
	Valid   bool
	Missing []string
}

// EmailContent 渲染后的邮件
type EmailContent struct {
	Subject string
	Body    string
}

type key struct {
	family domain.TemplateFamily
	id     domain.TemplateID
}

// Registry 模版注册表，构造完成后只读，可并发使用
type Registry struct {
	templates map[key]domain.Template
	logger    *elog.Component
}

// NewRegistry 创建模版注册表，同一模版族下的重复ID后者覆盖前者
func NewRegistry(templates ...domain.Template) *Registry {
	m := make(map[key]domain.Template, len(templates))
	for _, t := range templates {
		m[key{family: t.Family, id: t.ID}] = t
	}
	return &Registry{
		templates: m,
		logger:    elog.DefaultLogger,
	}
}

// NewDefaultRegistry 使用内置模版
func NewDefaultRegistry() *Registry {
	return NewRegistry(Defaults()...)
}

func (r *Registry) Get(family domain.TemplateFamily, id domain.TemplateID) (domain.Template, error) {
	t, ok := r.templates[key{family: family, id: id}]
	if !ok {
		return domain.Template{}, fmt.Errorf("%w: family = %s, template = %s", errs.ErrUnknownTemplate, family, id)
	}
	return t, nil
}

// Has 模版是否已注册
func (r *Registry) Has(family domain.TemplateFamily, id domain.TemplateID) bool {
	_, ok := r.templates[key{family: family, id: id}]
	return ok
}

// Render 渲染模版内容
// 超过 MaxLength 只记录告警，截断或拒绝由供应商决定
func (r *Registry) Render(family domain.TemplateFamily, id domain.TemplateID, vars map[string]string) (string, error) {
	t, err := r.Get(family, id)
	if err != nil {
		return "", err
	}
	content, err := substitute(t.ID, t.Content, vars)
	if err != nil {
		return "", err
	}
	if t.MaxLength > 0 {
		if n := utf8.RuneCountInString(content); n > t.MaxLength {
			r.logger.Warn("模版内容超出长度限制",
				elog.String("template", id.String()),
				elog.Int("length", n),
				elog.Int("maxLength", t.MaxLength))
		}
	}
	return content, nil
}

// RenderEmail 渲染邮件主题和正文
func (r *Registry) RenderEmail(id domain.TemplateID, vars map[string]string) (EmailContent, error) {
	t, err := r.Get(domain.TemplateFamilyEmail, id)
	if err != nil {
		return EmailContent{}, err
	}
	subject, err := substitute(t.ID, t.Subject, vars)
	if err != nil {
		return EmailContent{}, err
	}
	body, err := substitute(t.ID, t.Content, vars)
	if err != nil {
		return EmailContent{}, err
	}
	return EmailContent{Subject: subject, Body: body}, nil
}

// Validate 不返回错误的预检查，批量发送时用来跳过而不是中断
func (r *Registry) Validate(family domain.TemplateFamily, id domain.TemplateID, vars map[string]string) ValidationResult {
	t, err := r.Get(family, id)
	if err != nil {
		return ValidationResult{Valid: false}
	}
	required := append(slice.Map(placeholder.FindAllStringSubmatch(t.Subject+t.Content, -1),
		func(_ int, m []string) string { return m[1] }), t.RequiredVariables...)
	missing := missingOf(required, vars)
	return ValidationResult{
		Valid:   len(missing) == 0,
		Missing: missing,
	}
}

func substitute(id domain.TemplateID, content string, vars map[string]string) (string, error) {
	var unresolved []string
	rendered := placeholder.ReplaceAllStringFunc(content, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		if v, ok := vars[name]; ok {
			return v
		}
		unresolved = append(unresolved, name)
		return m
	})
	if len(unresolved) == 0 {
		return rendered, nil
	}
	return "", &MissingVariableError{
		Template:  id,
		Variables: missingOf(unresolved, vars),
	}
}

// missingOf 去重排序后的缺失变量
func missingOf(required []string, vars map[string]string) []string {
	set := make(map[string]struct{}, len(required))
	for _, name := range required {
		if _, ok := vars[name]; !ok {
			set[name] = struct{}{}
		}
	}
	res := make([]string, 0, len(set))
	for name := range set {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}
