package service

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
)

type messageTemplate struct {
	subject string
	body    *template.Template
}

func mustTemplate(name, subject, body string) messageTemplate {
	return messageTemplate{
		subject: subject,
		body:    template.Must(template.New(name).Option("missingkey=zero").Parse(body)),
	}
}

var templates = map[string]messageTemplate{
	domain.TemplateMFACode: mustTemplate(domain.TemplateMFACode,
		"Your hireproof admin sign-in code",
		`Hi {{.name}},

Your sign-in code is {{.code}}. It expires in {{.expiresInMinutes}} minutes.

If you did not try to sign in, change your password and contact security.
`),

	domain.TemplateVerificationVerified: mustTemplate(domain.TemplateVerificationVerified,
		"Your identity has been verified",
		`Hi {{.name}},

Good news: your identity documents were reviewed and your account is now verified.
`),

	domain.TemplateVerificationRejected: mustTemplate(domain.TemplateVerificationRejected,
		"We could not verify your identity",
		`Hi {{.name}},

We reviewed your identity documents but could not verify them.

Reason: {{.reason}}

You can upload new documents and submit again at any time.
`),

	domain.TemplateAccountSuspended: mustTemplate(domain.TemplateAccountSuspended,
		"Your account has been suspended",
		`Hi {{.name}},

Your hireproof account has been suspended by an administrator. Contact support if you believe this is a mistake.
`),

	domain.TemplateAccountActivated: mustTemplate(domain.TemplateAccountActivated,
		"Your account is active again",
		`Hi {{.name}},

Your hireproof account has been reactivated. You can sign in again.
`),
}

// Render produces the subject and plain-text body for n.
func Render(n domain.Notification) (subject, body string, err error) {
	t, ok := templates[n.Template]
	if !ok {
		return "", "", fmt.Errorf("unknown notification template %q", n.Template)
	}
	var buf bytes.Buffer
	if err := t.body.Execute(&buf, n.Data); err != nil {
		return "", "", fmt.Errorf("render %s: %w", n.Template, err)
	}
	return t.subject, buf.String(), nil
}
