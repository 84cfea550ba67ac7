package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/pkg/mailx"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplates(t *testing.T) {
	for _, name := range []string{
		domain.TemplateMFACode,
		domain.TemplateVerificationVerified,
		domain.TemplateVerificationRejected,
		domain.TemplateAccountSuspended,
		domain.TemplateAccountActivated,
	} {
		t.Run(name, func(t *testing.T) {
			subject, body, err := Render(domain.Notification{
				Template: name,
				Data:     map[string]string{"name": "Sam", "code": "123456", "reason": "blurry", "expiresInMinutes": "5"},
			})
			require.NoError(t, err)
			require.NotEmpty(t, subject)
			require.Contains(t, body, "Hi Sam")
		})
	}

	_, body, err := Render(domain.Notification{Template: domain.TemplateVerificationRejected, Data: map[string]string{"reason": "expired passport"}})
	require.NoError(t, err)
	require.Contains(t, body, "Reason: expired passport")

	_, _, err = Render(domain.Notification{Template: "nope"})
	require.Error(t, err)
}

type recordingMailer struct {
	sent []mailx.Email
}

func (m *recordingMailer) Send(_ context.Context, e mailx.Email) error {
	m.sent = append(m.sent, e)
	return nil
}

func TestEmailNotifier(t *testing.T) {
	m := &recordingMailer{}
	n := &EmailNotifier{Mailer: m}

	require.NoError(t, n.Send(context.Background(), domain.Notification{
		IdempotencyKey: "verification:01HX:1700",
		Recipient:      "seeker@example.com",
		Template:       domain.TemplateVerificationVerified,
		Data:           map[string]string{"name": "Sam"},
	}))
	require.Len(t, m.sent, 1)
	require.Equal(t, []string{"seeker@example.com"}, m.sent[0].To)
	require.Equal(t, "verification.01HX.1700", m.sent[0].MessageID)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := &LogNotifier{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	require.NoError(t, n.Send(context.Background(), domain.Notification{
		Recipient: "admin@example.com",
		Template:  domain.TemplateMFACode,
		Data:      map[string]string{"name": "Admin", "code": "654321", "expiresInMinutes": "5"},
	}))
	require.Contains(t, buf.String(), "654321")
	require.Contains(t, buf.String(), `"template":"mfa_code"`)
}
