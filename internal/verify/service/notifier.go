package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/pkg/mailx"
)

// Mailer is satisfied by *mailx.Mailer.
type Mailer interface {
	Send(ctx context.Context, email mailx.Email) error
}

// EmailNotifier renders notifications and sends them over SMTP.
type EmailNotifier struct {
	Mailer Mailer
}

func (e *EmailNotifier) Send(ctx context.Context, n domain.Notification) error {
	subject, body, err := Render(n)
	if err != nil {
		return err
	}
	return e.Mailer.Send(ctx, mailx.Email{
		To:        []string{n.Recipient},
		Subject:   subject,
		Body:      body,
		MessageID: messageID(n.IdempotencyKey),
	})
}

// messageID turns an idempotency key into a valid Message-ID local part.
func messageID(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '.'
	}, key)
}

// LogNotifier writes rendered notifications to the log. Used when SMTP is
// not configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l *LogNotifier) Send(ctx context.Context, n domain.Notification) error {
	subject, body, err := Render(n)
	if err != nil {
		return err
	}
	l.Logger.InfoContext(ctx, "notification",
		"recipient", n.Recipient,
		"template", n.Template,
		"idempotency_key", n.IdempotencyKey,
		"subject", subject,
		"body", body,
	)
	return nil
}
