package domain

import "time"

// Notification templates.
const (
	TemplateMFACode              = "mfa_code"
	TemplateVerificationVerified = "verification_verified"
	TemplateVerificationRejected = "verification_rejected"
	TemplateAccountSuspended     = "account_suspended"
	TemplateAccountActivated     = "account_activated"
)

// Notification is one outbox row. IdempotencyKey is unique; enqueueing the
// same key twice is a no-op.
type Notification struct {
	ID             string
	IdempotencyKey string
	Recipient      string
	Template       string
	Data           map[string]string
	Attempts       int
	NextAttemptAt  time.Time
	SentAt         *time.Time
	FailedAt       *time.Time
	LastError      string
	CreatedAt      time.Time
}
