package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict means a conditional update matched no row because the
	// current state did not satisfy its precondition.
	ErrConflict = errors.New("store: conflict")

	// ErrAttemptsExhausted means a challenge saw more attempts than allowed.
	ErrAttemptsExhausted = errors.New("store: attempts exhausted")
)

// Store is the root data access interface. Sub-repositories are methods so
// the Tx-scoped store exposes the same surface and nested transactions are
// refused.
type Store interface {
	Users() Users
	Verifications() Verifications
	UploadSlots() UploadSlots
	MFAChallenges() MFAChallenges
	AuditLogs() AuditLogs
	Outbox() Outbox

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing on nil and rolling back
	// otherwise. Inside fn only tx's repositories may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	CountUsersByRole(ctx context.Context, role domain.Role) (int, error)

	// UpdateUserStatus returns ErrNotFound for an unknown id and
	// ErrConflict when the user already has status.
	UpdateUserStatus(ctx context.Context, id string, status domain.UserStatus, now time.Time) (domain.User, error)
}

type Verifications interface {
	// EnsureVerification creates a NOT_STARTED row for the subject if none
	// exists. It never changes an existing row.
	EnsureVerification(ctx context.Context, id, subjectUserID string, now time.Time) error

	// SubmitVerification moves NOT_STARTED or REJECTED to PENDING in one
	// conditional update, replacing the assets and clearing the previous
	// decision. ErrConflict when the row is in any other state.
	SubmitVerification(ctx context.Context, subjectUserID string, assets domain.VerificationAssets, now time.Time) (domain.VerificationRequest, error)

	// DecideVerification moves PENDING to the decision outcome.
	// ErrNotFound for an unknown id, ErrConflict when not PENDING.
	DecideVerification(ctx context.Context, d domain.VerificationDecision) (domain.VerificationRequest, error)

	GetVerificationByID(ctx context.Context, id string) (domain.VerificationRequest, error)
	GetVerificationBySubject(ctx context.Context, subjectUserID string) (domain.VerificationRequest, error)

	// ListVerificationsByStatus orders oldest submission first.
	ListVerificationsByStatus(ctx context.Context, status domain.VerificationStatus, limit, offset int) ([]domain.VerificationRequest, error)
	CountVerificationsByStatus(ctx context.Context, status domain.VerificationStatus) (int, error)
}

type UploadSlots interface {
	CreateUploadSlot(ctx context.Context, s domain.UploadSlot) error
	GetUploadSlotByPublicURL(ctx context.Context, publicURL string) (domain.UploadSlot, error)

	// ConsumeUploadSlot marks the slot used. ErrConflict if already consumed.
	ConsumeUploadSlot(ctx context.Context, assetKey string, now time.Time) error

	// DeleteStaleUploadSlots removes unconsumed slots that expired before
	// the cutoff.
	DeleteStaleUploadSlots(ctx context.Context, before time.Time) (int64, error)
}

// MFAChallenges holds at most one challenge per admin. Implemented by the
// sqlite store and by the redis driver.
type MFAChallenges interface {
	// UpsertChallenge replaces any existing challenge for the admin.
	UpsertChallenge(ctx context.Context, c domain.MFAChallenge) error
	GetChallenge(ctx context.Context, adminUserID string) (domain.MFAChallenge, error)

	// IncrementChallengeAttempts bumps the counter of the named challenge
	// and returns the new count. ErrNotFound if it was superseded.
	IncrementChallengeAttempts(ctx context.Context, adminUserID, challengeID string) (int, error)

	// ConsumeChallenge marks the named challenge used exactly once, and only
	// while its attempt count is at most maxAttempts. ErrConflict if already
	// consumed, ErrAttemptsExhausted past the limit, ErrNotFound if superseded.
	ConsumeChallenge(ctx context.Context, adminUserID, challengeID string, now time.Time, maxAttempts int) error

	// DeleteChallenge removes the named challenge if it is still current.
	DeleteChallenge(ctx context.Context, adminUserID, challengeID string) error

	// DeleteExpiredChallenges removes challenges that expired before the
	// cutoff.
	DeleteExpiredChallenges(ctx context.Context, before time.Time) (int64, error)
}

// AuditLogs is append-only: no update or delete exists at any layer.
type AuditLogs interface {
	AppendAuditLog(ctx context.Context, e domain.AuditLogEntry) error

	// QueryAuditLogs orders newest first.
	QueryAuditLogs(ctx context.Context, f domain.AuditFilter, limit, offset int) ([]domain.AuditLogEntry, error)
	CountAuditLogs(ctx context.Context, f domain.AuditFilter) (int, error)
}

type Outbox interface {
	// EnqueueNotification is a no-op when the idempotency key exists.
	EnqueueNotification(ctx context.Context, n domain.Notification) error

	// ClaimDueNotifications leases up to limit unsent rows due at now by
	// pushing their next_attempt_at to leaseUntil, so a concurrent claimer
	// skips them.
	ClaimDueNotifications(ctx context.Context, now, leaseUntil time.Time, limit int) ([]domain.Notification, error)

	MarkNotificationSent(ctx context.Context, id string, now time.Time) error
	MarkNotificationRetry(ctx context.Context, id string, attempts int, next time.Time, lastErr string) error
	MarkNotificationFailed(ctx context.Context, id string, attempts int, now time.Time, lastErr string) error

	GetNotificationByIdempotencyKey(ctx context.Context, key string) (domain.Notification, error)
	DeleteSentNotificationsBefore(ctx context.Context, before time.Time) (int64, error)
}
