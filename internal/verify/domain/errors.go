package domain

import (
	"errors"
	"fmt"
)

// Kind groups errors by how a caller should react to them.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindUnauthorized
	KindMFARequired
	KindNotFound
	KindStateConflict
	KindSlotExpired
	KindInvalidContentType
	KindChallengeExpired
	KindTooManyAttempts
	KindRateLimited
	KindDependencyUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindMFARequired:
		return "mfa_required"
	case KindNotFound:
		return "not_found"
	case KindStateConflict:
		return "state_conflict"
	case KindSlotExpired:
		return "slot_expired"
	case KindInvalidContentType:
		return "invalid_content_type"
	case KindChallengeExpired:
		return "challenge_expired"
	case KindTooManyAttempts:
		return "too_many_attempts"
	case KindRateLimited:
		return "rate_limited"
	case KindDependencyUnavailable:
		return "dependency_unavailable"
	default:
		return "internal"
	}
}

// Error is a typed failure with a stable machine code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches on Code so wrapped copies of a sentinel compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Validation returns an ad-hoc validation error.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Code: "validation_error", Message: fmt.Sprintf(format, args...)}
}

// Verification state.
var (
	ErrAlreadyPending  = newError(KindStateConflict, "already_pending", "a verification request is already pending review")
	ErrAlreadyVerified = newError(KindStateConflict, "already_verified", "identity is already verified")
	ErrNotPending      = newError(KindStateConflict, "not_pending", "verification request is not pending")
)

// Admin authorization.
var (
	ErrUnauthorized = newError(KindUnauthorized, "forbidden", "admin role required")
	ErrMFARequired  = newError(KindMFARequired, "mfa_required", "complete multi-factor authentication first")
)

// MFA challenge.
var (
	ErrChallengeExpired  = newError(KindChallengeExpired, "challenge_expired", "verification code has expired")
	ErrNoActiveChallenge = newError(KindChallengeExpired, "no_active_challenge", "no active verification code, request a new one")
	ErrTooManyAttempts   = newError(KindTooManyAttempts, "too_many_attempts", "too many incorrect codes, request a new one")
	ErrInvalidCode       = newError(KindUnauthenticated, "invalid_code", "incorrect verification code")
	ErrResendTooSoon     = newError(KindRateLimited, "resend_too_soon", "please wait before requesting another code")
)

// Upload broker.
var (
	ErrSlotExpired        = newError(KindSlotExpired, "slot_expired", "upload slot has expired")
	ErrInvalidContentType = newError(KindInvalidContentType, "invalid_content_type", "content type not allowed for this folder")
	ErrUnauthorizedFolder = newError(KindUnauthorized, "unauthorized_folder", "uploads to this folder are not permitted")
)

// Accounts.
var (
	ErrInvalidCredentials  = newError(KindUnauthenticated, "invalid_credentials", "invalid email or password")
	ErrAccountSuspended    = newError(KindUnauthorized, "account_suspended", "account is suspended")
	ErrAccountMissing      = newError(KindUnauthenticated, "account_missing", "account no longer exists")
	ErrEmailTaken          = newError(KindStateConflict, "email_taken", "email is already registered")
	ErrUserStatusUnchanged = newError(KindStateConflict, "status_unchanged", "user is already in that status")
)

var (
	ErrDependencyUnavailable = newError(KindDependencyUnavailable, "dependency_unavailable", "a required service is unavailable")
	ErrNotFound              = newError(KindNotFound, "not_found", "resource not found")
)

// KindOf returns the Kind of the first *Error in err's chain, or
// KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Unavailable wraps cause as a dependency failure.
func Unavailable(what string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrDependencyUnavailable, what, cause)
}
