package service

import (
	"context"
	"crypto/subtle"
	"encoding/base32"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/metrics"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/pkg/cryptox"
	"github.com/aussiebroadwan/hireproof/pkg/idx"
	"github.com/aussiebroadwan/hireproof/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

const (
	DefaultChallengeTTL    = 5 * time.Minute
	DefaultResendCooldown  = 60 * time.Second
	DefaultMaxAttempts     = 5
	DefaultMFASendTimeout  = 10 * time.Second
	challengeDigits        = 6
	challengeSecretEntropy = cryptox.TokenSize160
)

// MFAService is the second factor for admin sessions: a one-time code
// emailed per challenge. It only proves possession of the mailbox; the
// password check happens in UserService.
type MFAService struct {
	Challenges store.MFAChallenges
	Notifier   Notifier
	Metrics    *metrics.Metrics

	TTL            time.Duration
	ResendCooldown time.Duration
	MaxAttempts    int
	SendTimeout    time.Duration
	Now            func() time.Time
}

func (s *MFAService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultChallengeTTL
}

func (s *MFAService) cooldown() time.Duration {
	if s.ResendCooldown > 0 {
		return s.ResendCooldown
	}
	return DefaultResendCooldown
}

func (s *MFAService) maxAttempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return DefaultMaxAttempts
}

// IssueChallenge emails a fresh code to admin and supersedes any earlier
// challenge. While the current challenge is active, a new one is refused
// until the resend cooldown has passed.
func (s *MFAService) IssueChallenge(ctx context.Context, admin domain.User) error {
	if !admin.IsAdmin() {
		return domain.ErrUnauthorized
	}
	now := clock(s.Now).now()

	existing, err := s.Challenges.GetChallenge(ctx, admin.ID)
	switch {
	case err == nil:
		if existing.Active(now) && now.Sub(existing.IssuedAt) < s.cooldown() {
			return domain.ErrResendTooSoon
		}
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("failed to load challenge: %w", err)
	}

	code, err := generateCode(now)
	if err != nil {
		return err
	}

	c := domain.MFAChallenge{
		ID:          string(idx.NewAt(now)),
		AdminUserID: admin.ID,
		CodeHash:    cryptox.FingerprintToken(code),
		Digits:      challengeDigits,
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.ttl()),
	}
	if err := s.Challenges.UpsertChallenge(ctx, c); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}

	timeout := s.SendTimeout
	if timeout <= 0 {
		timeout = DefaultMFASendTimeout
	}
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err = s.Notifier.Send(sendCtx, domain.Notification{
		ID:             c.ID,
		IdempotencyKey: "mfa:" + c.ID,
		Recipient:      admin.Email,
		Template:       domain.TemplateMFACode,
		Data: map[string]string{
			"name":             admin.DisplayName,
			"code":             code,
			"expiresInMinutes": strconv.Itoa(int(s.ttl().Minutes())),
		},
		CreatedAt: now,
	})
	if err != nil {
		// A code nobody received must not count towards the cooldown.
		if delErr := s.Challenges.DeleteChallenge(context.WithoutCancel(ctx), admin.ID, c.ID); delErr != nil {
			slogx.FromContext(ctx).Error("failed to delete undelivered challenge", "error", delErr)
		}
		return domain.Unavailable("mfa code delivery", err)
	}

	slogx.FromContext(ctx).Info("mfa challenge issued", "challenge_id", c.ID, "expires_at", c.ExpiresAt)
	return nil
}

// VerifyChallenge checks code against the admin's current challenge and
// consumes it on success.
func (s *MFAService) VerifyChallenge(ctx context.Context, adminID, code string) (domain.AdminSession, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.AdminSession{}, domain.Validation("otp is required")
	}
	now := clock(s.Now).now()

	c, err := s.Challenges.GetChallenge(ctx, adminID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.AdminSession{}, s.fail(domain.ErrNoActiveChallenge, "missing")
	}
	if err != nil {
		return domain.AdminSession{}, fmt.Errorf("failed to load challenge: %w", err)
	}

	switch {
	case c.ConsumedAt != nil:
		return domain.AdminSession{}, s.fail(domain.ErrNoActiveChallenge, "missing")
	case c.Expired(now):
		return domain.AdminSession{}, s.fail(domain.ErrChallengeExpired, "expired")
	case c.AttemptCount >= s.maxAttempts():
		return domain.AdminSession{}, s.fail(domain.ErrTooManyAttempts, "locked")
	}

	// Every attempt is counted before the code is compared, so concurrent
	// guesses each get their own slot against the limit.
	n, err := s.Challenges.IncrementChallengeAttempts(ctx, adminID, c.ID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.AdminSession{}, s.fail(domain.ErrNoActiveChallenge, "missing")
	}
	if err != nil {
		return domain.AdminSession{}, fmt.Errorf("failed to record attempt: %w", err)
	}
	if n > s.maxAttempts() {
		return domain.AdminSession{}, s.fail(domain.ErrTooManyAttempts, "locked")
	}

	if subtle.ConstantTimeCompare([]byte(cryptox.FingerprintToken(code)), []byte(c.CodeHash)) != 1 {
		if n >= s.maxAttempts() {
			return domain.AdminSession{}, s.fail(domain.ErrTooManyAttempts, "locked")
		}
		return domain.AdminSession{}, s.fail(domain.ErrInvalidCode, "invalid")
	}

	err = s.Challenges.ConsumeChallenge(ctx, adminID, c.ID, now, s.maxAttempts())
	switch {
	case errors.Is(err, store.ErrAttemptsExhausted):
		return domain.AdminSession{}, s.fail(domain.ErrTooManyAttempts, "locked")
	case errors.Is(err, store.ErrConflict), errors.Is(err, store.ErrNotFound):
		return domain.AdminSession{}, s.fail(domain.ErrNoActiveChallenge, "missing")
	case err != nil:
		return domain.AdminSession{}, fmt.Errorf("failed to consume challenge: %w", err)
	}

	s.Metrics.IncMFAVerification("ok")
	return domain.AdminSession{
		AdminUserID: adminID,
		Role:        domain.RoleAdmin,
		MFAComplete: true,
		IssuedAt:    now,
	}, nil
}

func (s *MFAService) fail(err error, result string) error {
	s.Metrics.IncMFAVerification(result)
	return err
}

// generateCode derives a 6-digit HOTP code from a throwaway secret.
func generateCode(now time.Time) (string, error) {
	raw, err := cryptox.RandomBytes(challengeSecretEntropy)
	if err != nil {
		return "", err
	}
	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw)

	code, err := hotp.GenerateCodeCustom(secret, uint64(now.Unix()), hotp.ValidateOpts{
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate mfa code: %w", err)
	}
	return code, nil
}
