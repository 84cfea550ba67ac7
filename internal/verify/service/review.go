package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/metrics"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/pkg/idx"
	"github.com/aussiebroadwan/hireproof/pkg/slogx"
)

// ReviewService applies admin moderation actions. Each action commits its
// state change, audit entry and outbox notification together or not at
// all.
type ReviewService struct {
	Store      store.Store
	Dispatcher Poker
	Metrics    *metrics.Metrics
	Now        func() time.Time
}

// ReviewDecision records outcome for a PENDING request. reason is
// required for REJECTED and ignored for VERIFIED.
func (s *ReviewService) ReviewDecision(
	ctx context.Context,
	session domain.AdminSession,
	requestID string,
	outcome domain.VerificationStatus,
	reason string,
) (domain.VerificationRequest, error) {
	if err := session.Authorize(); err != nil {
		return domain.VerificationRequest{}, err
	}
	if strings.TrimSpace(requestID) == "" {
		return domain.VerificationRequest{}, domain.Validation("verification id is required")
	}
	if !outcome.IsDecision() {
		return domain.VerificationRequest{}, domain.Validation("status must be VERIFIED or REJECTED")
	}

	reason = strings.TrimSpace(reason)
	if outcome == domain.StatusRejected {
		if reason == "" {
			return domain.VerificationRequest{}, domain.Validation("reason is required when rejecting")
		}
		if utf8.RuneCountInString(reason) > domain.MaxDecisionReason {
			return domain.VerificationRequest{}, domain.Validation("reason must be at most %d characters", domain.MaxDecisionReason)
		}
	} else {
		reason = ""
	}

	now := clock(s.Now).now()
	var vr domain.VerificationRequest
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireActive(ctx, tx.Users(), session.AdminUserID); err != nil {
			return err
		}
		var err error
		vr, err = tx.Verifications().DecideVerification(ctx, domain.VerificationDecision{
			RequestID: requestID,
			AdminID:   session.AdminUserID,
			Outcome:   outcome,
			Reason:    reason,
			DecidedAt: now,
		})
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.ErrNotFound
		case errors.Is(err, store.ErrConflict):
			return domain.ErrNotPending
		case err != nil:
			return fmt.Errorf("failed to record decision: %w", err)
		}

		subject, err := tx.Users().GetUserByID(ctx, vr.SubjectUserID)
		if err != nil {
			return fmt.Errorf("failed to load subject: %w", err)
		}

		meta := map[string]string{
			"outcome":       string(outcome),
			"subjectUserId": vr.SubjectUserID,
		}
		if reason != "" {
			meta["reason"] = reason
		}
		if err := appendAudit(ctx, tx.AuditLogs(), domain.AuditLogEntry{
			ActorAdminID: &session.AdminUserID,
			Action:       domain.ActionVerificationDecision,
			EntityType:   domain.EntityVerificationRequest,
			EntityID:     vr.ID,
			Metadata:     meta,
			CreatedAt:    now,
		}, now); err != nil {
			return err
		}

		template := domain.TemplateVerificationVerified
		if outcome == domain.StatusRejected {
			template = domain.TemplateVerificationRejected
		}
		return enqueue(ctx, tx.Outbox(), domain.Notification{
			IdempotencyKey: "verification:" + vr.ID + ":" + strconv.FormatInt(now.UnixNano(), 10),
			Recipient:      subject.Email,
			Template:       template,
			Data:           map[string]string{"name": subject.DisplayName, "reason": reason},
			CreatedAt:      now,
		})
	})
	if err != nil {
		return domain.VerificationRequest{}, err
	}

	s.poke()
	s.Metrics.IncDecision(string(outcome))
	slogx.FromContext(ctx).Info("verification decided",
		"verification_id", vr.ID,
		"outcome", outcome,
		"admin_id", session.AdminUserID,
	)
	return vr, nil
}

// SetUserStatus suspends or reactivates an account with the same
// guarantees as ReviewDecision.
func (s *ReviewService) SetUserStatus(
	ctx context.Context,
	session domain.AdminSession,
	userID string,
	status domain.UserStatus,
) (domain.User, error) {
	if err := session.Authorize(); err != nil {
		return domain.User{}, err
	}

	var (
		action   string
		template string
	)
	switch status {
	case domain.UserSuspended:
		action, template = domain.ActionUserSuspended, domain.TemplateAccountSuspended
	case domain.UserActive:
		action, template = domain.ActionUserActivated, domain.TemplateAccountActivated
	default:
		return domain.User{}, domain.Validation("unknown user status %q", status)
	}
	if status == domain.UserSuspended && userID == session.AdminUserID {
		return domain.User{}, domain.Validation("admins cannot suspend themselves")
	}

	now := clock(s.Now).now()
	var u domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireActive(ctx, tx.Users(), session.AdminUserID); err != nil {
			return err
		}
		var err error
		u, err = tx.Users().UpdateUserStatus(ctx, userID, status, now)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.ErrNotFound
		case errors.Is(err, store.ErrConflict):
			return domain.ErrUserStatusUnchanged
		case err != nil:
			return fmt.Errorf("failed to update user status: %w", err)
		}

		if err := appendAudit(ctx, tx.AuditLogs(), domain.AuditLogEntry{
			ActorAdminID: &session.AdminUserID,
			Action:       action,
			EntityType:   domain.EntityUser,
			EntityID:     u.ID,
			Metadata:     map[string]string{"status": string(status)},
			CreatedAt:    now,
		}, now); err != nil {
			return err
		}

		return enqueue(ctx, tx.Outbox(), domain.Notification{
			IdempotencyKey: "user:" + u.ID + ":" + string(status) + ":" + strconv.FormatInt(now.UnixNano(), 10),
			Recipient:      u.Email,
			Template:       template,
			Data:           map[string]string{"name": u.DisplayName},
			CreatedAt:      now,
		})
	})
	if err != nil {
		return domain.User{}, err
	}

	s.poke()
	slogx.FromContext(ctx).Info("user status changed",
		"user_id", u.ID,
		"status", status,
		"admin_id", session.AdminUserID,
	)
	return u, nil
}

func (s *ReviewService) poke() {
	if s.Dispatcher != nil {
		s.Dispatcher.Poke()
	}
}

func enqueue(ctx context.Context, outbox store.Outbox, n domain.Notification) error {
	if n.ID == "" {
		n.ID = string(idx.NewAt(n.CreatedAt))
	}
	n.NextAttemptAt = n.CreatedAt
	if err := outbox.EnqueueNotification(ctx, n); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}
