package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/metrics"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/pkg/idx"
	"github.com/aussiebroadwan/hireproof/pkg/objstore"
	"github.com/aussiebroadwan/hireproof/pkg/slogx"
)

// VerificationService owns the subject side of the verification lifecycle.
// Decisions go through ReviewService.
type VerificationService struct {
	Store   store.Store
	Storage ObjectStorage
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Submit moves the caller's request to PENDING with the given documents.
// Each document must be an id-documents upload issued to the caller and
// present in storage; the slots are consumed with the transition.
func (s *VerificationService) Submit(ctx context.Context, userID string, assets domain.VerificationAssets) (domain.VerificationRequest, error) {
	if err := assets.Validate(); err != nil {
		return domain.VerificationRequest{}, err
	}
	if err := requireActive(ctx, s.Store.Users(), userID); err != nil {
		return domain.VerificationRequest{}, err
	}

	current, err := s.GetBySubject(ctx, userID)
	if err != nil {
		return domain.VerificationRequest{}, err
	}
	if err := submitBlocked(current.Status); err != nil {
		return domain.VerificationRequest{}, err
	}

	now := clock(s.Now).now()
	slots := make([]domain.UploadSlot, 0, 3)
	for _, u := range assets.URLs() {
		slot, err := s.checkAsset(ctx, userID, u, now)
		if err != nil {
			return domain.VerificationRequest{}, err
		}
		slots = append(slots, slot)
	}

	var vr domain.VerificationRequest
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		vr, err = tx.Verifications().SubmitVerification(ctx, userID, assets, now)
		if errors.Is(err, store.ErrConflict) {
			// Lost a race with another submit or a decision.
			latest, getErr := tx.Verifications().GetVerificationBySubject(ctx, userID)
			if getErr != nil {
				return fmt.Errorf("failed to reload verification: %w", getErr)
			}
			if blocked := submitBlocked(latest.Status); blocked != nil {
				return blocked
			}
			return domain.ErrAlreadyPending
		}
		if err != nil {
			return fmt.Errorf("failed to submit verification: %w", err)
		}

		for _, slot := range slots {
			err := tx.UploadSlots().ConsumeUploadSlot(ctx, slot.AssetKey, now)
			if errors.Is(err, store.ErrConflict) {
				return domain.Validation("document %s was already used", slot.PublicURL)
			}
			if err != nil {
				return fmt.Errorf("failed to consume upload slot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.VerificationRequest{}, err
	}

	s.Metrics.IncSubmission()
	slogx.FromContext(ctx).Info("verification submitted", "verification_id", vr.ID)
	return vr, nil
}

func submitBlocked(status domain.VerificationStatus) error {
	switch status {
	case domain.StatusPending:
		return domain.ErrAlreadyPending
	case domain.StatusVerified:
		return domain.ErrAlreadyVerified
	}
	return nil
}

func (s *VerificationService) checkAsset(ctx context.Context, userID, publicURL string, now time.Time) (domain.UploadSlot, error) {
	slot, err := s.Store.UploadSlots().GetUploadSlotByPublicURL(ctx, publicURL)
	if errors.Is(err, store.ErrNotFound) {
		return domain.UploadSlot{}, domain.Validation("document %s was not issued by the upload broker", publicURL)
	}
	if err != nil {
		return domain.UploadSlot{}, fmt.Errorf("failed to load upload slot: %w", err)
	}

	if slot.IssuedToUserID != userID || slot.Folder != domain.FolderIDDocuments {
		return domain.UploadSlot{}, domain.Validation("document %s was not issued to you for identity verification", publicURL)
	}
	if slot.ConsumedAt != nil {
		return domain.UploadSlot{}, domain.Validation("document %s was already used", publicURL)
	}

	info, err := s.Storage.Stat(ctx, slot.AssetKey)
	if errors.Is(err, objstore.ErrNotFound) {
		if slot.Expired(now) {
			return domain.UploadSlot{}, domain.ErrSlotExpired
		}
		return domain.UploadSlot{}, domain.Validation("document %s has not been uploaded yet", publicURL)
	}
	if err != nil {
		return domain.UploadSlot{}, domain.Unavailable("object storage", err)
	}
	// The stored object must be what the slot was issued for.
	if domain.NormalizeContentType(info.ContentType) != slot.ContentType {
		return domain.UploadSlot{}, domain.ErrInvalidContentType
	}
	if info.Size <= 0 {
		return domain.UploadSlot{}, domain.Validation("document %s is empty", publicURL)
	}
	return slot, nil
}

// GetBySubject returns the caller's request, creating the NOT_STARTED row
// on first touch.
func (s *VerificationService) GetBySubject(ctx context.Context, userID string) (domain.VerificationRequest, error) {
	now := clock(s.Now).now()
	if err := s.Store.Verifications().EnsureVerification(ctx, string(idx.NewAt(now)), userID, now); err != nil {
		return domain.VerificationRequest{}, fmt.Errorf("failed to ensure verification: %w", err)
	}
	vr, err := s.Store.Verifications().GetVerificationBySubject(ctx, userID)
	if err != nil {
		return domain.VerificationRequest{}, fmt.Errorf("failed to load verification: %w", err)
	}
	return vr, nil
}

func (s *VerificationService) Get(ctx context.Context, id string) (domain.VerificationRequest, error) {
	vr, err := s.Store.Verifications().GetVerificationByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.VerificationRequest{}, domain.ErrNotFound
	}
	return vr, err
}

// List pages through requests in status, oldest submission first.
func (s *VerificationService) List(
	ctx context.Context,
	status domain.VerificationStatus,
	page domain.PageRequest,
) (domain.Page[domain.VerificationRequest], error) {
	page, err := page.Normalize()
	if err != nil {
		return domain.Page[domain.VerificationRequest]{}, err
	}

	items, err := s.Store.Verifications().ListVerificationsByStatus(ctx, status, page.Limit, page.Offset())
	if err != nil {
		return domain.Page[domain.VerificationRequest]{}, fmt.Errorf("failed to list verifications: %w", err)
	}
	total, err := s.Store.Verifications().CountVerificationsByStatus(ctx, status)
	if err != nil {
		return domain.Page[domain.VerificationRequest]{}, fmt.Errorf("failed to count verifications: %w", err)
	}

	return domain.Page[domain.VerificationRequest]{
		Items: items,
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	}, nil
}

// ListPending is the review queue.
func (s *VerificationService) ListPending(ctx context.Context, page domain.PageRequest) (domain.Page[domain.VerificationRequest], error) {
	return s.List(ctx, domain.StatusPending, page)
}
