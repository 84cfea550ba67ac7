package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/metrics"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/pkg/idx"
	"github.com/aussiebroadwan/hireproof/pkg/slogx"
)

const DefaultSlotTTL = 10 * time.Minute

// UploadService hands out presigned, single-use upload slots.
type UploadService struct {
	Store   store.Store
	Storage ObjectStorage
	Metrics *metrics.Metrics

	// SlotTTL bounds how long the presigned URL accepts writes.
	SlotTTL time.Duration
	Now     func() time.Time
}

// IssueUploadSlot checks the folder policy for caller and returns a fresh
// slot. Every call produces a new asset key.
func (s *UploadService) IssueUploadSlot(
	ctx context.Context,
	caller domain.Principal,
	filename, contentType string,
	folder domain.UploadFolder,
) (domain.UploadSlotGrant, error) {
	if strings.TrimSpace(filename) == "" {
		return domain.UploadSlotGrant{}, domain.Validation("filename is required")
	}

	policy, ok := domain.FolderPolicies[folder]
	if !ok || !policy.AllowsRole(caller.Role) {
		return domain.UploadSlotGrant{}, domain.ErrUnauthorizedFolder
	}

	ct := domain.NormalizeContentType(contentType)
	if !policy.AllowsContentType(ct) {
		return domain.UploadSlotGrant{}, domain.ErrInvalidContentType
	}
	if err := requireActive(ctx, s.Store.Users(), caller.UserID); err != nil {
		return domain.UploadSlotGrant{}, err
	}

	ttl := s.SlotTTL
	if ttl <= 0 {
		ttl = DefaultSlotTTL
	}
	now := clock(s.Now).now()

	// The client filename never reaches the key.
	key := fmt.Sprintf("%s/%s/%s%s", folder, caller.UserID, idx.NewAt(now), domain.ExtensionFor(ct))

	uploadURL, err := s.Storage.PresignPut(ctx, key, ct, ttl)
	if err != nil {
		return domain.UploadSlotGrant{}, domain.Unavailable("object storage", err)
	}

	slot := domain.UploadSlot{
		AssetKey:       key,
		Folder:         folder,
		ContentType:    ct,
		PublicURL:      s.Storage.PublicURL(key),
		IssuedToUserID: caller.UserID,
		ExpiresAt:      now.Add(ttl),
		CreatedAt:      now,
	}
	if err := s.Store.UploadSlots().CreateUploadSlot(ctx, slot); err != nil {
		return domain.UploadSlotGrant{}, fmt.Errorf("failed to record upload slot: %w", err)
	}

	s.Metrics.IncUploadSlot(string(folder))
	slogx.FromContext(ctx).Debug("upload slot issued",
		"folder", folder,
		"asset_key", key,
		"filename", domain.SanitizeFilename(filename),
	)

	return domain.UploadSlotGrant{
		UploadURL: uploadURL,
		PublicURL: slot.PublicURL,
		AssetKey:  key,
		ExpiresAt: slot.ExpiresAt,
	}, nil
}
