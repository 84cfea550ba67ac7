package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/internal/verify/store/drivers/sqlite/gen"
)

type uploadSlotsRepo struct {
	q *gen.Queries
}

func (r *uploadSlotsRepo) CreateUploadSlot(ctx context.Context, s domain.UploadSlot) error {
	err := r.q.CreateUploadSlot(ctx, gen.CreateUploadSlotParams{
		AssetKey:       s.AssetKey,
		Folder:         string(s.Folder),
		ContentType:    s.ContentType,
		PublicUrl:      s.PublicURL,
		IssuedToUserID: s.IssuedToUserID,
		ExpiresAt:      toUnix(s.ExpiresAt),
		CreatedAt:      toUnix(s.CreatedAt),
	})
	return mapUniqueViolation(err)
}

func (r *uploadSlotsRepo) GetUploadSlotByPublicURL(ctx context.Context, publicURL string) (domain.UploadSlot, error) {
	row, err := r.q.GetUploadSlotByPublicURL(ctx, publicURL)
	if err != nil {
		return domain.UploadSlot{}, mapNotFound(err)
	}
	return mapUploadSlot(row), nil
}

func (r *uploadSlotsRepo) ConsumeUploadSlot(ctx context.Context, assetKey string, now time.Time) error {
	n, err := r.q.ConsumeUploadSlot(ctx, gen.ConsumeUploadSlotParams{
		ConsumedAt: nullTime(now),
		AssetKey:   assetKey,
	})
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	if _, err := r.q.GetUploadSlotByKey(ctx, assetKey); err != nil {
		return mapNotFound(err)
	}
	return store.ErrConflict
}

func (r *uploadSlotsRepo) DeleteStaleUploadSlots(ctx context.Context, before time.Time) (int64, error) {
	return r.q.DeleteStaleUploadSlots(ctx, toUnix(before))
}
