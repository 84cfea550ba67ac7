package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/internal/verify/store/drivers/sqlite/gen"
)

type mfaChallengesRepo struct {
	q *gen.Queries
}

func (r *mfaChallengesRepo) UpsertChallenge(ctx context.Context, c domain.MFAChallenge) error {
	return r.q.UpsertChallenge(ctx, gen.UpsertChallengeParams{
		AdminUserID: c.AdminUserID,
		ID:          c.ID,
		CodeHash:    c.CodeHash,
		Digits:      int64(c.Digits),
		IssuedAt:    toUnix(c.IssuedAt),
		ExpiresAt:   toUnix(c.ExpiresAt),
	})
}

func (r *mfaChallengesRepo) GetChallenge(ctx context.Context, adminUserID string) (domain.MFAChallenge, error) {
	row, err := r.q.GetChallenge(ctx, adminUserID)
	if err != nil {
		return domain.MFAChallenge{}, mapNotFound(err)
	}
	return mapChallenge(row), nil
}

func (r *mfaChallengesRepo) IncrementChallengeAttempts(ctx context.Context, adminUserID, challengeID string) (int, error) {
	n, err := r.q.IncrementChallengeAttempts(ctx, gen.IncrementChallengeAttemptsParams{
		AdminUserID: adminUserID,
		ID:          challengeID,
	})
	if err != nil {
		return 0, mapNotFound(err)
	}
	return int(n), nil
}

func (r *mfaChallengesRepo) ConsumeChallenge(ctx context.Context, adminUserID, challengeID string, now time.Time, maxAttempts int) error {
	n, err := r.q.ConsumeChallenge(ctx, gen.ConsumeChallengeParams{
		ConsumedAt:   nullTime(now),
		AdminUserID:  adminUserID,
		ID:           challengeID,
		AttemptCount: int64(maxAttempts),
	})
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	row, err := r.q.GetChallenge(ctx, adminUserID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && row.ID != challengeID) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	if !row.ConsumedAt.Valid && row.AttemptCount > int64(maxAttempts) {
		return store.ErrAttemptsExhausted
	}
	return store.ErrConflict
}

func (r *mfaChallengesRepo) DeleteChallenge(ctx context.Context, adminUserID, challengeID string) error {
	return r.q.DeleteChallenge(ctx, gen.DeleteChallengeParams{
		AdminUserID: adminUserID,
		ID:          challengeID,
	})
}

func (r *mfaChallengesRepo) DeleteExpiredChallenges(ctx context.Context, before time.Time) (int64, error) {
	return r.q.DeleteExpiredChallenges(ctx, toUnix(before))
}
