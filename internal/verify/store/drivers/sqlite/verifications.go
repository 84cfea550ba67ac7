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

type verificationsRepo struct {
	q *gen.Queries
}

func (r *verificationsRepo) EnsureVerification(ctx context.Context, id, subjectUserID string, now time.Time) error {
	return r.q.EnsureVerification(ctx, gen.EnsureVerificationParams{
		ID:            id,
		SubjectUserID: subjectUserID,
		CreatedAt:     toUnix(now),
	})
}

func (r *verificationsRepo) SubmitVerification(
	ctx context.Context,
	subjectUserID string,
	assets domain.VerificationAssets,
	now time.Time,
) (domain.VerificationRequest, error) {
	row, err := r.q.SubmitVerification(ctx, gen.SubmitVerificationParams{
		FrontDocumentUrl: assets.FrontDocumentURL,
		BackDocumentUrl:  assets.BackDocumentURL,
		SelfieUrl:        assets.SelfieURL,
		SubmittedAt:      nullTime(now),
		SubjectUserID:    subjectUserID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.VerificationRequest{}, store.ErrConflict
	}
	if err != nil {
		return domain.VerificationRequest{}, err
	}
	return mapVerification(row), nil
}

func (r *verificationsRepo) DecideVerification(ctx context.Context, d domain.VerificationDecision) (domain.VerificationRequest, error) {
	reason := ""
	if d.Outcome == domain.StatusRejected {
		reason = d.Reason
	}

	row, err := r.q.DecideVerification(ctx, gen.DecideVerificationParams{
		Status:           string(d.Outcome),
		DecisionReason:   mapStringNull(reason),
		DecidedByAdminID: mapStringNull(d.AdminID),
		DecidedAt:        nullTime(d.DecidedAt),
		ID:               d.RequestID,
	})
	if err == nil {
		return mapVerification(row), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.VerificationRequest{}, err
	}

	if _, getErr := r.q.GetVerificationByID(ctx, d.RequestID); getErr != nil {
		return domain.VerificationRequest{}, mapNotFound(getErr)
	}
	return domain.VerificationRequest{}, store.ErrConflict
}

func (r *verificationsRepo) GetVerificationByID(ctx context.Context, id string) (domain.VerificationRequest, error) {
	row, err := r.q.GetVerificationByID(ctx, id)
	if err != nil {
		return domain.VerificationRequest{}, mapNotFound(err)
	}
	return mapVerification(row), nil
}

func (r *verificationsRepo) GetVerificationBySubject(ctx context.Context, subjectUserID string) (domain.VerificationRequest, error) {
	row, err := r.q.GetVerificationBySubject(ctx, subjectUserID)
	if err != nil {
		return domain.VerificationRequest{}, mapNotFound(err)
	}
	return mapVerification(row), nil
}

func (r *verificationsRepo) ListVerificationsByStatus(
	ctx context.Context,
	status domain.VerificationStatus,
	limit, offset int,
) ([]domain.VerificationRequest, error) {
	rows, err := r.q.ListVerificationsByStatus(ctx, gen.ListVerificationsByStatusParams{
		Status: string(status),
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.VerificationRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapVerification(row))
	}
	return out, nil
}

func (r *verificationsRepo) CountVerificationsByStatus(ctx context.Context, status domain.VerificationStatus) (int, error) {
	n, err := r.q.CountVerificationsByStatus(ctx, string(status))
	return int(n), err
}
