package sqlite

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/store/drivers/sqlite/gen"
)

type outboxRepo struct {
	q *gen.Queries
}

func (r *outboxRepo) EnqueueNotification(ctx context.Context, n domain.Notification) error {
	data, err := encodeMap(n.Data)
	if err != nil {
		return err
	}
	next := n.NextAttemptAt
	if next.IsZero() {
		next = n.CreatedAt
	}
	return r.q.EnqueueNotification(ctx, gen.EnqueueNotificationParams{
		ID:             n.ID,
		IdempotencyKey: n.IdempotencyKey,
		Recipient:      n.Recipient,
		Template:       n.Template,
		Data:           data,
		NextAttemptAt:  toUnix(next),
		CreatedAt:      toUnix(n.CreatedAt),
	})
}

func (r *outboxRepo) ClaimDueNotifications(ctx context.Context, now, leaseUntil time.Time, limit int) ([]domain.Notification, error) {
	rows, err := r.q.ClaimDueNotifications(ctx, gen.ClaimDueNotificationsParams{
		LeaseUntil: toUnix(leaseUntil),
		Now:        toUnix(now),
		Limit:      int64(limit),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapNotification(row))
	}
	// RETURNING order is unspecified.
	slices.SortFunc(out, func(a, b domain.Notification) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *outboxRepo) MarkNotificationSent(ctx context.Context, id string, now time.Time) error {
	return r.q.MarkNotificationSent(ctx, gen.MarkNotificationSentParams{SentAt: nullTime(now), ID: id})
}

func (r *outboxRepo) MarkNotificationRetry(ctx context.Context, id string, attempts int, next time.Time, lastErr string) error {
	return r.q.MarkNotificationRetry(ctx, gen.MarkNotificationRetryParams{
		Attempts:      int64(attempts),
		NextAttemptAt: toUnix(next),
		LastError:     lastErr,
		ID:            id,
	})
}

func (r *outboxRepo) MarkNotificationFailed(ctx context.Context, id string, attempts int, now time.Time, lastErr string) error {
	return r.q.MarkNotificationFailed(ctx, gen.MarkNotificationFailedParams{
		Attempts:  int64(attempts),
		FailedAt:  nullTime(now),
		LastError: lastErr,
		ID:        id,
	})
}

func (r *outboxRepo) GetNotificationByIdempotencyKey(ctx context.Context, key string) (domain.Notification, error) {
	row, err := r.q.GetNotificationByIdempotencyKey(ctx, key)
	if err != nil {
		return domain.Notification{}, mapNotFound(err)
	}
	return mapNotification(row), nil
}

func (r *outboxRepo) DeleteSentNotificationsBefore(ctx context.Context, before time.Time) (int64, error) {
	return r.q.DeleteSentNotificationsBefore(ctx, nullTime(before))
}
