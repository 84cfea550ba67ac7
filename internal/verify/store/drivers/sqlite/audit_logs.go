package sqlite

import (
	"context"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/store/drivers/sqlite/gen"
)

// auditLogsRepo has no update or delete path; the schema triggers reject
// both anyway.
type auditLogsRepo struct {
	q *gen.Queries
}

func (r *auditLogsRepo) AppendAuditLog(ctx context.Context, e domain.AuditLogEntry) error {
	meta, err := encodeMap(e.Metadata)
	if err != nil {
		return err
	}
	err = r.q.AppendAuditLog(ctx, gen.AppendAuditLogParams{
		ID:           e.ID,
		ActorAdminID: mapOptionalString(e.ActorAdminID),
		Action:       e.Action,
		EntityType:   e.EntityType,
		EntityID:     e.EntityID,
		Metadata:     meta,
		CreatedAt:    toUnix(e.CreatedAt),
	})
	return mapUniqueViolation(err)
}

func (r *auditLogsRepo) QueryAuditLogs(ctx context.Context, f domain.AuditFilter, limit, offset int) ([]domain.AuditLogEntry, error) {
	rows, err := r.q.QueryAuditLogs(ctx, gen.QueryAuditLogsParams{
		ActorAdminID: f.ActorAdminID,
		EntityType:   f.EntityType,
		EntityID:     f.EntityID,
		Limit:        int64(limit),
		Offset:       int64(offset),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.AuditLogEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapAuditLog(row))
	}
	return out, nil
}

func (r *auditLogsRepo) CountAuditLogs(ctx context.Context, f domain.AuditFilter) (int, error) {
	n, err := r.q.CountAuditLogs(ctx, gen.CountAuditLogsParams{
		ActorAdminID: f.ActorAdminID,
		EntityType:   f.EntityType,
		EntityID:     f.EntityID,
	})
	return int(n), err
}
