package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/pkg/idx"
)

// AuditService reads and appends the moderation audit trail. There is no
// way to change an entry once written.
type AuditService struct {
	Store store.Store
	Now   func() time.Time
}

// Append validates e and records it. ID and CreatedAt are filled in when
// empty.
func (s *AuditService) Append(ctx context.Context, e domain.AuditLogEntry) error {
	return appendAudit(ctx, s.Store.AuditLogs(), e, clock(s.Now).now())
}

// appendAudit is shared with the review flows, which call it inside their
// transaction.
func appendAudit(ctx context.Context, logs store.AuditLogs, e domain.AuditLogEntry, now time.Time) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.ID == "" {
		e.ID = string(idx.NewAt(e.CreatedAt))
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if err := logs.AppendAuditLog(ctx, e); err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

// Query returns matching entries newest first.
func (s *AuditService) Query(ctx context.Context, f domain.AuditFilter, page domain.PageRequest) (domain.Page[domain.AuditLogEntry], error) {
	page, err := page.Normalize()
	if err != nil {
		return domain.Page[domain.AuditLogEntry]{}, err
	}

	items, err := s.Store.AuditLogs().QueryAuditLogs(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return domain.Page[domain.AuditLogEntry]{}, fmt.Errorf("failed to query audit logs: %w", err)
	}
	total, err := s.Store.AuditLogs().CountAuditLogs(ctx, f)
	if err != nil {
		return domain.Page[domain.AuditLogEntry]{}, fmt.Errorf("failed to count audit logs: %w", err)
	}

	return domain.Page[domain.AuditLogEntry]{
		Items: items,
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	}, nil
}
