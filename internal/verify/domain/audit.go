package domain

import (
	"strings"
	"time"
)

// Audit actions.
const (
	ActionVerificationDecision = "VERIFICATION_DECISION"
	ActionUserSuspended        = "USER_SUSPENDED"
	ActionUserActivated        = "USER_ACTIVATED"
)

// Audited entity types.
const (
	EntityVerificationRequest = "VerificationRequest"
	EntityUser                = "User"
)

// AuditLogEntry is immutable once written. ActorAdminID is nil only for
// system entries.
type AuditLogEntry struct {
	ID           string
	ActorAdminID *string
	Action       string
	EntityType   string
	EntityID     string
	Metadata     map[string]string
	CreatedAt    time.Time
}

func (e AuditLogEntry) Validate() error {
	if strings.TrimSpace(e.Action) == "" {
		return Validation("audit action is required")
	}
	if strings.TrimSpace(e.EntityType) == "" {
		return Validation("audit entity type is required")
	}
	if strings.TrimSpace(e.EntityID) == "" {
		return Validation("audit entity id is required")
	}
	return nil
}

// AuditFilter narrows an audit query. Empty fields match everything.
type AuditFilter struct {
	ActorAdminID string
	EntityType   string
	EntityID     string
}
