package http

import (
	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/pkg/verifysdk"
)

func toUserDTO(u domain.User) verifysdk.User {
	return verifysdk.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		CreatedAt:   u.CreatedAt,
	}
}

func toVerificationDTO(vr domain.VerificationRequest) verifysdk.VerificationRequest {
	out := verifysdk.VerificationRequest{
		ID:             vr.ID,
		UserID:         vr.SubjectUserID,
		Status:         string(vr.Status),
		DocFrontURL:    vr.Assets.FrontDocumentURL,
		DocBackURL:     vr.Assets.BackDocumentURL,
		SelfieURL:      vr.Assets.SelfieURL,
		DecisionReason: vr.DecisionReason,
		CreatedAt:      vr.CreatedAt,
		SubmittedAt:    vr.SubmittedAt,
		DecidedAt:      vr.DecidedAt,
	}
	if vr.DecidedByAdminID != nil {
		out.DecidedByAdminID = *vr.DecidedByAdminID
	}
	return out
}

func toAuditDTO(e domain.AuditLogEntry) verifysdk.AuditLogEntry {
	out := verifysdk.AuditLogEntry{
		ID:         e.ID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Metadata:   e.Metadata,
		CreatedAt:  e.CreatedAt,
	}
	if e.ActorAdminID != nil {
		out.ActorAdminID = *e.ActorAdminID
	}
	return out
}

func toPagination[T any](p domain.Page[T]) verifysdk.Pagination {
	return verifysdk.Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages(),
	}
}

func mapItems[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
