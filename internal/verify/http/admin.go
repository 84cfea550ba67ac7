package http

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/service"
	"github.com/aussiebroadwan/hireproof/pkg/httpx"
	"github.com/aussiebroadwan/hireproof/pkg/idx"
	"github.com/aussiebroadwan/hireproof/pkg/verifysdk"
)

// AdminHandler serves the moderation endpoints. Every route is behind
// RequireAdminMFA and the services re-check the session.
type AdminHandler struct {
	Verifications *service.VerificationService
	Reviews       *service.ReviewService
	Audit         *service.AuditService
}

// HandleList handles GET /admin/verifications
//
//	@Summary		List verification requests
//	@Description	Pages through requests in one status, oldest submission first. Defaults to the PENDING queue.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"NOT_STARTED, PENDING, VERIFIED or REJECTED"	default(PENDING)
//	@Param			page	query		int		false	"Page number"									default(1)
//	@Param			limit	query		int		false	"Page size (max 100)"							default(20)
//	@Success		200		{object}	verifysdk.VerificationList
//	@Failure		400		{object}	verifysdk.ErrorResponse	"Bad filter or paging"
//	@Failure		403		{object}	verifysdk.ErrorResponse	"Not an admin or MFA incomplete"
//	@Router			/admin/verifications [get].
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := domain.StatusPending
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, err := domain.ParseVerificationStatus(raw)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		status = st
	}
	pr, ok := pageRequest(w, r)
	if !ok {
		return
	}

	page, err := h.Verifications.List(r.Context(), status, pr)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, verifysdk.VerificationList{
		Data:       mapItems(page.Items, toVerificationDTO),
		Pagination: toPagination(page),
	})
}

// HandleGet handles GET /admin/verifications/{id}
//
//	@Summary		Open a verification request
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Verification request id"
//	@Success		200	{object}	verifysdk.VerificationRequest
//	@Failure		403	{object}	verifysdk.ErrorResponse	"Not an admin or MFA incomplete"
//	@Failure		404	{object}	verifysdk.ErrorResponse	"Unknown request"
//	@Router			/admin/verifications/{id} [get].
func (h *AdminHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	vr, err := h.Verifications.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toVerificationDTO(vr))
}

// HandleReview handles POST /admin/verifications/{id}/review
//
//	@Summary		Decide a pending request
//	@Description	Marks a PENDING request VERIFIED or REJECTED, writes an audit entry and notifies the subject.
//	@Description	A reason is required when rejecting. Exactly one of several concurrent decisions succeeds.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Verification request id"
//	@Param			request	body		verifysdk.ReviewRequest	true	"Decision"
//	@Success		200		{object}	verifysdk.OKResponse
//	@Failure		400		{object}	verifysdk.ErrorResponse	"Validation failed"
//	@Failure		403		{object}	verifysdk.ErrorResponse	"Not an admin or MFA incomplete"
//	@Failure		404		{object}	verifysdk.ErrorResponse	"Unknown request"
//	@Failure		409		{object}	verifysdk.ErrorResponse	"Request is not pending"
//	@Router			/admin/verifications/{id}/review [post].
func (h *AdminHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	session, ok := adminSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req verifysdk.ReviewRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	vr, err := h.Reviews.ReviewDecision(r.Context(), session, id, domain.VerificationStatus(req.Status), req.Reason)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, verifysdk.OKResponse{
		OK:      true,
		Message: fmt.Sprintf("verification %s is now %s", vr.ID, vr.Status),
	})
}

// HandleSuspend handles POST /admin/users/{id}/suspend
//
//	@Summary		Suspend an account
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User id"
//	@Success		200	{object}	verifysdk.User
//	@Failure		403	{object}	verifysdk.ErrorResponse	"Not an admin or MFA incomplete"
//	@Failure		404	{object}	verifysdk.ErrorResponse	"Unknown user"
//	@Failure		409	{object}	verifysdk.ErrorResponse	"Already suspended"
//	@Router			/admin/users/{id}/suspend [post].
func (h *AdminHandler) HandleSuspend(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.UserSuspended)
}

// HandleActivate handles POST /admin/users/{id}/activate
//
//	@Summary		Reactivate an account
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User id"
//	@Success		200	{object}	verifysdk.User
//	@Failure		403	{object}	verifysdk.ErrorResponse	"Not an admin or MFA incomplete"
//	@Failure		404	{object}	verifysdk.ErrorResponse	"Unknown user"
//	@Failure		409	{object}	verifysdk.ErrorResponse	"Already active"
//	@Router			/admin/users/{id}/activate [post].
func (h *AdminHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.UserActive)
}

func (h *AdminHandler) setStatus(w http.ResponseWriter, r *http.Request, status domain.UserStatus) {
	session, ok := adminSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := h.Reviews.SetUserStatus(r.Context(), session, id, status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserDTO(u))
}

// pathID reads the {id} segment. Anything that is not a ULID cannot name a
// stored record, so it is a 404 without touching the store.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, domain.ErrNotFound)
		return "", false
	}
	return id.String(), true
}

// HandleAuditLogs handles GET /admin/audit-logs
//
//	@Summary		Query the audit log
//	@Description	Newest first. userId filters by the acting admin.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userId		query		string	false	"Acting admin id"
//	@Param			entityType	query		string	false	"VerificationRequest or User"
//	@Param			entityId	query		string	false	"Entity id"
//	@Param			page		query		int		false	"Page number"			default(1)
//	@Param			limit		query		int		false	"Page size (max 100)"	default(20)
//	@Success		200			{object}	verifysdk.AuditLogList
//	@Failure		400			{object}	verifysdk.ErrorResponse	"Bad paging"
//	@Failure		403			{object}	verifysdk.ErrorResponse	"Not an admin or MFA incomplete"
//	@Router			/admin/audit-logs [get].
func (h *AdminHandler) HandleAuditLogs(w http.ResponseWriter, r *http.Request) {
	pr, ok := pageRequest(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	page, err := h.Audit.Query(r.Context(), domain.AuditFilter{
		ActorAdminID: q.Get("userId"),
		EntityType:   q.Get("entityType"),
		EntityID:     q.Get("entityId"),
	}, pr)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, verifysdk.AuditLogList{
		Data:       mapItems(page.Items, toAuditDTO),
		Pagination: toPagination(page),
	})
}

func adminSession(w http.ResponseWriter, r *http.Request) (domain.AdminSession, bool) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "missing session")
		return domain.AdminSession{}, false
	}
	return service.AdminSessionFromClaims(claims), true
}

func pageRequest(w http.ResponseWriter, r *http.Request) (domain.PageRequest, bool) {
	page, err := httpx.QueryInt(r, "page", 1)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return domain.PageRequest{}, false
	}
	limit, err := httpx.QueryInt(r, "limit", domain.DefaultPageLimit)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return domain.PageRequest{}, false
	}
	pr, err := domain.PageRequest{Page: page, Limit: limit}.Normalize()
	if err != nil {
		writeServiceError(w, r, err)
		return domain.PageRequest{}, false
	}
	return pr, true
}
