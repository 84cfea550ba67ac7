package http

import (
	"net/http"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/service"
	"github.com/aussiebroadwan/hireproof/pkg/httpx"
	"github.com/aussiebroadwan/hireproof/pkg/slogx"
	"github.com/aussiebroadwan/hireproof/pkg/verifysdk"
)

type VerificationHandler struct {
	Verifications *service.VerificationService
}

// HandleSubmit handles POST /verify-id
//
//	@Summary		Submit identity documents
//	@Description	Registers three uploaded images for review. Only allowed when no request is pending
//	@Description	and the caller is not already verified.
//	@Tags			Verification
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		verifysdk.SubmitVerificationRequest	true	"Public URLs from /upload/presign"
//	@Success		200		{object}	verifysdk.SubmitVerificationResponse
//	@Failure		400		{object}	verifysdk.ErrorResponse	"Invalid or foreign uploads"
//	@Failure		409		{object}	verifysdk.ErrorResponse	"Already pending or verified"
//	@Failure		410		{object}	verifysdk.ErrorResponse	"Upload slot expired before the object arrived"
//	@Failure		503		{object}	verifysdk.ErrorResponse	"Object storage unavailable"
//	@Router			/verify-id [post].
func (h *VerificationHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var req verifysdk.SubmitVerificationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	vr, err := h.Verifications.Submit(ctx, userID, domain.VerificationAssets{
		FrontDocumentURL: req.DocFrontURL,
		BackDocumentURL:  req.DocBackURL,
		SelfieURL:        req.SelfieURL,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("verification submitted", "request_id", vr.ID)
	httpx.WriteJSON(w, http.StatusOK, verifysdk.SubmitVerificationResponse{
		OK:     true,
		Status: string(vr.Status),
	})
}

// HandleGet handles GET /verify-id
//
//	@Summary		Current verification status
//	@Description	Returns the caller's verification request, creating a NOT_STARTED one on first use.
//	@Tags			Verification
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	verifysdk.VerificationRequest
//	@Failure		401	{object}	verifysdk.ErrorResponse	"Missing or invalid token"
//	@Router			/verify-id [get].
func (h *VerificationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vr, err := h.Verifications.GetBySubject(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toVerificationDTO(vr))
}
