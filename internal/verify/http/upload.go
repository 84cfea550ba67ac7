package http

import (
	"net/http"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/service"
	"github.com/aussiebroadwan/hireproof/pkg/httpx"
	"github.com/aussiebroadwan/hireproof/pkg/verifysdk"
)

type UploadHandler struct {
	Uploads *service.UploadService
}

// HandlePresign handles POST /upload/presign
//
//	@Summary		Request an upload slot
//	@Description	Returns a presigned PUT URL for one object in folder and the public URL to submit later.
//	@Description	The upload URL expires after a few minutes.
//	@Tags			Uploads
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		verifysdk.PresignRequest	true	"File to upload"
//	@Success		200		{object}	verifysdk.PresignResponse
//	@Failure		400		{object}	verifysdk.ErrorResponse	"Validation failed"
//	@Failure		403		{object}	verifysdk.ErrorResponse	"Folder not permitted for role"
//	@Failure		415		{object}	verifysdk.ErrorResponse	"Content type not allowed"
//	@Failure		503		{object}	verifysdk.ErrorResponse	"Object storage unavailable"
//	@Router			/upload/presign [post].
func (h *UploadHandler) HandlePresign(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req verifysdk.PresignRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	grant, err := h.Uploads.IssueUploadSlot(r.Context(), p, req.Filename, req.ContentType, domain.UploadFolder(req.Folder))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, verifysdk.PresignResponse{
		UploadURL: grant.UploadURL,
		PublicURL: grant.PublicURL,
		ExpiresAt: grant.ExpiresAt,
	})
}

// principal rebuilds the caller from the verified token claims.
func principal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "missing session")
		return domain.Principal{}, false
	}
	p, err := service.PrincipalFromClaims(claims)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "session has an unknown role")
		return domain.Principal{}, false
	}
	return p, true
}
