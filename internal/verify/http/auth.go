package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/service"
	"github.com/aussiebroadwan/hireproof/pkg/httpx"
	"github.com/aussiebroadwan/hireproof/pkg/slogx"
	"github.com/aussiebroadwan/hireproof/pkg/verifysdk"
)

// AuthHandler serves account and sign-in endpoints.
type AuthHandler struct {
	Users    *service.UserService
	Sessions *service.SessionService
	MFA      *service.MFAService
}

// HandleRegister handles POST /auth/register
//
//	@Summary		Register an account
//	@Description	Creates a seeker or employer account. Admin accounts cannot be registered.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		verifysdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	verifysdk.User
//	@Failure		400		{object}	verifysdk.ErrorResponse	"Validation failed"
//	@Failure		409		{object}	verifysdk.ErrorResponse	"Email already registered"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req verifysdk.RegisterRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	u, err := h.Users.Register(r.Context(), service.RegisterParams{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user registered", "user_id", u.ID, "role", u.Role)
	httpx.WriteJSON(w, http.StatusCreated, toUserDTO(u))
}

// HandleLogin handles POST /auth/login
//
//	@Summary		Sign in
//	@Description	Checks the password and returns a session token. Admin sessions are issued without MFA
//	@Description	and a one-time code is emailed; exchange it at /auth/mfa/verify.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		verifysdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	verifysdk.SessionResponse
//	@Failure		401		{object}	verifysdk.ErrorResponse	"Invalid credentials"
//	@Failure		403		{object}	verifysdk.ErrorResponse	"Account suspended"
//	@Failure		503		{object}	verifysdk.ErrorResponse	"MFA code could not be delivered"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifysdk.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	u, err := h.Users.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if u.IsAdmin() {
		// A code sent inside the cooldown is still valid, so a repeat login
		// just reuses it.
		err := h.MFA.IssueChallenge(ctx, u)
		if err != nil && !errors.Is(err, domain.ErrResendTooSoon) {
			writeServiceError(w, r, err)
			return
		}
	}

	sess, err := h.Sessions.Issue(u, false)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user := toUserDTO(u)
	httpx.WriteJSON(w, http.StatusOK, verifysdk.SessionResponse{
		Token:       sess.Token,
		ExpiresAt:   sess.ExpiresAt,
		MFARequired: u.IsAdmin(),
		User:        &user,
	})
}

// HandleMFAVerify handles POST /auth/mfa/verify
//
//	@Summary		Complete admin MFA
//	@Description	Checks the emailed one-time code and returns a new token that authorizes moderation.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		verifysdk.MFAVerifyRequest	true	"One-time code"
//	@Success		200		{object}	verifysdk.MFAVerifyResponse
//	@Failure		400		{object}	verifysdk.ErrorResponse	"Malformed code"
//	@Failure		401		{object}	verifysdk.ErrorResponse	"Incorrect, expired or missing code"
//	@Failure		403		{object}	verifysdk.ErrorResponse	"Not an admin"
//	@Failure		429		{object}	verifysdk.ErrorResponse	"Too many attempts"
//	@Router			/auth/mfa/verify [post].
func (h *AuthHandler) HandleMFAVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	adminID := httpx.UserIDFromContext(ctx)

	var req verifysdk.MFAVerifyRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if _, err := h.MFA.VerifyChallenge(ctx, adminID, req.OTP); err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Status and role are re-read so a suspension during the challenge
	// window still applies.
	u, err := h.Users.GetUserByID(ctx, adminID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if u.Status == domain.UserSuspended {
		writeServiceError(w, r, domain.ErrAccountSuspended)
		return
	}
	if !u.IsAdmin() {
		writeServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	sess, err := h.Sessions.Issue(u, true)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("admin mfa completed", "admin_id", adminID)
	httpx.WriteJSON(w, http.StatusOK, verifysdk.MFAVerifyResponse{
		OK:        true,
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
	})
}

// HandleMFAResend handles POST /auth/mfa/resend
//
//	@Summary		Resend the MFA code
//	@Description	Issues a fresh code and invalidates the previous one. Refused within the resend cooldown.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	verifysdk.OKResponse
//	@Failure		403	{object}	verifysdk.ErrorResponse	"Not an admin"
//	@Failure		429	{object}	verifysdk.ErrorResponse	"Resend cooldown"
//	@Failure		503	{object}	verifysdk.ErrorResponse	"Delivery failed"
//	@Router			/auth/mfa/resend [post].
func (h *AuthHandler) HandleMFAResend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := h.Users.GetUserByID(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.MFA.IssueChallenge(ctx, u); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, verifysdk.OKResponse{OK: true})
}
