package verifysdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

// Session is an authenticated caller. Safe for concurrent use.
type Session struct {
	client *Client

	mu          sync.RWMutex
	token       string
	mfaComplete bool
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// MFAComplete reports whether the current token carries the mfa claim.
func (s *Session) MFAComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mfaComplete
}

func (s *Session) do(ctx context.Context, method, path string, body, out any, expected int) error {
	return s.client.do(ctx, method, path, s.Token(), body, out, expected)
}

// VerifyMFA submits the emailed code and swaps in the upgraded token.
func (s *Session) VerifyMFA(ctx context.Context, otp string) error {
	var resp MFAVerifyResponse
	if err := s.do(ctx, http.MethodPost, "/auth/mfa/verify", MFAVerifyRequest{OTP: otp}, &resp, http.StatusOK); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = resp.Token
	s.mfaComplete = true
	s.mu.Unlock()
	return nil
}

func (s *Session) ResendMFA(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/auth/mfa/resend", nil, nil, http.StatusOK)
}

func (s *Session) Presign(ctx context.Context, filename, contentType, folder string) (PresignResponse, error) {
	var resp PresignResponse
	err := s.do(ctx, http.MethodPost, "/upload/presign", PresignRequest{
		Filename:    filename,
		ContentType: contentType,
		Folder:      folder,
	}, &resp, http.StatusOK)
	return resp, err
}

func (s *Session) SubmitVerification(ctx context.Context, req SubmitVerificationRequest) (SubmitVerificationResponse, error) {
	var resp SubmitVerificationResponse
	err := s.do(ctx, http.MethodPost, "/verify-id", req, &resp, http.StatusOK)
	return resp, err
}

// MyVerification returns the caller's own request.
func (s *Session) MyVerification(ctx context.Context) (VerificationRequest, error) {
	var vr VerificationRequest
	err := s.do(ctx, http.MethodGet, "/verify-id", nil, &vr, http.StatusOK)
	return vr, err
}

func (s *Session) ListVerifications(ctx context.Context, status string, page, limit int) (VerificationList, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	setPage(q, page, limit)

	var resp VerificationList
	err := s.do(ctx, http.MethodGet, "/admin/verifications?"+q.Encode(), nil, &resp, http.StatusOK)
	return resp, err
}

func (s *Session) GetVerification(ctx context.Context, id string) (VerificationRequest, error) {
	var vr VerificationRequest
	err := s.do(ctx, http.MethodGet, "/admin/verifications/"+url.PathEscape(id), nil, &vr, http.StatusOK)
	return vr, err
}

func (s *Session) Review(ctx context.Context, id, status, reason string) (OKResponse, error) {
	var resp OKResponse
	err := s.do(ctx, http.MethodPost, "/admin/verifications/"+url.PathEscape(id)+"/review",
		ReviewRequest{Status: status, Reason: reason}, &resp, http.StatusOK)
	return resp, err
}

func (s *Session) SuspendUser(ctx context.Context, userID string) (User, error) {
	var u User
	err := s.do(ctx, http.MethodPost, "/admin/users/"+url.PathEscape(userID)+"/suspend", nil, &u, http.StatusOK)
	return u, err
}

func (s *Session) ActivateUser(ctx context.Context, userID string) (User, error) {
	var u User
	err := s.do(ctx, http.MethodPost, "/admin/users/"+url.PathEscape(userID)+"/activate", nil, &u, http.StatusOK)
	return u, err
}

// AuditFilter narrows AuditLogs. UserID matches the acting admin.
type AuditFilter struct {
	UserID     string
	EntityType string
	EntityID   string
}

func (s *Session) AuditLogs(ctx context.Context, f AuditFilter, page, limit int) (AuditLogList, error) {
	q := url.Values{}
	if f.UserID != "" {
		q.Set("userId", f.UserID)
	}
	if f.EntityType != "" {
		q.Set("entityType", f.EntityType)
	}
	if f.EntityID != "" {
		q.Set("entityId", f.EntityID)
	}
	setPage(q, page, limit)

	var resp AuditLogList
	err := s.do(ctx, http.MethodGet, "/admin/audit-logs?"+q.Encode(), nil, &resp, http.StatusOK)
	return resp, err
}

func setPage(q url.Values, page, limit int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}
