package verifysdk

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// OKResponse acknowledges an action with no other payload.
type OKResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// ============================================================================
// Accounts
// ============================================================================

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	Role        string `json:"role" validate:"required,oneof=SEEKER EMPLOYER"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is the public view of an account.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SessionResponse carries a bearer token. MFARequired is set for admin
// sessions that still have to complete the emailed challenge.
type SessionResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	MFARequired bool      `json:"mfaRequired"`
	User        *User     `json:"user,omitempty"`
}

type MFAVerifyRequest struct {
	OTP string `json:"otp" validate:"required,numeric,len=6"`
}

type MFAVerifyResponse struct {
	OK        bool      `json:"ok"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ============================================================================
// Uploads and verification
// ============================================================================

type PresignRequest struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	Folder      string `json:"folder" validate:"required,oneof=id-documents resumes job-images"`
}

type PresignResponse struct {
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SubmitVerificationRequest struct {
	DocFrontURL string `json:"docFrontUrl" validate:"required,url"`
	DocBackURL  string `json:"docBackUrl" validate:"required,url"`
	SelfieURL   string `json:"selfieUrl" validate:"required,url"`
}

type SubmitVerificationResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

type VerificationRequest struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	Status           string     `json:"status"`
	DocFrontURL      string     `json:"docFrontUrl,omitempty"`
	DocBackURL       string     `json:"docBackUrl,omitempty"`
	SelfieURL        string     `json:"selfieUrl,omitempty"`
	DecisionReason   string     `json:"decisionReason,omitempty"`
	DecidedByAdminID string     `json:"decidedByAdminId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	SubmittedAt      *time.Time `json:"submittedAt,omitempty"`
	DecidedAt        *time.Time `json:"decidedAt,omitempty"`
}

// ============================================================================
// Moderation
// ============================================================================

type ReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=VERIFIED REJECTED"`
	Reason string `json:"reason,omitempty" validate:"required_if=Status REJECTED,max=1000"`
}

type AuditLogEntry struct {
	ID           string            `json:"id"`
	ActorAdminID string            `json:"actorAdminId,omitempty"`
	Action       string            `json:"action"`
	EntityType   string            `json:"entityType"`
	EntityID     string            `json:"entityId"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type VerificationList struct {
	Data       []VerificationRequest `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

type AuditLogList struct {
	Data       []AuditLogEntry `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database   string `json:"database"`
	Signer     string `json:"signer"`
	Challenges string `json:"challenges,omitempty"`
}
