package domain

import (
	"net/url"
	"strings"
	"time"
)

type VerificationStatus string

const (
	StatusNotStarted VerificationStatus = "NOT_STARTED"
	StatusPending    VerificationStatus = "PENDING"
	StatusVerified   VerificationStatus = "VERIFIED"
	StatusRejected   VerificationStatus = "REJECTED"
)

func ParseVerificationStatus(s string) (VerificationStatus, error) {
	switch st := VerificationStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusNotStarted, StatusPending, StatusVerified, StatusRejected:
		return st, nil
	}
	return "", Validation("unknown verification status %q", s)
}

// IsDecision reports whether s is a terminal review outcome.
func (s VerificationStatus) IsDecision() bool {
	return s == StatusVerified || s == StatusRejected
}

// CanSubmit reports whether a request in s accepts a new submission.
func (s VerificationStatus) CanSubmit() bool {
	return s == StatusNotStarted || s == StatusRejected
}

// MaxDecisionReason bounds the rejection reason shown to the subject.
const MaxDecisionReason = 1000

// VerificationAssets are the public URLs of the uploaded identity images.
type VerificationAssets struct {
	FrontDocumentURL string
	BackDocumentURL  string
	SelfieURL        string
}

// Validate requires three distinct absolute URLs.
func (a VerificationAssets) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"docFrontUrl", a.FrontDocumentURL},
		{"docBackUrl", a.BackDocumentURL},
		{"selfieUrl", a.SelfieURL},
	}

	seen := make(map[string]string, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return Validation("%s is required", f.name)
		}
		u, err := url.Parse(f.value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Validation("%s must be an absolute URL", f.name)
		}
		if prev, dup := seen[f.value]; dup {
			return Validation("%s and %s must be different uploads", prev, f.name)
		}
		seen[f.value] = f.name
	}
	return nil
}

// URLs lists the assets in submission order.
func (a VerificationAssets) URLs() []string {
	return []string{a.FrontDocumentURL, a.BackDocumentURL, a.SelfieURL}
}

type VerificationRequest struct {
	ID               string
	SubjectUserID    string
	Status           VerificationStatus
	Assets           VerificationAssets
	DecisionReason   string
	DecidedByAdminID *string
	CreatedAt        time.Time
	SubmittedAt      *time.Time
	DecidedAt        *time.Time
	UpdatedAt        time.Time
}

// VerificationDecision is the outcome an admin applies to a pending request.
type VerificationDecision struct {
	RequestID string
	AdminID   string
	Outcome   VerificationStatus
	Reason    string
	DecidedAt time.Time
}
