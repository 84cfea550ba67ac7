package domain

import "time"

// MFAChallenge is the one outstanding code for an admin. Only a fingerprint
// of the code is stored.
type MFAChallenge struct {
	ID           string
	AdminUserID  string
	CodeHash     string
	Digits       int
	IssuedAt     time.Time
	ExpiresAt    time.Time
	ConsumedAt   *time.Time
	AttemptCount int
}

func (c MFAChallenge) Expired(now time.Time) bool { return !now.Before(c.ExpiresAt) }

// Active reports whether the challenge can still be answered.
func (c MFAChallenge) Active(now time.Time) bool {
	return c.ConsumedAt == nil && !c.Expired(now)
}
