package domain

import "time"

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Role   Role
}

// AdminSession is rebuilt from the bearer token on every request and never
// mutated; completing MFA issues a new token instead.
type AdminSession struct {
	AdminUserID string
	Role        Role
	MFAComplete bool
	IssuedAt    time.Time
}

// Authorize checks the moderation preconditions in order.
func (s AdminSession) Authorize() error {
	if s.Role != RoleAdmin {
		return ErrUnauthorized
	}
	if !s.MFAComplete {
		return ErrMFARequired
	}
	return nil
}
