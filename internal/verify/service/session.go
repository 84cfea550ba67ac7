package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/pkg/jwtx"
)

// TokenSigner is satisfied by *jwtx.KeyManager.
type TokenSigner interface {
	Sign(claims jwtx.Claims) (string, error)
}

// Session is a signed bearer token.
type Session struct {
	Token       string
	ExpiresAt   time.Time
	MFAComplete bool
}

// SessionService mints session tokens. A session is never upgraded in
// place: completing MFA yields a new token.
type SessionService struct {
	Signer   TokenSigner
	Issuer   string
	Audience []string
	TTL      time.Duration
	Now      func() time.Time
}

func (s *SessionService) Issue(u domain.User, mfaComplete bool) (Session, error) {
	amr := []string{jwtx.AMRPassword}
	if mfaComplete {
		amr = append(amr, jwtx.AMROTP, jwtx.AMRMFA)
	}

	claims, err := jwtx.NewSessionClaims(jwtx.SessionParams{
		Subject:  u.ID,
		Role:     string(u.Role),
		Email:    u.Email,
		AMR:      amr,
		Issuer:   s.Issuer,
		Audience: s.Audience,
		TTL:      s.TTL,
		Now:      clock(s.Now).now(),
	})
	if err != nil {
		return Session{}, err
	}

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return Session{
		Token:       token,
		ExpiresAt:   claims.ExpiresAt.Time,
		MFAComplete: mfaComplete,
	}, nil
}

// PrincipalFromClaims rebuilds the caller from verified claims.
func PrincipalFromClaims(c jwtx.Claims) (domain.Principal, error) {
	role, err := domain.ParseRole(c.Role)
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.Principal{UserID: c.Subject, Role: role}, nil
}

// AdminSessionFromClaims derives the moderation session. Non-admin
// tokens yield a session that fails Authorize.
func AdminSessionFromClaims(c jwtx.Claims) domain.AdminSession {
	s := domain.AdminSession{
		AdminUserID: c.Subject,
		Role:        domain.Role(c.Role),
		MFAComplete: c.HasAMR(jwtx.AMRMFA),
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time
	}
	return s
}
