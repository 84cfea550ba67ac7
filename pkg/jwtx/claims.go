package jwtx

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a session token when the caller
// does not configure one.
const DefaultSessionTTL = 1 * time.Hour

// Authentication method references carried in the "amr" claim.
const (
	AMRPassword = "pwd"
	AMROTP      = "otp"
	AMRMFA      = "mfa"
)

var (
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
)

// Claims are the session token claims issued by verifyd.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the account role at the time of issue: SEEKER, EMPLOYER or ADMIN.
	Role string `json:"role,omitempty"`

	Email string `json:"email,omitempty"`

	// AMR lists how the session was authenticated. Admin moderation
	// requires "mfa" to be present.
	AMR []string `json:"amr,omitempty"`
}

// SessionParams is the input to NewSessionClaims.
type SessionParams struct {
	Subject  string
	Role     string
	Email    string
	AMR      []string
	Issuer   string
	Audience []string
	TTL      time.Duration
	Now      time.Time
}

// NewSessionClaims builds signed-ready claims with a fresh jti.
func NewSessionClaims(p SessionParams) (Claims, error) {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	jti, err := NewJTI()
	if err != nil {
		return Claims{}, err
	}

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.Subject,
			Audience:  jwt.ClaimStrings(p.Audience),
			IssuedAt:  jwt.NewNumericDate(p.Now),
			NotBefore: jwt.NewNumericDate(p.Now),
			ExpiresAt: jwt.NewNumericDate(p.Now.Add(ttl)),
			ID:        jti,
		},
		Role:  p.Role,
		Email: p.Email,
		AMR:   slices.Clone(p.AMR),
	}, nil
}

// HasAMR reports whether method is present in the amr claim.
func (c *Claims) HasAMR(method string) bool {
	return slices.Contains(c.AMR, method)
}

// ValidateIssuer checks the iss claim. An empty expectation is not enforced.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks that at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateTime checks exp and nbf against now with a leeway for clock skew.
func (c *Claims) ValidateTime(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
