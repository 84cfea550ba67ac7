package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/hireproof/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "verifyd"}}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("verifyd"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("somewhere-else"), jwtx.ErrIssuer)
	})
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"web", "admin"}}}

	require.NoError(t, c.ValidateAudience([]string{"web"}))
	require.NoError(t, c.ValidateAudience([]string{"foo", "admin"}))
	require.NoError(t, c.ValidateAudience(nil))
	require.ErrorIs(t, c.ValidateAudience([]string{"mobile"}), jwtx.ErrAudience)
}

func TestValidateTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}

	require.NoError(t, c.ValidateTime(now.Add(30*time.Minute), 0))
	require.ErrorIs(t, c.ValidateTime(now.Add(2*time.Hour), 0), jwtx.ErrExpired)
	require.ErrorIs(t, c.ValidateTime(now.Add(-time.Minute), 0), jwtx.ErrNotYetValid)
	require.NoError(t, c.ValidateTime(now.Add(-time.Minute), 2*time.Minute))
}

func TestNewSessionClaims(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	amr := []string{jwtx.AMRPassword}

	c, err := jwtx.NewSessionClaims(jwtx.SessionParams{
		Subject: "01JADMIN",
		Role:    "ADMIN",
		Email:   "admin@example.com",
		AMR:     amr,
		Issuer:  "verifyd",
		Now:     now,
	})
	require.NoError(t, err)
	require.Equal(t, "01JADMIN", c.Subject)
	require.NotEmpty(t, c.ID)
	require.Equal(t, now.Add(jwtx.DefaultSessionTTL), c.ExpiresAt.Time)
	require.True(t, c.HasAMR(jwtx.AMRPassword))
	require.False(t, c.HasAMR(jwtx.AMRMFA))

	// Mutating the input must not leak into the claims.
	amr[0] = "changed"
	require.Equal(t, []string{jwtx.AMRPassword}, c.AMR)
}
