package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestSessionIssue(t *testing.T) {
	clk := newTestClock()
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:   "https://verify.example.com",
		Audience: []string{"hireproof"},
		Now:      clk.Now,
	})
	require.NoError(t, err)

	svc := &SessionService{
		Signer:   km,
		Issuer:   "https://verify.example.com",
		Audience: []string{"hireproof"},
		TTL:      30 * time.Minute,
		Now:      clk.Now,
	}
	admin := domain.User{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}

	t.Run("password-only session", func(t *testing.T) {
		sess, err := svc.Issue(admin, false)
		require.NoError(t, err)
		require.False(t, sess.MFAComplete)
		require.True(t, sess.ExpiresAt.Equal(clk.Now().Add(30*time.Minute)))

		claims, err := km.Verify(sess.Token)
		require.NoError(t, err)
		require.Equal(t, []string{jwtx.AMRPassword}, claims.AMR)

		as := AdminSessionFromClaims(claims)
		require.ErrorIs(t, as.Authorize(), domain.ErrMFARequired)
	})

	t.Run("mfa session", func(t *testing.T) {
		sess, err := svc.Issue(admin, true)
		require.NoError(t, err)

		claims, err := km.Verify(sess.Token)
		require.NoError(t, err)
		require.True(t, claims.HasAMR(jwtx.AMRMFA))

		as := AdminSessionFromClaims(claims)
		require.NoError(t, as.Authorize())
		require.Equal(t, "admin-1", as.AdminUserID)

		p, err := PrincipalFromClaims(claims)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, p.Role)
	})

	t.Run("seeker claims never authorize moderation", func(t *testing.T) {
		sess, err := svc.Issue(domain.User{ID: "u1", Role: domain.RoleSeeker}, true)
		require.NoError(t, err)
		claims, err := km.Verify(sess.Token)
		require.NoError(t, err)
		require.ErrorIs(t, AdminSessionFromClaims(claims).Authorize(), domain.ErrUnauthorized)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		sess, err := svc.Issue(admin, true)
		require.NoError(t, err)
		clk.Advance(31 * time.Minute)
		_, err = km.Verify(sess.Token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})
}
