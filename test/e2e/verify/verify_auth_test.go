package verify_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/hireproof/pkg/verifysdk"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user, sess := env.seeker(t, "Seeker@Example.com")
	require.Equal(t, "seeker@example.com", user.Email)
	require.Equal(t, "SEEKER", user.Role)
	require.Equal(t, "ACTIVE", user.Status)
	require.NotEmpty(t, sess.Token())

	t.Run("duplicate email", func(t *testing.T) {
		_, err := env.client.Register(ctx, verifysdk.RegisterRequest{
			Email:       "seeker@example.com",
			DisplayName: "Again",
			Password:    "Another-Password-1",
			Role:        "EMPLOYER",
		})
		requireAPIError(t, err, http.StatusConflict, "email_taken")
	})

	t.Run("admin role cannot self register", func(t *testing.T) {
		_, err := env.client.Register(ctx, verifysdk.RegisterRequest{
			Email:       "sneaky@example.com",
			DisplayName: "Sneaky",
			Password:    "Sneaky-Password-1",
			Role:        "ADMIN",
		})
		requireAPIError(t, err, http.StatusBadRequest, verifysdk.ErrorCodeValidation)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.client.Login(ctx, "seeker@example.com", "not-the-password")
		requireAPIError(t, err, http.StatusUnauthorized, "invalid_credentials")
	})
}

func TestAdminMFAGate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	sess, err := env.client.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	require.False(t, sess.MFAComplete())

	t.Run("admin routes refuse a password-only session", func(t *testing.T) {
		_, err := sess.ListVerifications(ctx, "PENDING", 1, 20)
		requireAPIError(t, err, http.StatusForbidden, verifysdk.ErrorCodeMFARequired)
	})

	t.Run("wrong code", func(t *testing.T) {
		code := []byte(env.latestCode(t))
		code[5] = '0' + (code[5]-'0'+1)%10

		err := sess.VerifyMFA(ctx, string(code))
		requireAPIError(t, err, http.StatusUnauthorized, verifysdk.ErrorCodeInvalidCode)
		require.False(t, sess.MFAComplete())
	})

	t.Run("emailed code upgrades the session", func(t *testing.T) {
		require.NoError(t, sess.VerifyMFA(ctx, env.latestCode(t)))
		require.True(t, sess.MFAComplete())

		list, err := sess.ListVerifications(ctx, "PENDING", 1, 20)
		require.NoError(t, err)
		require.Empty(t, list.Data)
	})

	t.Run("codes are single use", func(t *testing.T) {
		err := sess.VerifyMFA(ctx, env.latestCode(t))
		require.Error(t, err)
	})
}

func TestSeekerCannotUseAdminRoutes(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, sess := env.seeker(t, "seeker@example.com")

	_, err := sess.ListVerifications(ctx, "PENDING", 1, 20)
	requireAPIError(t, err, http.StatusForbidden, verifysdk.ErrorCodeForbidden)

	err = sess.VerifyMFA(ctx, "123456")
	requireAPIError(t, err, http.StatusForbidden, verifysdk.ErrorCodeForbidden)
}

func TestLoginRateLimit(t *testing.T) {
	env := setupEnv(t, withDefaultRateLimits())
	ctx := context.Background()

	var limited bool
	for range 10 {
		_, err := env.client.Login(ctx, "nobody@example.com", "whatever-password")
		var apiErr *verifysdk.APIError
		require.ErrorAs(t, err, &apiErr)
		if apiErr.StatusCode == http.StatusTooManyRequests {
			require.Equal(t, verifysdk.ErrorCodeRateLimited, apiErr.Code)
			limited = true
			break
		}
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	}
	require.True(t, limited, "login was never rate limited")
}
