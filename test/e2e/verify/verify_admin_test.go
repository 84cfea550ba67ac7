package verify_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/hireproof/pkg/verifysdk"
	"github.com/stretchr/testify/require"
)

func TestSuspendAndActivate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user, seeker := env.seeker(t, "suspend@example.com")
	admin := env.adminSession(t)

	suspended, err := admin.SuspendUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "SUSPENDED", suspended.Status)

	_, err = env.client.Login(ctx, "suspend@example.com", "Seeker-Password-1")
	requireAPIError(t, err, http.StatusForbidden, verifysdk.ErrorCodeAccountSuspended)

	t.Run("existing token cannot upload", func(t *testing.T) {
		_, err := seeker.Presign(ctx, "front.jpg", "image/jpeg", "id-documents")
		requireAPIError(t, err, http.StatusForbidden, verifysdk.ErrorCodeAccountSuspended)
	})

	t.Run("suspending twice is a conflict", func(t *testing.T) {
		_, err := admin.SuspendUser(ctx, user.ID)
		requireAPIError(t, err, http.StatusConflict, "status_unchanged")
	})

	activated, err := admin.ActivateUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "ACTIVE", activated.Status)

	_, err = env.client.Login(ctx, "suspend@example.com", "Seeker-Password-1")
	require.NoError(t, err)

	t.Run("both changes are audited", func(t *testing.T) {
		logs, err := admin.AuditLogs(ctx, verifysdk.AuditFilter{EntityType: "User", EntityID: user.ID}, 1, 20)
		require.NoError(t, err)
		require.Len(t, logs.Data, 2)

		actions := []string{logs.Data[0].Action, logs.Data[1].Action}
		require.ElementsMatch(t, []string{"USER_SUSPENDED", "USER_ACTIVATED"}, actions)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := admin.SuspendUser(ctx, "01JAAAAAAAAAAAAAAAAAAAAAAA")
		requireAPIError(t, err, http.StatusNotFound, verifysdk.ErrorCodeNotFound)
	})
}
