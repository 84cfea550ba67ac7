package verify_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	t.Run("livez", func(t *testing.T) {
		h, err := env.client.Livez(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", h.Status)
		require.NotEmpty(t, h.Version)
	})

	t.Run("readyz reports each dependency", func(t *testing.T) {
		h, err := env.client.Readyz(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", h.Status)
		require.NotNil(t, h.Checks)
		require.Equal(t, "ok", h.Checks.Database)
		require.Equal(t, "ok", h.Checks.Signer)
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		resp, err := http.Get(env.client.BaseURL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "verifyd_http_requests_total")
		require.Contains(t, string(body), "go_goroutines")
	})
}
