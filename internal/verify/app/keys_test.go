package app

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitSessionKeys(t *testing.T) {
	cfg := SessionConfig{Issuer: "verifyd-test", Audience: []string{"hireproof"}}

	t.Run("ephemeral", func(t *testing.T) {
		var buf bytes.Buffer
		km, err := InitSessionKeys(cfg, slog.New(slog.NewTextHandler(&buf, nil)))
		require.NoError(t, err)
		require.True(t, km.IsReady())
		require.Contains(t, buf.String(), "ephemeral")
	})

	t.Run("file keys survive a restart", func(t *testing.T) {
		cfg := cfg
		cfg.KeyFile = filepath.Join(t.TempDir(), "keys", "session.json")
		logger := slog.New(slog.DiscardHandler)

		first, err := InitSessionKeys(cfg, logger)
		require.NoError(t, err)
		second, err := InitSessionKeys(cfg, logger)
		require.NoError(t, err)

		require.Equal(t, first.KeySet.PublicJWKS(), second.KeySet.PublicJWKS())
	})
}
