package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("STORAGE_BUCKET", "docs")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, "verify.db", cfg.DatabaseFile)
		require.Equal(t, "sqlite", cfg.MFA.ChallengeStore)
		require.Equal(t, 5*time.Minute, cfg.MFA.ChallengeTTL)
		require.Equal(t, 5, cfg.MFA.MaxAttempts)
		require.Equal(t, 10*time.Minute, cfg.UploadSlotTTL)
		require.Equal(t, []string{"hireproof"}, cfg.Session.Audience)
		require.Equal(t, 587, cfg.SMTP.Port)
	})

	t.Run("prefixed overrides", func(t *testing.T) {
		t.Setenv("STORAGE_BUCKET", "docs")
		t.Setenv("STORAGE_USE_PATH_STYLE", "true")
		t.Setenv("SESSION_AUDIENCE", "web,mobile")
		t.Setenv("SESSION_TTL", "15m")
		t.Setenv("MFA_CHALLENGE_STORE", "redis")
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("DISPATCH_BATCH_SIZE", "50")
		t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "root@example.com")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.True(t, cfg.Storage.UsePathStyle)
		require.Equal(t, []string{"web", "mobile"}, cfg.Session.Audience)
		require.Equal(t, 15*time.Minute, cfg.Session.TTL)
		require.Equal(t, "redis", cfg.MFA.ChallengeStore)
		require.Equal(t, 50, cfg.Dispatch.BatchSize)
		require.Equal(t, "root@example.com", cfg.Bootstrap.Email)
	})

	t.Run("unparseable duration", func(t *testing.T) {
		t.Setenv("STORAGE_BUCKET", "docs")
		t.Setenv("MFA_CHALLENGE_TTL", "soon")

		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:    8080,
			Storage: StorageConfig{Bucket: "docs"},
			MFA:     MFAConfig{ChallengeStore: "sqlite", MaxAttempts: 5},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing bucket", func(c *Config) { c.Storage.Bucket = "" }, "STORAGE_BUCKET"},
		{"redis without url", func(c *Config) { c.MFA.ChallengeStore = "redis" }, "REDIS_URL"},
		{"unknown challenge store", func(c *Config) { c.MFA.ChallengeStore = "memcached" }, "MFA_CHALLENGE_STORE"},
		{"no attempts", func(c *Config) { c.MFA.MaxAttempts = 0 }, "MFA_MAX_ATTEMPTS"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("errors are joined", func(t *testing.T) {
		err := Config{MFA: MFAConfig{ChallengeStore: "sqlite"}}.Validate()
		require.ErrorContains(t, err, "STORAGE_BUCKET")
		require.ErrorContains(t, err, "MFA_MAX_ATTEMPTS")
		require.ErrorContains(t, err, "PORT")
	})
}
