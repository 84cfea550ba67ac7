package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/hireproof/pkg/jwtx"
)

// InitSessionKeys loads the session signing key.
//
// With SESSION_KEY_FILE set the key is read from (or created at) that path
// and sessions survive restarts. Otherwise a key is generated in memory.
func InitSessionKeys(cfg SessionConfig, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
	}

	if cfg.KeyFile != "" {
		km, err := jwtx.NewFileKeyManager(cfg.KeyFile, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to load session key: %w", err)
		}
		logger.Info("session signing key loaded", "path", cfg.KeyFile, "issuer", cfg.Issuer)
		return km, nil
	}

	km, err := jwtx.NewEphemeralKeyManager(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}
	logger.Warn("using an ephemeral session key, sessions end on restart", "issuer", cfg.Issuer)
	return km, nil
}
