package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port                int           `env:"PORT" envDefault:"8080"`
	Env                 string        `env:"ENV" envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DatabaseFile string `env:"DATABASE_FILE" envDefault:"verify.db"`
	PepperFile   string `env:"PEPPER_FILE" envDefault:"pepper"`

	Session   SessionConfig   `envPrefix:"SESSION_"`
	Storage   StorageConfig   `envPrefix:"STORAGE_"`
	SMTP      SMTPConfig      `envPrefix:"SMTP_"`
	MFA       MFAConfig       `envPrefix:"MFA_"`
	Dispatch  DispatchConfig  `envPrefix:"DISPATCH_"`
	Bootstrap BootstrapConfig `envPrefix:"BOOTSTRAP_ADMIN_"`

	// RedisURL is required when MFA.ChallengeStore is "redis".
	RedisURL string `env:"REDIS_URL"`

	UploadSlotTTL        time.Duration `env:"UPLOAD_SLOT_TTL" envDefault:"10m"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

type SessionConfig struct {
	Issuer   string        `env:"ISSUER" envDefault:"hireproof-verifyd"`
	Audience []string      `env:"AUDIENCE" envDefault:"hireproof" envSeparator:","`
	TTL      time.Duration `env:"TTL" envDefault:"1h"`

	// KeyFile persists the signing key across restarts. Empty means an
	// ephemeral key and every restart logs all sessions out.
	KeyFile string `env:"KEY_FILE"`
}

type StorageConfig struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION" envDefault:"us-east-1"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"USE_PATH_STYLE"`
	PublicBaseURL   string `env:"PUBLIC_BASE_URL"`
}

// SMTPConfig enables email delivery when Host is set. Without it
// notifications are written to the log.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"HireProof <no-reply@hireproof.local>"`
}

type MFAConfig struct {
	ChallengeTTL   time.Duration `env:"CHALLENGE_TTL" envDefault:"5m"`
	ResendCooldown time.Duration `env:"RESEND_COOLDOWN" envDefault:"60s"`
	MaxAttempts    int           `env:"MAX_ATTEMPTS" envDefault:"5"`
	SendTimeout    time.Duration `env:"SEND_TIMEOUT" envDefault:"10s"`

	// ChallengeStore is "sqlite" or "redis".
	ChallengeStore string `env:"CHALLENGE_STORE" envDefault:"sqlite"`
}

type DispatchConfig struct {
	Interval    time.Duration `env:"INTERVAL" envDefault:"5s"`
	BatchSize   int           `env:"BATCH_SIZE" envDefault:"20"`
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"5"`
	BaseBackoff time.Duration `env:"BASE_BACKOFF" envDefault:"30s"`
}

// BootstrapConfig seeds the first admin. An empty Password is generated
// and logged once.
type BootstrapConfig struct {
	Email    string `env:"EMAIL" envDefault:"admin@hireproof.local"`
	Password string `env:"PASSWORD"`
}

// LoadConfig reads the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Storage.Bucket == "" {
		errs = append(errs, errors.New("STORAGE_BUCKET is required"))
	}
	switch c.MFA.ChallengeStore {
	case "sqlite":
	case "redis":
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when MFA_CHALLENGE_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("MFA_CHALLENGE_STORE must be sqlite or redis, got %q", c.MFA.ChallengeStore))
	}
	if c.MFA.MaxAttempts < 1 {
		errs = append(errs, errors.New("MFA_MAX_ATTEMPTS must be at least 1"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	return errors.Join(errs...)
}
