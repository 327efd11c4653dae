package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Development-only fallbacks. Deliberately obvious so they are never
// mistaken for production values; Load rejects production deployments
// that rely on them.
const (
	devSecret   = "DEV_ONLY_SECRET_do_not_use_in_production"
	devUsername = "dev_admin"
	devPassword = "dev_password_only"
)

// MinSecretLength is the minimum accepted signing secret length in
// production.
const MinSecretLength = 32

// Config holds the application configuration loaded from environment
// variables.
type Config struct {
	Env    string `env:"VITRINA_ENV" envDefault:"development"`
	Addr   string `env:"VITRINA_ADDR" envDefault:":8080"`
	DBPath string `env:"VITRINA_DB_PATH" envDefault:"./data/vitrina.db"`

	// Session token signing. Required in production.
	JWTSecret   string        `env:"VITRINA_JWT_SECRET"`
	TokenExpiry time.Duration `env:"VITRINA_TOKEN_EXPIRY" envDefault:"168h"`

	// Admin credentials. Required in production; prefer the bcrypt hash
	// over the plaintext password.
	AdminUsername     string `env:"VITRINA_ADMIN_USERNAME"`
	AdminPassword     string `env:"VITRINA_ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"VITRINA_ADMIN_PASSWORD_HASH"`

	// Object storage. When the bucket endpoint is unset, development
	// falls back to a local uploads directory.
	BucketEndpoint string `env:"VITRINA_BUCKET_ENDPOINT"`
	BucketName     string `env:"VITRINA_BUCKET_NAME" envDefault:"images"`
	BucketKey      string `env:"VITRINA_BUCKET_KEY"`
	UploadsDir     string `env:"VITRINA_UPLOADS_DIR" envDefault:"./uploads"`
	PublicBaseURL  string `env:"VITRINA_PUBLIC_BASE_URL"`
}

// IsProduction returns true if the application runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// IsDevelopment returns true if the application runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// UseBucket returns true if remote object storage is configured.
func (c Config) UseBucket() bool {
	return c.BucketEndpoint != "" && c.BucketKey != ""
}

// Load parses environment variables and returns a Config. In production
// the signing secret and admin credentials are mandatory; in development
// missing values fall back to clearly-marked dev-only defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.IsProduction() {
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("VITRINA_JWT_SECRET is required in production; " +
				"generate one with: openssl rand -base64 32")
		}
		if len(cfg.JWTSecret) < MinSecretLength {
			return nil, fmt.Errorf("VITRINA_JWT_SECRET must be at least %d bytes long, got %d",
				MinSecretLength, len(cfg.JWTSecret))
		}
		if cfg.AdminUsername == "" {
			return nil, fmt.Errorf("VITRINA_ADMIN_USERNAME is required in production")
		}
		if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
			return nil, fmt.Errorf("VITRINA_ADMIN_PASSWORD or VITRINA_ADMIN_PASSWORD_HASH is required in production")
		}
		return cfg, nil
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = devSecret
		slog.Warn("VITRINA_JWT_SECRET not set, using development fallback")
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = devUsername
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		cfg.AdminPassword = devPassword
		slog.Warn("admin credentials not set, using development fallback", "username", cfg.AdminUsername)
	}

	return cfg, nil
}
