package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains service configuration parameters.
type Config struct {
	Env          string       `env:"ENV" envDefault:"development"`
	Port         string       `env:"PORT" envDefault:"8080"`
	LogLevel     int          `env:"LOG_LEVEL" envDefault:"0"`
	Database     Database     `envPrefix:"DATABASE_"`
	JWT          JWT          `envPrefix:"JWT_"`
	Lifecycle    Lifecycle    `envPrefix:"LIFECYCLE_"`
	Registration Registration `envPrefix:"REGISTRATION_"`
	SMTP         SMTP         `envPrefix:"SMTP_"`
	Storage      Storage      `envPrefix:"MINIO_"`
}

// Database contains database connection parameters.
type Database struct {
	URL string `env:"URL,required"`
}

// JWT contains signing key material and validity windows for signed tokens.
// The secret is always injected; the service never generates one at start,
// so tokens stay valid across restarts.
type JWT struct {
	Secret        string        `env:"SECRET,required"`
	AccessExpiry  time.Duration `env:"ACCESS_EXPIRY" envDefault:"15m"`
	RefreshExpiry time.Duration `env:"REFRESH_EXPIRY" envDefault:"168h"`
}

// Lifecycle contains validity windows for single-use account tokens.
type Lifecycle struct {
	ActivationTTL time.Duration `env:"ACTIVATION_TTL" envDefault:"24h"`
	ResetTTL      time.Duration `env:"RESET_TTL" envDefault:"1h"`
}

// Registration controls whether new accounts start disabled until activated.
type Registration struct {
	RequireActivation bool `env:"REQUIRE_ACTIVATION" envDefault:"true"`
}

// SMTP contains mail relay parameters.
type SMTP struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"25"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"no-reply@localhost"`
	BaseURL  string `env:"BASE_URL" envDefault:"http://localhost:8080"`
}

// Storage contains object storage parameters for avatars.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"account-avatars"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
