// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Blob     BlobConfig
	Auth     AuthConfig
	Log      LogConfig
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            int           `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

// Addr returns the listen address.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	DSN      string `env:"DATABASE_DSN" env-required:"true"`
	MaxConns int32  `env:"DATABASE_MAX_CONNS" env-default:"25"`
	MinConns int32  `env:"DATABASE_MIN_CONNS" env-default:"5"`
}

// BlobConfig holds object store settings.
type BlobConfig struct {
	Endpoint      string `env:"BLOB_ENDPOINT" env-required:"true"`
	AccessKey     string `env:"BLOB_ACCESS_KEY" env-required:"true"`
	SecretKey     string `env:"BLOB_SECRET_KEY" env-required:"true"`
	UseSSL        bool   `env:"BLOB_USE_SSL" env-default:"false"`
	PublicBaseURL string `env:"BLOB_PUBLIC_BASE_URL"`

	StoreBucket     string `env:"BLOB_STORE_BUCKET" env-default:"stores"`
	WarehouseBucket string `env:"BLOB_WAREHOUSE_BUCKET" env-default:"warehouses"`
}

// AuthConfig holds token validation settings.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" env-required:"true"`
	Issuer    string `env:"AUTH_ISSUER"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" env-default:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" env-default:"false"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}
