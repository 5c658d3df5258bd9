package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries all runtime settings, loaded from ORGAUTH_* environment
// variables.
type Config struct {
	HTTPAddr string `env:"ORGAUTH_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"ORGAUTH_GRPC_ADDR"`

	PostgresDSN string `env:"ORGAUTH_PG_DSN"`

	AuthSecret string        `env:"ORGAUTH_AUTH_SECRET"`
	TokenTTL   time.Duration `env:"ORGAUTH_TOKEN_TTL" envDefault:"1h"`

	RateBurst    int   `env:"ORGAUTH_RATE_BURST" envDefault:"20"`
	RatePerSec   int   `env:"ORGAUTH_RATE_PER_SEC" envDefault:"10"`
	MaxBodyBytes int64 `env:"ORGAUTH_MAX_BODY_BYTES" envDefault:"1048576"`

	MigrationsAuto bool `env:"ORGAUTH_MIGRATE_ON_START" envDefault:"false"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.AuthSecret) == "" {
		return errors.New("config: ORGAUTH_AUTH_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: token TTL must be positive")
	}
	if c.RateBurst <= 0 || c.RatePerSec <= 0 {
		return errors.New("config: rate limits must be positive")
	}
	return nil
}
