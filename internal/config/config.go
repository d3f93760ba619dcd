package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment (a .env file is loaded first in main).
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	SessionSecret string `env:"SESSION_SECRET" envDefault:"secret_key_change_me"`
	// Sessions effectively last until explicit logout.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"87600h"`
	CookieName string        `env:"COOKIE_NAME" envDefault:"qid"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
