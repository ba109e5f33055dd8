// Package config loads the web server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	SessionStoreMySQL = "mysql"
	SessionStoreRedis = "redis"
)

type Config struct {
	Addr            string        `env:"ADDR" envDefault:":4001"`
	DSN             string        `env:"DSN"`
	Debug           bool          `env:"DEBUG" envDefault:"false"`
	Migrate         bool          `env:"MIGRATE" envDefault:"false"`
	APIURL          string        `env:"API_URL" envDefault:"http://localhost:8080"`
	APITimeout      time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	SessionStore    string        `env:"SESSION_STORE" envDefault:"mysql"`
	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"12h"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
}

// Load reads the given .env files, if present, and then parses the environment. Variables
// already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that the flags may have overridden after Load.
func (c *Config) Validate() error {
	switch c.SessionStore {
	case SessionStoreMySQL, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown session store %q", c.SessionStore)
	}

	// Admin accounts live in MySQL whichever session store is used.
	if c.DSN == "" {
		return errors.New("a MySQL data source name is required")
	}

	return nil
}
