package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior. Values come from the environment; zero
// values are filled in by Validate.
type Config struct {
	TMDBAPIKey  string `env:"MOVIEDECK_TMDB_KEY"`
	TMDBBaseURL string `env:"MOVIEDECK_TMDB_BASE_URL"`

	EngageEndpoint  string `env:"MOVIEDECK_ENGAGE_ENDPOINT"`
	EngageAccountID string `env:"MOVIEDECK_ENGAGE_ACCOUNT_ID"`
	EngagePasscode  string `env:"MOVIEDECK_ENGAGE_PASSCODE"`
	OptInPush       bool   `env:"MOVIEDECK_OPTIN_PUSH" envDefault:"true"`
	OptInEmail      bool   `env:"MOVIEDECK_OPTIN_EMAIL" envDefault:"true"`

	DataDir string `env:"MOVIEDECK_DATA_DIR"`
	LogPath string `env:"MOVIEDECK_LOG_PATH"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TMDBAPIKey == "" {
		return errors.New("catalog api key is required (MOVIEDECK_TMDB_KEY)")
	}
	if c.EngageEndpoint != "" && c.EngageAccountID == "" {
		return errors.New("engage endpoint configured without an account id")
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "moviedeck")
	}
	return nil
}

// EngageConfigured reports whether a real engagement transport can be built.
func (c Config) EngageConfigured() bool {
	return c.EngageEndpoint != "" && c.EngageAccountID != ""
}
