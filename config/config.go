package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds process-level settings, all overridable via environment
// variables (optionally from a .env file).
type Config struct {
	// Storage
	DataDir string `env:"MINILIB_DATA_DIR" envDefault:"data"`

	// Web shell
	ListenAddr string `env:"MINILIB_LISTEN_ADDR" envDefault:":5000"`
	LogLevel   string `env:"MINILIB_LOG_LEVEL" envDefault:"info"`
}

// Load reads a .env file if present, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
