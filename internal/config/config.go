package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the worker-loop timing and validation tolerances the engine
// uses. All fields have defaults matching a conservative, low-churn venue.
type Config struct {
	WorkerTickInterval time.Duration `env:"WORKER_TICK_INTERVAL" envDefault:"1s"`
	StatusInterval     time.Duration `env:"STATUS_INTERVAL" envDefault:"30s"`
	GTDCheckInterval   time.Duration `env:"GTD_CHECK_INTERVAL" envDefault:"1h"`
	DailyResetInterval time.Duration `env:"DAILY_RESET_INTERVAL" envDefault:"24h"`
	PriceEpsilon       float64       `env:"PRICE_EPSILON" envDefault:"0.00000001"`
}

// MustLoad loads the configuration from environment variables and .env file,
// panicking on malformed input.
func MustLoad() *Config {
	cfg := &Config{}
	_ = godotenv.Load()
	env.Must(cfg, env.Parse(cfg))
	return cfg
}

// Load loads the configuration from environment variables and .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// absence of a .env file is not fatal; only parse failures are.
		_ = err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration bundle's documented defaults without
// touching the environment.
func Default() *Config {
	return &Config{
		WorkerTickInterval: time.Second,
		StatusInterval:     30 * time.Second,
		GTDCheckInterval:   time.Hour,
		DailyResetInterval: 24 * time.Hour,
		PriceEpsilon:       1e-8,
	}
}
