// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the trainerpanel configuration loaded from TRAINERPANEL_*
// environment variables.
type Config struct {
	// Collection endpoint of the trainer backend.
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"http://localhost:8080/APIRestTrainer/trainer"`
	ListenAddr     string        `env:"LISTEN_ADDR" envDefault:"127.0.0.1:8090"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	// SampleFallback serves the fixed sample dataset when listing fails.
	SampleFallback bool          `env:"SAMPLE_FALLBACK" envDefault:"true"`
	EditSessionTTL time.Duration `env:"EDIT_SESSION_TTL" envDefault:"10m"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// StubConfig holds the sandbox backend configuration loaded from
// TRAINERSTUB_* environment variables.
type StubConfig struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:"127.0.0.1:8080"`
	BasePath   string `env:"BASE_PATH" envDefault:"/APIRestTrainer/trainer"`
	DBPath     string `env:"DB_PATH" envDefault:"trainerstub.db"`
	Seed       bool   `env:"SEED" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads TRAINERPANEL_* variables and returns a validated Config.
// Every variable is optional; see the struct tags for defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TRAINERPANEL_"}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("TRAINERPANEL_API_BASE_URL has invalid URL %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("TRAINERPANEL_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.EditSessionTTL <= 0 {
		return nil, fmt.Errorf("TRAINERPANEL_EDIT_SESSION_TTL must be positive, got %s", cfg.EditSessionTTL)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("TRAINERPANEL_LOG_LEVEL: %w", err)
	}

	return &cfg, nil
}

// LoadStub reads TRAINERSTUB_* variables and returns a validated StubConfig.
func LoadStub() (*StubConfig, error) {
	var cfg StubConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TRAINERSTUB_"}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")
	if cfg.BasePath == "/" {
		return nil, fmt.Errorf("TRAINERSTUB_BASE_PATH must not be empty")
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("TRAINERSTUB_LOG_LEVEL: %w", err)
	}

	return &cfg, nil
}

// ParseLogLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
