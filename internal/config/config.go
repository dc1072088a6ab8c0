package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const DefaultBaseURL = "https://portal.genai.nchc.org.tw/api/v1"

// Config defines all environment-driven runtime options.
type Config struct {
	APIKey          string        `env:"NCHC_API_KEY"`
	BaseURL         string        `env:"NCHC_API_BASE_URL" envDefault:"https://portal.genai.nchc.org.tw/api/v1"`
	Host            string        `env:"NCHC_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"NCHC_PORT" envDefault:"8000"`
	UpstreamTimeout time.Duration `env:"NCHC_UPSTREAM_TIMEOUT" envDefault:"60s"`
	Proxy           string        `env:"NCHC_UPSTREAM_PROXY"`
	LogLevel        string        `env:"NCHC_LOG_LEVEL" envDefault:"info"`
	LogFile         string        `env:"NCHC_LOG_FILE"`
	CORSOrigins     []string      `env:"NCHC_CORS_ORIGINS" envDefault:"*" envSeparator:","`
	MaxBodyBytes    int64         `env:"NCHC_MAX_BODY_BYTES" envDefault:"4194304"`
}

// Load reads .env (if present) and parses environment variables into Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("parse env config: NCHC_UPSTREAM_TIMEOUT must be positive, got %s", cfg.UpstreamTimeout)
	}

	cfg.Proxy = strings.TrimSpace(cfg.Proxy)
	if cfg.Proxy != "" {
		parsed, err := url.Parse(cfg.Proxy)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, fmt.Errorf("parse env config: invalid NCHC_UPSTREAM_PROXY %q", cfg.Proxy)
		}
	}

	return cfg, nil
}

// APIKeyConfigured reports whether POST routes can reach the upstream.
func (c *Config) APIKeyConfigured() bool {
	return c != nil && c.APIKey != ""
}
