package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port     int
	DBPath   string
	LogLevel string
	// Optional bearer token guarding the interview routes; empty disables
	// auth.
	APIKey string
	// Upstream call deadlines
	GenerateTimeout time.Duration
	EvaluateTimeout time.Duration
	// Per-provider base URL overrides, e.g. for proxies or self-hosted
	// gateways. Keyed by provider id.
	BaseURLOverrides map[string]string
	// Seed for local question selection; 0 means time-based.
	QuestionSeed int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:             envInt("PORT", 8820),
		DBPath:           envStr("INTERVIEW_DB_PATH", "/data/interviews.db"),
		LogLevel:         envStr("LOG_LEVEL", "info"),
		APIKey:           envStr("API_KEY", ""),
		GenerateTimeout:  envDuration("GENERATE_TIMEOUT", 30*time.Second),
		EvaluateTimeout:  envDuration("EVALUATE_TIMEOUT", 45*time.Second),
		BaseURLOverrides: envBaseURLs(),
		QuestionSeed:     int64(envInt("QUESTION_SEED", 0)),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("INTERVIEW_DB_PATH must not be empty")
	}
	if c.GenerateTimeout <= 0 {
		return fmt.Errorf("GENERATE_TIMEOUT must be positive, got %s", c.GenerateTimeout)
	}
	if c.EvaluateTimeout <= 0 {
		return fmt.Errorf("EVALUATE_TIMEOUT must be positive, got %s", c.EvaluateTimeout)
	}
	return nil
}

// envBaseURLs collects <PROVIDER>_BASE_URL overrides for the providers we
// route to.
func envBaseURLs() map[string]string {
	providers := []string{"openai", "anthropic", "google", "perplexity", "grok", "together_ai"}
	out := map[string]string{}
	for _, p := range providers {
		key := strings.ToUpper(p) + "_BASE_URL"
		if v := os.Getenv(key); v != "" {
			out[p] = v
		}
	}
	return out
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
