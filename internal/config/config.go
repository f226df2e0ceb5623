// Package config loads service and CLI settings from the environment.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/pthm/doclint/internal/analyzer"
)

type Config struct {
	Addr string

	// Analysis
	Workers           int
	MaxSentenceTokens int
	RulesFile         string

	// Upload limits
	MaxUploadBytes int64

	// Feedback store; empty keeps entries in memory
	FeedbackDB string

	// LLM review
	AnthropicAPIKey string
	ReviewModel     string
	ReviewTimeout   time.Duration

	ShutdownTimeout time.Duration
}

const defaultMaxUploadBytes = 20 << 20

func Load() Config {
	cfg := Config{
		Addr: envOr("DOCLINT_ADDR", ":8080"),

		Workers:           envInt("DOCLINT_WORKERS", runtime.NumCPU()),
		MaxSentenceTokens: envInt("DOCLINT_MAX_SENTENCE_TOKENS", analyzer.DefaultMaxSentenceTokens),
		RulesFile:         os.Getenv("DOCLINT_RULES_FILE"),

		MaxUploadBytes: envInt64("DOCLINT_MAX_UPLOAD_BYTES", defaultMaxUploadBytes),

		FeedbackDB: os.Getenv("DOCLINT_FEEDBACK_DB"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		ReviewModel:     os.Getenv("DOCLINT_REVIEW_MODEL"),
		ReviewTimeout:   envDuration("DOCLINT_REVIEW_TIMEOUT", 60*time.Second),

		ShutdownTimeout: envDuration("DOCLINT_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.MaxSentenceTokens <= 0 {
		cfg.MaxSentenceTokens = analyzer.DefaultMaxSentenceTokens
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.ReviewTimeout <= 0 {
		cfg.ReviewTimeout = 60 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

// Validate checks settings that flags may have overridden after Load.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.MaxSentenceTokens <= 0 {
		return fmt.Errorf("max sentence tokens must be positive, got %d", c.MaxSentenceTokens)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); err != nil {
			return fmt.Errorf("rules file: %w", err)
		}
	}
	return nil
}

// ReviewEnabled reports whether the LLM review rule can be registered.
func (c Config) ReviewEnabled() bool {
	return c.AnthropicAPIKey != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
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
