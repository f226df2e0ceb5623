package config

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DOCLINT_ADDR", "DOCLINT_WORKERS", "DOCLINT_MAX_SENTENCE_TOKENS",
		"DOCLINT_RULES_FILE", "DOCLINT_MAX_UPLOAD_BYTES", "DOCLINT_FEEDBACK_DB",
		"ANTHROPIC_API_KEY", "DOCLINT_REVIEW_MODEL", "DOCLINT_REVIEW_TIMEOUT",
		"DOCLINT_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
	}
	if cfg.MaxSentenceTokens != 25 {
		t.Errorf("MaxSentenceTokens = %d, want 25", cfg.MaxSentenceTokens)
	}
	if cfg.MaxUploadBytes != 20<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 20<<20)
	}
	if cfg.FeedbackDB != "" || cfg.RulesFile != "" {
		t.Errorf("expected empty paths, got %q and %q", cfg.FeedbackDB, cfg.RulesFile)
	}
	if cfg.ReviewEnabled() {
		t.Error("ReviewEnabled() should be false without an API key")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DOCLINT_ADDR", "127.0.0.1:9000")
	t.Setenv("DOCLINT_WORKERS", "3")
	t.Setenv("DOCLINT_MAX_SENTENCE_TOKENS", "40")
	t.Setenv("DOCLINT_MAX_UPLOAD_BYTES", "1024")
	t.Setenv("DOCLINT_FEEDBACK_DB", "/tmp/f.db")
	t.Setenv("ANTHROPIC_API_KEY", "key")
	t.Setenv("DOCLINT_REVIEW_TIMEOUT", "5s")

	cfg := Load()
	if cfg.Addr != "127.0.0.1:9000" || cfg.Workers != 3 || cfg.MaxSentenceTokens != 40 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.MaxUploadBytes != 1024 || cfg.FeedbackDB != "/tmp/f.db" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !cfg.ReviewEnabled() || cfg.ReviewTimeout != 5*time.Second {
		t.Errorf("unexpected review settings %+v", cfg)
	}
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("DOCLINT_WORKERS", "many")
	t.Setenv("DOCLINT_MAX_SENTENCE_TOKENS", "-4")
	t.Setenv("DOCLINT_REVIEW_TIMEOUT", "soon")

	cfg := Load()
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want NumCPU", cfg.Workers)
	}
	if cfg.MaxSentenceTokens != 25 {
		t.Errorf("MaxSentenceTokens = %d, want 25", cfg.MaxSentenceTokens)
	}
	if cfg.ReviewTimeout != 60*time.Second {
		t.Errorf("ReviewTimeout = %v, want 60s", cfg.ReviewTimeout)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Addr: ":8080", Workers: 1, MaxSentenceTokens: 25, MaxUploadBytes: 1}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty addr", func(c *Config) { c.Addr = "" }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"zero tokens", func(c *Config) { c.MaxSentenceTokens = 0 }, true},
		{"zero upload", func(c *Config) { c.MaxUploadBytes = 0 }, true},
		{"missing rules file", func(c *Config) { c.RulesFile = filepath.Join(t.TempDir(), "none.yaml") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
