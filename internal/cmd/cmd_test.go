package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm/doclint/internal/config"
	"github.com/pthm/doclint/internal/engine"
	"github.com/pthm/doclint/internal/reporter"
)

func TestCheckMinScore(t *testing.T) {
	results := []reporter.DocumentResult{
		{File: "good.md", Report: engine.AggregateReport{ParagraphCount: 2, AvgQualityScore: 80}},
		{File: "poor.md", Report: engine.AggregateReport{ParagraphCount: 1, AvgQualityScore: 20}},
		{File: "empty.md"},
	}

	tests := []struct {
		name    string
		min     float64
		wantErr string
	}{
		{"disabled", 0, ""},
		{"all pass", 10, ""},
		{"one below", 50, "1 of 3 documents scored below 50.0"},
		{"both below", 90, "2 of 3 documents scored below 90.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkMinScore(results, tt.min)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuildRegistry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := config.Config{ReviewTimeout: 0}

	t.Run("builtin catalog", func(t *testing.T) {
		reg, reviewing, err := buildRegistry(base, true, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reviewing {
			t.Error("review should be off without an API key")
		}
		if len(reg.Names()) == 0 {
			t.Error("expected builtin rules")
		}
	})

	t.Run("review with key", func(t *testing.T) {
		cfg := base
		cfg.AnthropicAPIKey = "test-key"
		reg, reviewing, err := buildRegistry(cfg, true, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		names := reg.Names()
		if !reviewing || names[len(names)-1] != "llm-review" {
			t.Errorf("review rule not registered last: %v", names)
		}
		if len(reg.Rules(false)) != len(names)-1 {
			t.Error("review rule should require AI")
		}
	})

	t.Run("review not requested", func(t *testing.T) {
		cfg := base
		cfg.AnthropicAPIKey = "test-key"
		_, reviewing, err := buildRegistry(cfg, false, logger)
		if err != nil || reviewing {
			t.Errorf("reviewing = %v, err = %v", reviewing, err)
		}
	})

	t.Run("custom catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		catalog := "rules:\n  - name: house-terms\n    kind: pattern\n    category: style\n    entries:\n      - pattern: '(?i)\\butilize\\b'\n        message: \"Use 'use'.\"\n"
		if err := os.WriteFile(path, []byte(catalog), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg := base
		cfg.RulesFile = path
		reg, _, err := buildRegistry(cfg, false, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if names := reg.Names(); len(names) != 1 || names[0] != "house-terms" {
			t.Errorf("Names() = %v", names)
		}
	})

	t.Run("missing catalog", func(t *testing.T) {
		cfg := base
		cfg.RulesFile = filepath.Join(t.TempDir(), "absent.yaml")
		if _, _, err := buildRegistry(cfg, false, logger); err == nil {
			t.Error("expected an error for a missing rules file")
		}
	})
}

func TestLintConfigOverrides(t *testing.T) {
	t.Setenv("DOCLINT_MAX_SENTENCE_TOKENS", "30")
	t.Setenv("DOCLINT_WORKERS", "2")

	maxTokens, workers = 0, 5
	defer func() { maxTokens, workers = 0, 0 }()

	cfg, err := lintConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxSentenceTokens != 30 {
		t.Errorf("MaxSentenceTokens = %d, want env value 30", cfg.MaxSentenceTokens)
	}
	if cfg.Workers != 5 {
		t.Errorf("Workers = %d, want flag value 5", cfg.Workers)
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetArgs([]string{"version"})
	defer RootCmd.SetArgs(nil)

	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "doclint ") {
		t.Errorf("version output = %q", buf.String())
	}
}
