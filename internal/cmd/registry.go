package cmd

import (
	"fmt"
	"log/slog"

	"github.com/pthm/doclint/internal/config"
	"github.com/pthm/doclint/internal/review"
	"github.com/pthm/doclint/internal/rules"
)

// buildRegistry loads the rule catalog named by cfg and, when review is set
// and an API key is configured, appends the LLM review rule. The returned
// bool reports whether the review rule was registered.
func buildRegistry(cfg config.Config, withReview bool, logger *slog.Logger) (*rules.Registry, bool, error) {
	var registry *rules.Registry
	if cfg.RulesFile != "" {
		r, err := rules.RegistryFromFile(cfg.RulesFile, rules.WithLogger(logger))
		if err != nil {
			return nil, false, fmt.Errorf("failed to load rules: %w", err)
		}
		registry = r
	} else {
		registry = rules.DefaultRegistry(rules.WithLogger(logger))
	}

	if !withReview || !cfg.ReviewEnabled() {
		return registry, false, nil
	}
	registry.Register(review.New(cfg.AnthropicAPIKey, cfg.ReviewModel).WithTimeout(cfg.ReviewTimeout))
	return registry, true, nil
}
