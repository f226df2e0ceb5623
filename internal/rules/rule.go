// Package rules holds the style rule catalog and the registry that runs it
// against one paragraph at a time.
package rules

import (
	"context"
	"fmt"

	"github.com/pthm/doclint/internal/annotate"
	"github.com/pthm/doclint/internal/position"
)

// Rule categories used by the builtin catalog.
const (
	CategoryTerminology = "terminology"
	CategoryGrammar     = "grammar"
	CategoryStyle       = "style"
	CategoryConcision   = "concision"
	CategoryContraction = "contraction"
	CategoryReview      = "review"
)

// RuleConfig defines how a rule should be invoked
type RuleConfig struct {
	// Category groups rules in listings.
	Category string

	// RequiresAI indicates this rule needs an LLM for analysis.
	// AI rules only run when --deep flag is enabled.
	RequiresAI bool
}

// Rule defines the interface for style rules
type Rule interface {
	// Name returns the unique identifier for this rule
	Name() string

	// Description returns a human-readable description
	Description() string

	// Config returns the rule's configuration
	Config() RuleConfig

	// Check returns the suggestions for one paragraph. Suggestions tied to a
	// span start with "Line N: ", counted from the start of content.
	// Implementations must not modify doc.
	Check(content string, doc *annotate.Annotation) ([]string, error)
}

// ContextRule is a Rule whose check can be cancelled, such as one that calls
// a remote service.
type ContextRule interface {
	Rule
	CheckContext(ctx context.Context, content string, doc *annotate.Annotation) ([]string, error)
}

// lineTagged prefixes msg with the line that offset falls on.
func lineTagged(content string, offset int, msg string) string {
	return fmt.Sprintf("Line %d: %s", position.LineNumberOf(content, offset), msg)
}

// meta carries the identity shared by every catalog rule.
type meta struct {
	name        string
	description string
	config      RuleConfig
}

func (m meta) Name() string        { return m.name }
func (m meta) Description() string { return m.description }
func (m meta) Config() RuleConfig  { return m.config }
