package rules

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pthm/doclint/internal/annotate"
)

// ErrUnknownRule is returned when a rule name is not registered.
var ErrUnknownRule = errors.New("unknown rule")

// Registry holds all registered rules in the order they run.
type Registry struct {
	rules  []Rule
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger that receives rule failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates a new rule registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		rules:  make([]Rule, 0),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a rule to the registry
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Rules returns all registered rules, optionally filtering by AI requirement.
// If includeAI is false, rules with RequiresAI=true are excluded.
func (r *Registry) Rules(includeAI bool) []Rule {
	if includeAI {
		return r.rules
	}

	var result []Rule
	for _, rule := range r.rules {
		if !rule.Config().RequiresAI {
			result = append(result, rule)
		}
	}
	return result
}

// Get returns a rule by name
func (r *Registry) Get(name string) (Rule, error) {
	for _, rule := range r.rules {
		if rule.Name() == name {
			return rule, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
}

// Names returns the registered rule names in run order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		names = append(names, rule.Name())
	}
	return names
}

// Suggest runs every registered rule against content and concatenates the
// results in registration order. A rule that fails or panics contributes
// nothing; the failure is logged and the remaining rules still run.
func (r *Registry) Suggest(content string, doc *annotate.Annotation) []string {
	return r.SuggestContext(context.Background(), content, doc)
}

// SuggestContext is Suggest with a context handed to every ContextRule.
func (r *Registry) SuggestContext(ctx context.Context, content string, doc *annotate.Annotation) []string {
	var out []string
	for _, rule := range r.rules {
		suggestions, err := r.check(ctx, rule, content, doc)
		if err != nil {
			r.logger.Warn("rule failed",
				"rule", rule.Name(),
				"error", err,
				"excerpt", excerpt(content),
			)
			continue
		}
		out = append(out, suggestions...)
	}
	return out
}

// Func adapts the registry to a plain text-to-suggestions function that
// annotates content itself.
func (r *Registry) Func(a annotate.Annotator) func(string) []string {
	return func(content string) []string {
		return r.Suggest(content, a.Annotate(content))
	}
}

func (r *Registry) check(ctx context.Context, rule Rule, content string, doc *annotate.Annotation) (out []string, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	if cr, ok := rule.(ContextRule); ok {
		return cr.CheckContext(ctx, content, doc)
	}
	return rule.Check(content, doc)
}

func excerpt(s string) string {
	const limit = 40
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
