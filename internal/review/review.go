// Package review provides an optional style rule backed by the Anthropic
// Messages API.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pthm/doclint/internal/annotate"
	"github.com/pthm/doclint/internal/rules"
)

// DefaultModel is used when no model is configured.
const DefaultModel = string(anthropic.ModelClaude3_5Haiku20241022)

const maxParagraphChars = 8000

// completeFunc sends a prompt and returns the response text.
type completeFunc func(ctx context.Context, prompt string) (string, error)

// LLMRule asks a model to review one paragraph against the style guide.
type LLMRule struct {
	complete completeFunc
	timeout  time.Duration
}

// New creates an LLMRule. Returns nil if apiKey is empty.
func New(apiKey, model string) *LLMRule {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = DefaultModel
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	complete := func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(model),
			MaxTokens: 1024,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			return "", fmt.Errorf("anthropic API error: %w", err)
		}
		for _, block := range resp.Content {
			if block.Type == "text" {
				return block.Text, nil
			}
		}
		return "", fmt.Errorf("empty response from model")
	}
	return &LLMRule{complete: complete, timeout: 60 * time.Second}
}

// WithTimeout sets the per-paragraph request timeout.
func (r *LLMRule) WithTimeout(d time.Duration) *LLMRule {
	if r != nil && d > 0 {
		r.timeout = d
	}
	return r
}

func (r *LLMRule) Name() string {
	return "llm-review"
}

func (r *LLMRule) Description() string {
	return "Asks a language model for style and clarity suggestions"
}

func (r *LLMRule) Config() rules.RuleConfig {
	return rules.RuleConfig{Category: rules.CategoryReview, RequiresAI: true}
}

func (r *LLMRule) Check(content string, doc *annotate.Annotation) ([]string, error) {
	return r.CheckContext(context.Background(), content, doc)
}

// CheckContext reviews content; cancelling ctx aborts the request.
func (r *LLMRule) CheckContext(ctx context.Context, content string, _ *annotate.Annotation) ([]string, error) {
	if r == nil || r.complete == nil {
		return nil, fmt.Errorf("LLM review not initialized (missing ANTHROPIC_API_KEY)")
	}
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := r.complete(ctx, buildPrompt(content))
	if err != nil {
		return nil, err
	}
	return parseSuggestions(text)
}

func buildPrompt(content string) string {
	return fmt.Sprintf(`Review this paragraph of technical documentation for style problems.

Look for:
1. Unclear or ambiguous wording
2. Passive voice that hides who acts
3. Jargon that a general reader would not know
4. Sentences that should be split
5. Inconsistent terminology

Lines are numbered from 1 at the start of the paragraph.

Paragraph:
%s

Respond with JSON only, in this shape:
{
  "suggestions": [
    {"line": 1, "message": "one sentence of guidance"}
  ]
}

Return an empty list if the paragraph reads well.`, truncate(content, maxParagraphChars))
}

type response struct {
	Suggestions []struct {
		Line    int    `json:"line"`
		Message string `json:"message"`
	} `json:"suggestions"`
}

func parseSuggestions(text string) ([]string, error) {
	var resp response
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w (response: %s)", err, truncate(text, 200))
	}

	out := make([]string, 0, len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		msg := strings.TrimSpace(s.Message)
		if msg == "" {
			continue
		}
		if s.Line > 0 {
			msg = fmt.Sprintf("Line %d: %s", s.Line, msg)
		}
		out = append(out, msg)
	}
	return out, nil
}

// ExtractJSON attempts to extract JSON from a response that might be wrapped in markdown
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "{") {
		return s
	}

	if idx := strings.Index(s, "```json"); idx != -1 {
		start := idx + 7
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}

	if idx := strings.Index(s, "```"); idx != -1 {
		start := idx + 3
		// Skip any language identifier
		if nl := strings.Index(s[start:], "\n"); nl != -1 {
			start += nl + 1
		}
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			return s[start : end+1]
		}
	}

	return s
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
