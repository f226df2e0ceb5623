// Package engine runs annotation, rules and structural analysis over the
// paragraphs of a document and scores the result.
package engine

import (
	"context"

	"github.com/pthm/doclint/internal/analyzer"
	"github.com/pthm/doclint/internal/annotate"
)

// ParagraphReport is the analysis of one paragraph.
type ParagraphReport struct {
	ParagraphNumber   int                        `json:"paragraphNumber"`
	Text              string                     `json:"text"`
	Feedback          []string                   `json:"feedback"`
	ReadabilityScores analyzer.ReadabilityScores `json:"readabilityScores"`
	QualityScore      float64                    `json:"qualityScore"`
}

// AggregateReport summarizes every paragraph of a document.
type AggregateReport struct {
	AvgQualityScore float64 `json:"avgQualityScore"`
	Color           Color   `json:"color"`
	ParagraphCount  int     `json:"paragraphCount"`
	TotalWords      int     `json:"totalWords"`
	Message         string  `json:"message"`
}

// SuggestionSource produces rule suggestions for one paragraph.
type SuggestionSource interface {
	Suggest(content string, doc *annotate.Annotation) []string
}

// ContextSource is a SuggestionSource whose checks can be cancelled. Analyze
// passes its context to sources that implement it.
type ContextSource interface {
	SuggestionSource
	SuggestContext(ctx context.Context, content string, doc *annotate.Annotation) []string
}

// SourceFunc adapts a plain function to a SuggestionSource. The annotation is
// not passed on.
type SourceFunc func(content string) []string

// Suggest implements SuggestionSource.
func (f SourceFunc) Suggest(content string, _ *annotate.Annotation) []string {
	return f(content)
}
