package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pthm/doclint/internal/analyzer"
	"github.com/pthm/doclint/internal/annotate"
)

// Engine analyzes documents. It holds configuration only and is safe for
// concurrent use.
type Engine struct {
	annotator annotate.Annotator
	logger    *slog.Logger
	maxTokens int
	workers   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithAnnotator sets the annotator shared by rules and structural analysis.
func WithAnnotator(a annotate.Annotator) Option {
	return func(e *Engine) {
		if a != nil {
			e.annotator = a
		}
	}
}

// WithLogger sets the logger for suggestion source failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxSentenceTokens sets the long-sentence threshold.
func WithMaxSentenceTokens(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// WithWorkers bounds how many paragraphs are analyzed at once.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		annotator: annotate.Default(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxTokens: analyzer.DefaultMaxSentenceTokens,
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze reports on every paragraph, in input order, and aggregates the
// result. Paragraphs are analyzed in parallel. The only error is the
// context's, when it ends before every paragraph is done.
func (e *Engine) Analyze(ctx context.Context, paragraphs []string, source SuggestionSource) ([]ParagraphReport, AggregateReport, error) {
	reports := make([]ParagraphReport, len(paragraphs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, p := range paragraphs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = e.analyzeParagraph(gctx, i+1, p, source)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, AggregateReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, AggregateReport{}, err
	}
	return reports, Aggregate(reports), nil
}

// AnalyzeParagraph builds the report for one paragraph. number is the
// 1-based paragraph number.
func (e *Engine) AnalyzeParagraph(number int, text string, source SuggestionSource) ParagraphReport {
	return e.analyzeParagraph(context.Background(), number, text, source)
}

func (e *Engine) analyzeParagraph(ctx context.Context, number int, text string, source SuggestionSource) ParagraphReport {
	doc := e.annotator.Annotate(text)

	suggestions := e.suggest(ctx, number, text, doc, source)
	structural := analyzer.Feedback(doc, e.maxTokens)

	feedback := make([]string, 0, len(suggestions)+len(structural))
	feedback = append(feedback, Normalize(suggestions)...)
	feedback = append(feedback, structural...)

	scores := analyzer.Readability(text)
	return ParagraphReport{
		ParagraphNumber:   number,
		Text:              strings.TrimSpace(text),
		Feedback:          feedback,
		ReadabilityScores: scores,
		QualityScore:      Score(scores, feedback),
	}
}

func (e *Engine) suggest(ctx context.Context, number int, text string, doc *annotate.Annotation, source SuggestionSource) (out []string) {
	if source == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("suggestion source failed",
				"paragraph", number,
				"error", fmt.Sprint(r),
			)
			out = nil
		}
	}()
	if cs, ok := source.(ContextSource); ok {
		return cs.SuggestContext(ctx, text, doc)
	}
	return source.Suggest(text, doc)
}
