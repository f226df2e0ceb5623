package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pthm/doclint/internal/analyzer"
	"github.com/pthm/doclint/internal/annotate"
	"github.com/pthm/doclint/internal/config"
	"github.com/pthm/doclint/internal/engine"
	"github.com/pthm/doclint/internal/parser"
	"github.com/pthm/doclint/internal/reporter"
	"github.com/pthm/doclint/internal/ui"
)

var (
	deep      bool
	rulesFile string
	maxTokens int
	workers   int
	minScore  float64
	stats     bool
	quiet     bool
)

var lintCmd = &cobra.Command{
	Use:   "lint <file>...",
	Short: "Lint documents",
	Long: `Analyze documents paragraph by paragraph and report style suggestions
together with readability and quality scores.

Examples:
  doclint lint README.md
  doclint lint --stats docs/*.md
  doclint lint --deep --min-score 50 guide.docx
  doclint lint --format json report.pdf > report.json`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runLint,
	SilenceUsage: true,
}

func init() {
	lintCmd.Flags().BoolVar(&deep, "deep", false, "Also request an LLM review (needs ANTHROPIC_API_KEY)")
	lintCmd.Flags().StringVar(&rulesFile, "rules", "", "Rule catalog file replacing the builtin rules")
	lintCmd.Flags().IntVar(&maxTokens, "max-sentence-tokens", 0, "Token count above which a sentence is long (default 25)")
	lintCmd.Flags().IntVar(&workers, "workers", 0, "Paragraphs analyzed in parallel (default: number of CPUs)")
	lintCmd.Flags().Float64Var(&minScore, "min-score", 0, "Fail when a document's average quality score is below this")
	lintCmd.Flags().BoolVar(&stats, "stats", false, "Include document metrics")
	lintCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide paragraphs without suggestions")
	RootCmd.AddCommand(lintCmd)
}

// lintConfig applies command-line overrides on top of the environment.
func lintConfig() (config.Config, error) {
	cfg := config.Load()
	if rulesFile != "" {
		cfg.RulesFile = rulesFile
	}
	if maxTokens > 0 {
		cfg.MaxSentenceTokens = maxTokens
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg, cfg.Validate()
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := lintConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	u := GetUI()
	logger := newLogger(u.ErrWriter)

	progress := u.StartProgress()
	defer func() {
		progress.Done(nil)
	}()

	// Stage 1: Load rules
	progress.SetStage(ui.StageLoadRules)

	registry, reviewing, err := buildRegistry(cfg, deep, logger)
	if err != nil {
		return err
	}
	if deep && !reviewing {
		u.Warn("--deep needs ANTHROPIC_API_KEY; skipping LLM review")
	}
	logger.Debug("rules loaded", "count", len(registry.Names()), "review", reviewing)

	annotator := annotate.NewProse(logger)
	eng := engine.New(
		engine.WithAnnotator(annotator),
		engine.WithLogger(logger),
		engine.WithMaxSentenceTokens(cfg.MaxSentenceTokens),
		engine.WithWorkers(cfg.Workers),
	)

	// Stage 2: Analyze documents
	progress.SetStage(ui.StageAnalyze)
	progress.SetFileCount(len(args))

	results := make([]reporter.DocumentResult, 0, len(args))
	for _, path := range args {
		progress.FileStart(path)

		doc, err := parser.ParseFile(path)
		if err != nil {
			return err
		}
		texts := doc.Texts()
		logger.Debug("parsed document", "file", path, "format", doc.Format.String(), "paragraphs", len(texts))

		reports, agg, err := eng.Analyze(ctx, texts, registry)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", path, err)
		}

		res := reporter.DocumentResult{
			File:       path,
			Title:      doc.Title,
			Format:     doc.Format.String(),
			Paragraphs: reports,
			StartLines: make([]int, len(doc.Paragraphs)),
			Report:     agg,
		}
		for i, p := range doc.Paragraphs {
			res.StartLines[i] = p.StartLine
		}
		if stats {
			res.Metrics = analyzer.ComputeMetrics(texts, annotator, cfg.MaxSentenceTokens)
		}
		results = append(results, res)

		progress.FileDone()
	}

	// Stop progress before reporting
	progress.Done(nil)
	progress = nil

	// Stage 3: Report results
	var rep reporter.Reporter
	if u.IsJSON() {
		rep = reporter.NewJSONReporter(u.Writer)
	} else {
		tr := reporter.NewTerminalReporter(u.Writer, u.Styles)
		tr.Quiet = quiet
		rep = tr
	}
	if err := rep.Report(results); err != nil {
		return err
	}

	return checkMinScore(results, minScore)
}

// checkMinScore fails when any document with paragraphs averages below min.
func checkMinScore(results []reporter.DocumentResult, min float64) error {
	if min <= 0 {
		return nil
	}
	failed := 0
	for _, res := range results {
		if res.Report.ParagraphCount > 0 && res.Report.AvgQualityScore < min {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents scored below %.1f", failed, len(results), min)
	}
	return nil
}
