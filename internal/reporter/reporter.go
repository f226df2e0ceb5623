// Package reporter renders analysis results for the CLI.
package reporter

import (
	"github.com/pthm/doclint/internal/analyzer"
	"github.com/pthm/doclint/internal/engine"
	"github.com/pthm/doclint/internal/position"
)

// DocumentResult is the analysis of one input file.
type DocumentResult struct {
	File       string
	Title      string
	Format     string
	Paragraphs []engine.ParagraphReport
	// StartLines holds the document line of each paragraph, parallel to
	// Paragraphs. Zero means the format carries no line information.
	StartLines []int
	Report     engine.AggregateReport
	Metrics    *analyzer.Metrics
}

// Lines returns the first and last document line of paragraph i, or zeros
// when unknown.
func (d DocumentResult) Lines(i int) (start, end int) {
	if i >= len(d.StartLines) || d.StartLines[i] == 0 || i >= len(d.Paragraphs) {
		return 0, 0
	}
	loc := position.Locator{Text: d.Paragraphs[i].Text, BaseLine: d.StartLines[i]}
	return loc.Rebase(1), loc.Line(len(loc.Text))
}

// Reporter defines the interface for outputting analysis results
type Reporter interface {
	Report(results []DocumentResult) error
}

// Summary holds summary statistics for a lint run
type Summary struct {
	Files           int          `json:"files"`
	Paragraphs      int          `json:"paragraphs"`
	Suggestions     int          `json:"suggestions"`
	Words           int          `json:"words"`
	AvgQualityScore float64      `json:"avgQualityScore"`
	Color           engine.Color `json:"color"`
	Red             int          `json:"red"`
	Orange          int          `json:"orange"`
	Green           int          `json:"green"`
}

// ComputeSummary folds every paragraph of every document into one summary.
// The average is taken over paragraphs, not documents.
func ComputeSummary(results []DocumentResult) Summary {
	s := Summary{Files: len(results)}

	var all []engine.ParagraphReport
	for _, res := range results {
		for _, p := range res.Paragraphs {
			s.Suggestions += len(p.Feedback)
			switch engine.ColorFor(p.QualityScore) {
			case engine.Red:
				s.Red++
			case engine.Orange:
				s.Orange++
			default:
				s.Green++
			}
		}
		all = append(all, res.Paragraphs...)
	}

	agg := engine.Aggregate(all)
	s.Paragraphs = agg.ParagraphCount
	s.Words = agg.TotalWords
	s.AvgQualityScore = agg.AvgQualityScore
	s.Color = agg.Color
	return s
}
