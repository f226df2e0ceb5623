package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/doclint/internal/analyzer"
	"github.com/pthm/doclint/internal/engine"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	Documents []JSONDocument `json:"documents"`
	Summary   Summary        `json:"summary"`
}

// JSONDocument is one analyzed file.
type JSONDocument struct {
	File       string                 `json:"file"`
	Title      string                 `json:"title,omitempty"`
	Format     string                 `json:"format"`
	Paragraphs []JSONParagraph        `json:"paragraphs"`
	Report     engine.AggregateReport `json:"report"`
	Metrics    *analyzer.Metrics      `json:"metrics,omitempty"`
}

// JSONParagraph adds document line numbers to a paragraph report.
type JSONParagraph struct {
	engine.ParagraphReport
	StartLine int `json:"startLine,omitempty"`
	EndLine   int `json:"endLine,omitempty"`
}

// Report outputs results as JSON
func (r *JSONReporter) Report(results []DocumentResult) error {
	output := JSONOutput{
		Documents: make([]JSONDocument, 0, len(results)),
		Summary:   ComputeSummary(results),
	}

	for _, res := range results {
		doc := JSONDocument{
			File:       res.File,
			Title:      res.Title,
			Format:     res.Format,
			Paragraphs: make([]JSONParagraph, 0, len(res.Paragraphs)),
			Report:     res.Report,
			Metrics:    res.Metrics,
		}
		for i, p := range res.Paragraphs {
			start, end := res.Lines(i)
			doc.Paragraphs = append(doc.Paragraphs, JSONParagraph{
				ParagraphReport: p,
				StartLine:       start,
				EndLine:         end,
			})
		}
		output.Documents = append(output.Documents, doc)
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
