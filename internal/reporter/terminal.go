package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pthm/doclint/internal/engine"
	"github.com/pthm/doclint/internal/ui"
)

// TerminalReporter outputs results to the terminal with colors
type TerminalReporter struct {
	w      io.Writer
	styles *ui.Styles
	// Quiet hides paragraphs that have no feedback.
	Quiet bool
}

// NewTerminalReporter creates a new terminal reporter. A nil styles value
// prints plain text.
func NewTerminalReporter(w io.Writer, styles *ui.Styles) *TerminalReporter {
	if styles == nil {
		styles = ui.NewStyles(false)
	}
	return &TerminalReporter{w: w, styles: styles}
}

// Report outputs results to the terminal
func (r *TerminalReporter) Report(results []DocumentResult) error {
	for _, res := range results {
		r.printDocument(res)
	}
	r.printSummary(results)
	return nil
}

func (r *TerminalReporter) printDocument(res DocumentResult) {
	s := r.styles
	base := filepath.Base(res.File)

	fmt.Fprintln(r.w)
	header := base
	if res.Title != "" && res.Title != strings.TrimSuffix(base, filepath.Ext(base)) {
		header = fmt.Sprintf("%s (%s)", base, res.Title)
	}
	fmt.Fprintln(r.w, s.Header.Render(header))
	fmt.Fprintf(r.w, "  %s\n", s.Path.Render(res.File))

	if len(res.Paragraphs) == 0 {
		fmt.Fprintf(r.w, "  %s\n", s.Muted.Render("no paragraphs"))
		return
	}

	for i, p := range res.Paragraphs {
		if r.Quiet && len(p.Feedback) == 0 {
			continue
		}
		style, icon := s.Band(string(engine.ColorFor(p.QualityScore)))

		loc := base
		if start, end := res.Lines(i); start > 0 {
			loc = fmt.Sprintf("%s:%d", base, start)
			if end > start {
				loc = fmt.Sprintf("%s:%d-%d", base, start, end)
			}
		}
		fmt.Fprintf(r.w, "  %s %s %s\n",
			style.Render(icon),
			loc,
			s.Muted.Render(fmt.Sprintf("[¶%d score %.1f, FRE %.1f]",
				p.ParagraphNumber, p.QualityScore, p.ReadabilityScores.FleschReadingEase)))
		for _, msg := range p.Feedback {
			fmt.Fprintf(r.w, "    %s %s\n", s.Hint.Render(s.IconHint), msg)
		}
	}

	style, _ := s.Band(string(res.Report.Color))
	fmt.Fprintf(r.w, "  %s\n", style.Render(fmt.Sprintf("%.1f average: %s", res.Report.AvgQualityScore, res.Report.Message)))

	if m := res.Metrics; m != nil {
		fmt.Fprintf(r.w, "  %s\n", s.Muted.Render(fmt.Sprintf(
			"%d sentences, %d words, %.1f words/sentence, %.2f syllables/word, %d complex words, %d passive, %d long",
			m.Sentences, m.Words, m.WordsPerSentence, m.SyllablesPerWord, m.ComplexWords, m.PassiveSentences, m.LongSentences)))
		if m.DegradedParagraphs > 0 {
			fmt.Fprintf(r.w, "  %s %s\n", s.Warning.Render(s.IconWarning),
				fmt.Sprintf("%d paragraphs used the fallback tagger", m.DegradedParagraphs))
		}
	}
}

func (r *TerminalReporter) printSummary(results []DocumentResult) {
	summary := ComputeSummary(results)
	s := r.styles

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Separator.Render("─────────────────────────────────────"))

	if summary.Paragraphs == 0 {
		fmt.Fprintf(r.w, "No paragraphs found in %d files\n", summary.Files)
		return
	}

	fmt.Fprintf(r.w, "Found %d suggestions in %d paragraphs across %d files: ",
		summary.Suggestions, summary.Paragraphs, summary.Files)
	var parts []string
	if summary.Red > 0 {
		parts = append(parts, s.Poor.Render(fmt.Sprintf("%d poor", summary.Red)))
	}
	if summary.Orange > 0 {
		parts = append(parts, s.Fair.Render(fmt.Sprintf("%d fair", summary.Orange)))
	}
	if summary.Green > 0 {
		parts = append(parts, s.Good.Render(fmt.Sprintf("%d good", summary.Green)))
	}
	fmt.Fprintln(r.w, strings.Join(parts, ", "))

	style, _ := s.Band(string(summary.Color))
	fmt.Fprintf(r.w, "Average quality score: %s\n", style.Render(fmt.Sprintf("%.1f", summary.AvgQualityScore)))
}
