package engine

import (
	"math"
	"strings"

	"github.com/pthm/doclint/internal/analyzer"
)

// Color is the band a quality score falls in.
type Color string

const (
	Red    Color = "red"
	Orange Color = "orange"
	Green  Color = "green"
)

// Band thresholds shared by ColorFor and MessageFor.
const (
	OrangeThreshold = 30
	GreenThreshold  = 70
)

// PenaltyPerSuggestion is subtracted from the score for each feedback entry.
const PenaltyPerSuggestion = 5

// Score clamps Flesch reading ease to [0, 100] and subtracts a fixed penalty
// per feedback entry, never going below zero.
func Score(r analyzer.ReadabilityScores, feedback []string) float64 {
	flesch := math.Min(math.Max(r.FleschReadingEase, 0), 100)
	return math.Max(flesch-float64(PenaltyPerSuggestion*len(feedback)), 0)
}

// ColorFor returns the band for a score.
func ColorFor(score float64) Color {
	switch {
	case score < OrangeThreshold:
		return Red
	case score < GreenThreshold:
		return Orange
	default:
		return Green
	}
}

// MessageFor returns the summary message for an average score.
func MessageFor(avg float64) string {
	switch {
	case avg >= GreenThreshold:
		return "Great job! Your content is fairly strong."
	case avg >= OrangeThreshold:
		return "Your content is okay, but could use improvements."
	default:
		return "Your content needs significant revision."
	}
}

// Aggregate folds paragraph reports into a document report. The band and
// message use the exact mean; the reported average is rounded to one
// decimal place.
func Aggregate(reports []ParagraphReport) AggregateReport {
	var total float64
	words := 0
	for _, r := range reports {
		total += r.QualityScore
		words += len(strings.Fields(r.Text))
	}

	avg := 0.0
	if len(reports) > 0 {
		avg = total / float64(len(reports))
	}
	return AggregateReport{
		AvgQualityScore: math.Round(avg*10) / 10,
		Color:           ColorFor(avg),
		ParagraphCount:  len(reports),
		TotalWords:      words,
		Message:         MessageFor(avg),
	}
}
