package analyzer

import (
	"github.com/pthm/doclint/internal/annotate"
)

// Metrics contains computed metrics about a set of paragraphs
type Metrics struct {
	Paragraphs       int
	Sentences        int
	Words            int
	Syllables        int
	ComplexWords     int
	PassiveSentences int
	LongSentences    int
	// DegradedParagraphs counts paragraphs tagged by the naive fallback.
	DegradedParagraphs int
	WordsPerSentence   float64
	SyllablesPerWord   float64
}

// ComputeMetrics annotates each paragraph and accumulates document-level
// counts. Sentence counts come from the annotation; word and syllable counts
// use the readability conventions.
func ComputeMetrics(paragraphs []string, a annotate.Annotator, maxTokens int) *Metrics {
	m := &Metrics{}

	for _, p := range paragraphs {
		doc := a.Annotate(p)
		st := CountText(p)

		m.Paragraphs++
		m.Sentences += len(doc.Sentences)
		m.Words += st.Words
		m.Syllables += st.Syllables
		m.ComplexWords += st.ComplexWords
		m.PassiveSentences += len(PassiveSentences(doc))
		m.LongSentences += len(LongSentences(doc, maxTokens))
		if doc.Degraded {
			m.DegradedParagraphs++
		}
	}

	if m.Sentences > 0 {
		m.WordsPerSentence = round(float64(m.Words)/float64(m.Sentences), 1)
	}
	if m.Words > 0 {
		m.SyllablesPerWord = round(float64(m.Syllables)/float64(m.Words), 2)
	}
	return m
}
