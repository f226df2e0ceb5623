package analyzer

import (
	"math"
	"strings"
	"testing"

	"github.com/pthm/doclint/internal/annotate"
)

func TestSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"the", 1},
		{"cat", 1},
		{"file", 1},
		{"saved", 1},
		{"wanted", 2},
		{"user", 2},
		{"please", 1},
		{"table", 2},
		{"little", 2},
		{"people", 2},
		{"while", 1},
		{"rule", 1},
		{"style", 1},
		{"whole", 1},
		{"smile", 1},
		{"profile", 2},
		{"boxes", 2},
		{"makes", 1},
		{"readability", 5},
		{"documentation", 5},
		{"Submit", 2},
		{"rhythm", 1},
		{"10", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Syllables(tt.word); got != tt.want {
				t.Errorf("Syllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestCountText(t *testing.T) {
	st := CountText("The file was saved by the user. Please click Submit.")
	if st.Words != 10 {
		t.Errorf("Words = %d, want 10", st.Words)
	}
	if st.Sentences != 2 {
		t.Errorf("Sentences = %d, want 2", st.Sentences)
	}
	if st.Syllables != 12 {
		t.Errorf("Syllables = %d, want 12", st.Syllables)
	}

	short := CountText("Yes. No. Maybe so.")
	if short.Sentences != 1 {
		t.Errorf("short runs should be ignored with a minimum of one, got %d", short.Sentences)
	}
}

func TestReadability(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ReadabilityScores
	}{
		{
			"simple sentence",
			"The cat sat on the mat.",
			ReadabilityScores{FleschReadingEase: 116.145, GunningFog: 2.4, SMOGIndex: 0, AutomatedReadabilityIndex: -4.3},
		},
		{
			"example paragraph",
			"The file was saved by the user. Please click Submit.",
			ReadabilityScores{FleschReadingEase: 100.24, GunningFog: 2, SMOGIndex: 0, AutomatedReadabilityIndex: 1.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Readability(tt.text)
			assertClose(t, "FleschReadingEase", got.FleschReadingEase, tt.want.FleschReadingEase, 0.011)
			assertClose(t, "GunningFog", got.GunningFog, tt.want.GunningFog, 0.011)
			assertClose(t, "SMOGIndex", got.SMOGIndex, tt.want.SMOGIndex, 0.011)
			assertClose(t, "AutomatedReadabilityIndex", got.AutomatedReadabilityIndex, tt.want.AutomatedReadabilityIndex, 0.011)
		})
	}
}

func TestGunningFogDifficultWords(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		difficult int
		complex   int
		fog       float64
	}{
		{"repeats count once", "Documentation documentation documentation documentation.", 1, 4, 11.6},
		{"familiar words are easy", "Everybody went home yesterday afternoon.", 0, 3, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := CountText(tt.text)
			if st.DifficultWords != tt.difficult {
				t.Errorf("DifficultWords = %d, want %d", st.DifficultWords, tt.difficult)
			}
			if st.ComplexWords != tt.complex {
				t.Errorf("ComplexWords = %d, want %d", st.ComplexWords, tt.complex)
			}
			assertClose(t, "GunningFog", Readability(tt.text).GunningFog, tt.fog, 0.011)
		})
	}
}

func TestReadabilitySMOG(t *testing.T) {
	text := "Readability formulas estimate difficulty. Documentation benefits from simplicity. Everybody appreciates consistency."
	got := Readability(text)
	if got.SMOGIndex <= 0 {
		t.Errorf("SMOGIndex = %v, want positive for three polysyllabic sentences", got.SMOGIndex)
	}
}

func TestReadabilityEmpty(t *testing.T) {
	got := Readability("")
	if got.GunningFog != 0 || got.SMOGIndex != 0 || got.AutomatedReadabilityIndex != 0 {
		t.Errorf("Readability(\"\") = %+v, want zero grade metrics", got)
	}
	if got.FleschReadingEase != 206.84 {
		t.Errorf("FleschReadingEase = %v, want 206.84 for empty text", got.FleschReadingEase)
	}
}

func TestPassiveSentences(t *testing.T) {
	text := "The file was saved by the user. Please click Submit."
	got := PassiveSentences(annotate.Naive{}.Annotate(text))
	if len(got) != 1 || got[0] != "The file was saved by the user." {
		t.Errorf("PassiveSentences() = %q", got)
	}

	if got := PassiveSentences(annotate.Naive{}.Annotate("You save the file.")); len(got) != 0 {
		t.Errorf("active sentence flagged: %q", got)
	}
	if got := PassiveSentences(nil); got != nil {
		t.Errorf("PassiveSentences(nil) = %q", got)
	}
}

func TestLongSentences(t *testing.T) {
	long := "Word " + strings.Repeat("word ", 24) + "end."
	text := "Short one. " + long

	doc := annotate.Naive{}.Annotate(text)
	got := LongSentences(doc, 0)
	if len(got) != 1 || got[0] != long {
		t.Errorf("LongSentences(default) = %q", got)
	}
	if got := LongSentences(doc, 30); len(got) != 0 {
		t.Errorf("LongSentences(30) = %q, want none", got)
	}
	if got := LongSentences(doc, 1); len(got) != 2 {
		t.Errorf("LongSentences(1) = %d sentences, want 2", len(got))
	}
}

func TestFeedback(t *testing.T) {
	text := "The report was written quickly. Many " + strings.Repeat("many ", 25) + "words."
	got := Feedback(annotate.Naive{}.Annotate(text), 25)

	if len(got) != 2 {
		t.Fatalf("Feedback() = %q, want 2 entries", got)
	}
	if got[0] != "Passive sentence: 'The report was written quickly.' - consider rewriting." {
		t.Errorf("first = %q", got[0])
	}
	if !strings.HasPrefix(got[1], "Long/complex sentence: 'Many many") || !strings.HasSuffix(got[1], "words.' - consider splitting or simplifying.") {
		t.Errorf("second = %q", got[1])
	}
}

func TestComputeMetrics(t *testing.T) {
	paragraphs := []string{
		"The file was saved by the user. Please click Submit.",
		"See the catalogue.",
	}
	m := ComputeMetrics(paragraphs, annotate.Naive{}, 25)

	if m.Paragraphs != 2 {
		t.Errorf("Paragraphs = %d, want 2", m.Paragraphs)
	}
	if m.Sentences != 3 {
		t.Errorf("Sentences = %d, want 3", m.Sentences)
	}
	if m.Words != 13 {
		t.Errorf("Words = %d, want 13", m.Words)
	}
	if m.PassiveSentences != 1 {
		t.Errorf("PassiveSentences = %d, want 1", m.PassiveSentences)
	}
	if m.DegradedParagraphs != 2 {
		t.Errorf("DegradedParagraphs = %d, want 2", m.DegradedParagraphs)
	}
}

func assertClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
