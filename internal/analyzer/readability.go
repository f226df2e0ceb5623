package analyzer

import (
	_ "embed"
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ReadabilityScores holds the standard readability metrics for one text.
type ReadabilityScores struct {
	FleschReadingEase         float64 `json:"flesch_reading_ease"`
	GunningFog                float64 `json:"gunning_fog"`
	SMOGIndex                 float64 `json:"smog_index"`
	AutomatedReadabilityIndex float64 `json:"automated_readability_index"`
}

var (
	punctuation     = regexp.MustCompile(`[^\p{L}\p{N}_\s']`)
	sentencePattern = regexp.MustCompile(`\b[^.!?]+[.!?]*`)
)

//go:embed easy_words.txt
var easyWordList string

// easyWords holds the familiar words of three or more syllables that do not
// count as difficult for the fog index.
var easyWords = func() map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(easyWordList) {
		set[w] = true
	}
	return set
}()

// TextStats are the raw counts behind the readability formulas.
type TextStats struct {
	Words     int
	Sentences int
	Syllables int
	// ComplexWords counts every occurrence of a word of three or more
	// syllables (SMOG polysyllables).
	ComplexWords int
	// DifficultWords counts distinct lowercased words of three or more
	// syllables that are not familiar words (fog index).
	DifficultWords int
	Characters     int
}

// CountText computes the counts used by Readability.
func CountText(text string) TextStats {
	words := Words(text)
	st := TextStats{Words: len(words), Sentences: countSentences(text)}
	difficult := make(map[string]bool)
	for _, w := range words {
		n := Syllables(w)
		st.Syllables += n
		if n < 3 {
			continue
		}
		st.ComplexWords++
		if lw := strings.ToLower(w); !easyWords[lw] {
			difficult[lw] = true
		}
	}
	st.DifficultWords = len(difficult)
	for _, r := range text {
		if !unicode.IsSpace(r) {
			st.Characters++
		}
	}
	return st
}

// Words splits text on whitespace after removing punctuation other than
// apostrophes.
func Words(text string) []string {
	return strings.Fields(punctuation.ReplaceAllString(text, ""))
}

// countSentences counts sentence-like runs, ignoring runs of two words or
// fewer. The result is at least one.
func countSentences(text string) int {
	n := 0
	for _, s := range sentencePattern.FindAllString(text, -1) {
		if len(Words(s)) > 2 {
			n++
		}
	}
	return max(1, n)
}

// Readability computes Flesch reading ease, Gunning fog, SMOG and the
// automated readability index.
func Readability(text string) ReadabilityScores {
	st := CountText(text)
	if st.Words == 0 {
		return ReadabilityScores{FleschReadingEase: round(206.835, 2)}
	}

	asl := round(float64(st.Words)/float64(st.Sentences), 1)
	asw := round(float64(st.Syllables)/float64(st.Words), 1)

	scores := ReadabilityScores{
		FleschReadingEase: round(206.835-1.015*asl-84.6*asw, 2),
		GunningFog:        round(0.4*(asl+100*float64(st.DifficultWords)/float64(st.Words)), 2),
	}
	if st.Sentences >= 3 {
		poly := float64(st.ComplexWords)
		scores.SMOGIndex = round(1.043*math.Sqrt(30*poly/float64(st.Sentences))+3.1291, 1)
	}
	a := round(float64(st.Characters)/float64(st.Words), 2)
	b := round(float64(st.Words)/float64(st.Sentences), 2)
	scores.AutomatedReadabilityIndex = round(4.71*a+0.5*b-21.43, 1)
	return scores
}

// round rounds half up at the given number of decimal places.
func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(x*p+0.5) / p
}

// Syllables approximates the syllable count of an English word from its
// vowel groups, with adjustments for silent endings.
func Syllables(word string) int {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	w := b.String()
	if len(w) <= 3 {
		return 1
	}

	count := 0
	prevVowel := false
	for i := 0; i < len(w); i++ {
		v := isVowel(w[i])
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	n := len(w)
	switch {
	case strings.HasSuffix(w, "le") && !isVowel(w[n-3]):
		// consonant + "le" is its own syllable: table, little
	case strings.HasSuffix(w, "e"):
		if count > 1 {
			count--
		}
	case strings.HasSuffix(w, "ed"):
		if c := w[n-3]; count > 1 && c != 't' && c != 'd' {
			count--
		}
	case strings.HasSuffix(w, "es"):
		c := w[n-3]
		sibilant := strings.ContainsRune("tdsxz", rune(c)) || strings.HasSuffix(w, "ches") || strings.HasSuffix(w, "shes")
		if count > 1 && !sibilant {
			count--
		}
	}
	return max(1, count)
}

func isVowel(c byte) bool {
	return strings.IndexByte("aeiouy", c) >= 0
}
