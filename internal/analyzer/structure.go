// Package analyzer computes structural feedback and readability metrics for
// paragraphs.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/pthm/doclint/internal/annotate"
)

// DefaultMaxSentenceTokens is the long-sentence threshold used when none is
// given.
const DefaultMaxSentenceTokens = 25

// PassiveSentences returns the trimmed text of every sentence containing a
// passive auxiliary.
func PassiveSentences(doc *annotate.Annotation) []string {
	if doc == nil {
		return nil
	}
	var out []string
	for _, s := range doc.Sentences {
		for _, t := range s.Tokens {
			if t.Dep == annotate.DepAuxPass {
				out = append(out, strings.TrimSpace(s.Text(doc.Text)))
				break
			}
		}
	}
	return out
}

// LongSentences returns the trimmed text of every sentence with more than
// maxTokens tokens, punctuation included. A non-positive maxTokens means
// DefaultMaxSentenceTokens.
func LongSentences(doc *annotate.Annotation, maxTokens int) []string {
	if doc == nil {
		return nil
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxSentenceTokens
	}
	var out []string
	for _, s := range doc.Sentences {
		if len(s.Tokens) > maxTokens {
			out = append(out, strings.TrimSpace(s.Text(doc.Text)))
		}
	}
	return out
}

// Feedback formats the structural findings for a paragraph: passive
// sentences first, then long sentences.
func Feedback(doc *annotate.Annotation, maxTokens int) []string {
	var out []string
	for _, s := range PassiveSentences(doc) {
		out = append(out, fmt.Sprintf("Passive sentence: '%s' - consider rewriting.", s))
	}
	for _, s := range LongSentences(doc, maxTokens) {
		out = append(out, fmt.Sprintf("Long/complex sentence: '%s' - consider splitting or simplifying.", s))
	}
	return out
}
