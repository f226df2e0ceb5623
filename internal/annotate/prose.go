package annotate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

var errAlignment = errors.New("token alignment failed")

// ProseAnnotator tags text with the prose averaged-perceptron tagger and
// sentence segmenter. Output that cannot be mapped back onto the source text
// is replaced by the Naive annotation.
type ProseAnnotator struct {
	logger *slog.Logger
}

// NewProse creates a ProseAnnotator. A nil logger discards output.
func NewProse(logger *slog.Logger) *ProseAnnotator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ProseAnnotator{logger: logger}
}

// Default returns the annotator used when none is configured.
func Default() Annotator {
	return NewProse(nil)
}

// Annotate implements Annotator.
func (p *ProseAnnotator) Annotate(text string) *Annotation {
	if strings.TrimSpace(text) == "" {
		return newAnnotation(text, nil, false)
	}
	sentences, err := p.tag(text)
	if err != nil {
		p.logger.Debug("annotation degraded", "error", err, "chars", len(text))
		return naiveAnnotation(text, true)
	}
	return newAnnotation(text, sentences, false)
}

func (p *ProseAnnotator) tag(text string) (sentences []Sentence, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("prose panic: %v", r)
		}
	}()

	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}

	toks, err := alignTokens(text, doc.Tokens())
	if err != nil {
		return nil, err
	}
	toks = mergeClitics(text, toks)

	bounds, err := alignSentences(text, doc.Sentences())
	if err != nil {
		return nil, err
	}
	return groupTokens(toks, bounds)
}

// alignTokens locates each tagged token in text, allowing only whitespace
// between consecutive tokens.
func alignTokens(text string, tagged []prose.Token) ([]Token, error) {
	out := make([]Token, 0, len(tagged))
	cursor := 0
	for _, tt := range tagged {
		if tt.Text == "" {
			continue
		}
		i := strings.Index(text[cursor:], tt.Text)
		if i < 0 || strings.TrimSpace(text[cursor:cursor+i]) != "" {
			return nil, fmt.Errorf("%w: %q at byte %d", errAlignment, tt.Text, cursor)
		}
		start := cursor + i
		end := start + len(tt.Text)
		out = append(out, Token{
			Text:  tt.Text,
			Start: start,
			End:   end,
			Tag:   tt.Tag,
			POS:   UniversalPOS(tt.Tag, tt.Text),
		})
		cursor = end
	}
	if strings.TrimSpace(text[cursor:]) != "" {
		return nil, fmt.Errorf("%w: trailing text at byte %d", errAlignment, cursor)
	}
	return out, nil
}

// mergeClitics folds a possessive "'s" into the noun it touches and a
// negation "n't" into its verb so that surface forms match the source text.
func mergeClitics(text string, toks []Token) []Token {
	out := toks[:0]
	for _, t := range toks {
		if n := len(out); n > 0 && out[n-1].End == t.Start {
			prev := &out[n-1]
			lower := strings.ToLower(t.Text)
			possessive := (lower == "'s" || lower == "’s") && strings.HasPrefix(prev.Tag, "NN")
			negation := lower == "n't" || lower == "n’t"
			if possessive || negation {
				prev.End = t.End
				prev.Text = text[prev.Start:prev.End]
				if negation {
					prev.POS = UniversalPOS(prev.Tag, prev.Text)
				}
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

type span struct{ start, end int }

func alignSentences(text string, segs []prose.Sentence) ([]span, error) {
	out := make([]span, 0, len(segs))
	cursor := 0
	for _, s := range segs {
		body := strings.TrimFunc(s.Text, unicode.IsSpace)
		if body == "" {
			continue
		}
		i := strings.Index(text[cursor:], body)
		if i < 0 {
			return nil, fmt.Errorf("%w: sentence at byte %d", errAlignment, cursor)
		}
		start := cursor + i
		out = append(out, span{start: start, end: start + len(body)})
		cursor = start + len(body)
	}
	return out, nil
}

// groupTokens assigns tokens to sentence spans. Tokens falling between spans
// join the preceding sentence; a token crossing a boundary is an error.
func groupTokens(toks []Token, bounds []span) ([]Sentence, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	if len(bounds) == 0 {
		return []Sentence{sentenceOf(toks)}, nil
	}
	var sentences []Sentence
	var current []Token
	b := 0
	for _, t := range toks {
		for b+1 < len(bounds) && t.Start >= bounds[b+1].start {
			if len(current) > 0 {
				sentences = append(sentences, sentenceOf(current))
				current = nil
			}
			b++
		}
		if t.Start < bounds[b].end && t.End > bounds[b].end {
			return nil, fmt.Errorf("%w: token %q crosses sentence end", errAlignment, t.Text)
		}
		current = append(current, t)
	}
	if len(current) > 0 {
		sentences = append(sentences, sentenceOf(current))
	}
	return sentences, nil
}
