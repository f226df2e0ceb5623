// Package annotate turns paragraph text into sentences and tokens carrying
// part-of-speech tags, dependency labels and byte offsets into the paragraph.
package annotate

import "strings"

// Token is a single word or punctuation mark within a paragraph.
type Token struct {
	// Index is the position of the token within Annotation.Tokens().
	Index int
	Text  string
	// Start and End are byte offsets into Annotation.Text.
	Start int
	End   int
	// Tag is the Penn Treebank tag (NN, VBD, ...).
	Tag string
	// POS is the coarse universal tag (NOUN, VERB, AUX, ...).
	POS string
	// Dep is the dependency label relative to Head (auxpass, dobj, ...).
	Dep string
	// Head is the Index of the governing token; roots point to themselves.
	Head int
}

// Lower returns the lowercased surface text.
func (t Token) Lower() string {
	return strings.ToLower(t.Text)
}

// Sentence is a contiguous run of tokens.
type Sentence struct {
	Start  int
	End    int
	Tokens []Token
}

// Text returns the sentence's surface text from the paragraph it belongs to.
func (s Sentence) Text(paragraph string) string {
	if s.Start < 0 || s.End > len(paragraph) || s.Start > s.End {
		return ""
	}
	return paragraph[s.Start:s.End]
}

// Annotation is the read-only linguistic view of one paragraph.
type Annotation struct {
	Text      string
	Sentences []Sentence
	// Degraded is set when the annotation came from the naive fallback.
	Degraded bool

	tokens []Token
}

// Annotator produces annotations. Implementations never fail: the worst case
// is a naive tokenization with best-effort tags.
type Annotator interface {
	Annotate(text string) *Annotation
}

// newAnnotation assigns token indexes, labels dependencies sentence by
// sentence and builds the flattened token index.
func newAnnotation(text string, sentences []Sentence, degraded bool) *Annotation {
	a := &Annotation{Text: text, Sentences: sentences, Degraded: degraded}
	n := 0
	for si := range a.Sentences {
		toks := a.Sentences[si].Tokens
		for ti := range toks {
			toks[ti].Index = n
			toks[ti].Head = n
			n++
		}
		labelDependencies(toks)
	}
	a.tokens = make([]Token, 0, n)
	for _, s := range a.Sentences {
		a.tokens = append(a.tokens, s.Tokens...)
	}
	return a
}

// Tokens returns every token of the paragraph in order.
func (a *Annotation) Tokens() []Token {
	if a == nil {
		return nil
	}
	return a.tokens
}

// Token returns the token at index i.
func (a *Annotation) Token(i int) (Token, bool) {
	if a == nil || i < 0 || i >= len(a.tokens) {
		return Token{}, false
	}
	return a.tokens[i], true
}

// Children returns the tokens whose head is the token at index i.
func (a *Annotation) Children(i int) []Token {
	var out []Token
	for _, t := range a.Tokens() {
		if t.Head == i && t.Index != i {
			out = append(out, t)
		}
	}
	return out
}

// CharSpan returns the tokens covering text[start:end]. The span must begin
// at a token start and finish at a token end; otherwise ok is false.
func (a *Annotation) CharSpan(start, end int) ([]Token, bool) {
	if a == nil || start >= end {
		return nil, false
	}
	var span []Token
	startOK, endOK := false, false
	for _, t := range a.tokens {
		if t.End <= start {
			continue
		}
		if t.Start >= end {
			break
		}
		if t.Start < start || t.End > end {
			return nil, false
		}
		if t.Start == start {
			startOK = true
		}
		if t.End == end {
			endOK = true
		}
		span = append(span, t)
	}
	if !startOK || !endOK {
		return nil, false
	}
	return span, true
}

// Build assembles an annotation from pre-labeled sentences. Token indexes are
// assigned in order; Tag, POS, Dep and Head are kept as given.
func Build(text string, sentences []Sentence) *Annotation {
	a := &Annotation{Text: text, Sentences: sentences}
	n := 0
	for si := range a.Sentences {
		for ti := range a.Sentences[si].Tokens {
			a.Sentences[si].Tokens[ti].Index = n
			n++
		}
	}
	a.tokens = make([]Token, 0, n)
	for _, s := range a.Sentences {
		a.tokens = append(a.tokens, s.Tokens...)
	}
	return a
}
