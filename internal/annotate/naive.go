package annotate

import (
	"regexp"
	"strings"
	"unicode"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’.\-][\p{L}\p{N}]+)*|\S`)

// abbreviations never end a sentence when followed by a period.
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "st": true, "vs": true,
	"etc": true, "inc": true, "e.g": true, "i.e": true, "fig": true, "no": true,
}

// Naive tokenizes with a regular expression, splits sentences on terminal
// punctuation and tags words from a small lexicon plus suffix heuristics.
type Naive struct{}

// Annotate implements Annotator.
func (Naive) Annotate(text string) *Annotation {
	return naiveAnnotation(text, true)
}

func naiveAnnotation(text string, degraded bool) *Annotation {
	spans := tokenPattern.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return newAnnotation(text, nil, degraded)
	}

	var sentences []Sentence
	var current []Token
	first := true
	for i, sp := range spans {
		word := text[sp[0]:sp[1]]
		tag := tagWord(word, current, first)
		current = append(current, Token{
			Text:  word,
			Start: sp[0],
			End:   sp[1],
			Tag:   tag,
			POS:   UniversalPOS(tag, word),
		})
		if !isPunctTag(tag) {
			first = false
		}
		if endsSentence(text, spans, i, current) {
			sentences = append(sentences, sentenceOf(current))
			current = nil
			first = true
		}
	}
	if len(current) > 0 {
		sentences = append(sentences, sentenceOf(current))
	}
	return newAnnotation(text, sentences, degraded)
}

func sentenceOf(toks []Token) Sentence {
	return Sentence{Start: toks[0].Start, End: toks[len(toks)-1].End, Tokens: toks}
}

// endsSentence reports whether a sentence boundary follows token i.
func endsSentence(text string, spans [][]int, i int, current []Token) bool {
	word := text[spans[i][0]:spans[i][1]]
	if i+1 >= len(spans) {
		return false
	}
	next := text[spans[i+1][0]:spans[i+1][1]]
	if isClosingMark(next) {
		return false
	}
	if !isTerminal(word) && !(isClosingMark(word) && len(current) > 1 && isTerminal(current[len(current)-2].Text)) {
		return false
	}
	if word == "." && len(current) > 1 {
		prev := strings.ToLower(current[len(current)-2].Text)
		if abbreviations[prev] || len([]rune(prev)) == 1 {
			return false
		}
	}
	r := []rune(next)[0]
	return !unicode.IsLower(r)
}

func isTerminal(s string) bool {
	return s == "." || s == "!" || s == "?"
}

func isClosingMark(s string) bool {
	switch s {
	case `"`, "'", "”", "’", ")", "]", "}":
		return true
	}
	return false
}

var closedClass = map[string]string{
	"the": "DT", "a": "DT", "an": "DT", "this": "DT", "these": "DT", "those": "DT",
	"each": "DT", "every": "DT", "some": "DT", "any": "DT", "all": "DT",
	"another": "DT", "both": "DT", "either": "DT", "neither": "DT", "that": "DT",

	"of": "IN", "in": "IN", "on": "IN", "at": "IN", "by": "IN", "for": "IN",
	"with": "IN", "from": "IN", "into": "IN", "onto": "IN", "about": "IN",
	"over": "IN", "under": "IN", "after": "IN", "before": "IN", "between": "IN",
	"through": "IN", "during": "IN", "without": "IN", "within": "IN",
	"against": "IN", "among": "IN", "across": "IN", "behind": "IN", "near": "IN",
	"since": "IN", "until": "IN", "upon": "IN", "via": "IN", "per": "IN",
	"like": "IN", "as": "IN", "than": "IN", "if": "IN", "because": "IN",
	"while": "IN", "although": "IN", "though": "IN", "whether": "IN", "unless": "IN",
	"to": "TO",

	"i": "PRP", "you": "PRP", "he": "PRP", "she": "PRP", "it": "PRP", "we": "PRP",
	"they": "PRP", "me": "PRP", "him": "PRP", "us": "PRP", "them": "PRP",
	"itself": "PRP", "yourself": "PRP", "themselves": "PRP",
	"my": "PRP$", "your": "PRP$", "his": "PRP$", "her": "PRP$", "its": "PRP$",
	"our": "PRP$", "their": "PRP$",
	"who": "WP", "whom": "WP", "what": "WP", "which": "WDT",
	"when": "WRB", "where": "WRB", "why": "WRB", "how": "WRB",
	"there": "EX",

	"and": "CC", "or": "CC", "but": "CC", "nor": "CC", "yet": "CC",

	"can": "MD", "could": "MD", "will": "MD", "would": "MD", "shall": "MD",
	"should": "MD", "may": "MD", "might": "MD", "must": "MD", "cannot": "MD",
	"can't": "MD", "won't": "MD", "wouldn't": "MD", "shouldn't": "MD",
	"couldn't": "MD", "mustn't": "MD",

	"be": "VB", "is": "VBZ", "are": "VBP", "am": "VBP", "was": "VBD", "were": "VBD",
	"been": "VBN", "being": "VBG", "isn't": "VBZ", "aren't": "VBP",
	"wasn't": "VBD", "weren't": "VBD",
	"have": "VBP", "has": "VBZ", "had": "VBD", "having": "VBG",
	"hasn't": "VBZ", "haven't": "VBP", "hadn't": "VBD",
	"do": "VBP", "does": "VBZ", "did": "VBD", "don't": "VBP", "doesn't": "VBZ",
	"didn't": "VBD",

	"not": "RB", "very": "RB", "quite": "RB", "also": "RB", "just": "RB",
	"only": "RB", "often": "RB", "never": "RB", "always": "RB", "too": "RB",
	"again": "RB", "already": "RB", "still": "RB", "even": "RB", "here": "RB",
	"now": "RB", "then": "RB", "therefore": "RB", "furthermore": "RB",
	"however": "RB", "soon": "RB",

	"please": "UH", "yes": "UH", "hello": "UH",

	"new": "JJ", "old": "JJ", "good": "JJ", "bad": "JJ", "important": "JJ",
	"simple": "JJ", "available": "JJ", "ready": "JJ", "other": "JJ", "same": "JJ",
	"different": "JJ", "able": "JJ", "possible": "JJ", "specific": "JJ",
}

var baseVerbs = map[string]bool{
	"click": true, "select": true, "open": true, "save": true, "run": true,
	"use": true, "make": true, "see": true, "carry": true, "execute": true,
	"request": true, "ensure": true, "assure": true, "insure": true,
	"check": true, "enter": true, "choose": true, "type": true, "press": true,
	"add": true, "remove": true, "delete": true, "create": true, "install": true,
	"configure": true, "set": true, "get": true, "go": true, "find": true,
	"give": true, "take": true, "let": true, "tell": true, "know": true,
	"inform": true, "utilize": true, "eliminate": true, "extract": true,
	"establish": true, "need": true, "want": true, "start": true, "stop": true,
	"close": true, "update": true, "submit": true, "ask": true, "write": true,
	"read": true, "follow": true, "contact": true, "restart": true,
}

var irregularParticiples = map[string]bool{
	"made": true, "done": true, "given": true, "taken": true, "seen": true,
	"written": true, "known": true, "shown": true, "sent": true, "built": true,
	"found": true, "kept": true, "held": true, "set": true, "put": true,
	"read": true, "run": true, "told": true, "left": true, "lost": true,
	"paid": true, "brought": true, "bought": true, "chosen": true,
}

// tagWord assigns a Penn tag to word given the tokens already seen in the
// current sentence.
func tagWord(word string, prev []Token, first bool) string {
	if tag, ok := punctTag(word); ok {
		return tag
	}
	if isNumeric(word) {
		return "CD"
	}
	lower := strings.ToLower(word)
	if tag, ok := closedClass[lower]; ok {
		return tag
	}
	if base, suffix, ok := splitClitic(lower); ok {
		if tag, ok := closedClass[base]; ok {
			return tag
		}
		if suffix == "s" {
			if isCapitalized(word) {
				return "NNP"
			}
			return "NN"
		}
	}
	if !first && isCapitalized(word) {
		return "NNP"
	}

	prevTag := ""
	if len(prev) > 0 {
		prevTag = prev[len(prev)-1].Tag
	}
	if baseVerbs[lower] {
		switch prevTag {
		case "DT", "PRP$", "JJ", "IN", "POS", "NN", "NNP":
			return "NN"
		}
		if afterAuxiliary(prev) && irregularParticiples[lower] {
			return "VBN"
		}
		return "VB"
	}
	if irregularParticiples[lower] {
		if afterAuxiliary(prev) {
			return "VBN"
		}
		return "VBD"
	}

	switch {
	case len(lower) > 4 && strings.HasSuffix(lower, "ing"):
		return "VBG"
	case len(lower) > 3 && strings.HasSuffix(lower, "ed"):
		if afterAuxiliary(prev) {
			return "VBN"
		}
		return "VBD"
	case len(lower) > 3 && strings.HasSuffix(lower, "ly"):
		return "RB"
	case hasAnySuffix(lower, "ous", "ful", "ive", "able", "ible", "less"):
		return "JJ"
	case len(lower) > 3 && strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
		return "NNS"
	}
	return "NN"
}

// afterAuxiliary reports whether the nearest preceding non-adverb token is a
// form of "be" or "have".
func afterAuxiliary(prev []Token) bool {
	for i := len(prev) - 1; i >= 0; i-- {
		if strings.HasPrefix(prev[i].Tag, "RB") {
			continue
		}
		lower := prev[i].Lower()
		return beForms[lower] || haveForms[lower]
	}
	return false
}

func punctTag(word string) (string, bool) {
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return "", false
		}
	}
	switch word {
	case ".", "!", "?":
		return ".", true
	case ",":
		return ",", true
	case ":", ";":
		return ":", true
	case `"`, "'", "“", "”", "‘", "’", "`":
		return "''", true
	case "(", "[", "{":
		return "-LRB-", true
	case ")", "]", "}":
		return "-RRB-", true
	case "-", "–", "—":
		return "HYPH", true
	case "$":
		return "$", true
	case "#":
		return "#", true
	}
	return "SYM", true
}

func splitClitic(lower string) (base, suffix string, ok bool) {
	i := strings.IndexAny(lower, "'’")
	if i <= 0 {
		return "", "", false
	}
	_, size := firstRune(lower[i:])
	return lower[:i], lower[i+size:], true
}

func firstRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}

func isNumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return false
		}
	}
	return true
}

func isCapitalized(word string) bool {
	r, _ := firstRune(word)
	return unicode.IsUpper(r)
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if len(s) > len(suf)+2 && strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
