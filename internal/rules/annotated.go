package rules

import (
	"regexp"
	"strings"

	"github.com/pthm/doclint/internal/annotate"
)

// VerbSpanRule flags pattern matches only where the annotation confirms a
// verb inside the matched span. Matches that do not line up with token
// boundaries are skipped.
type VerbSpanRule struct {
	meta
	entries []Entry
}

func (r *VerbSpanRule) Check(content string, doc *annotate.Annotation) ([]string, error) {
	var out []string
	for _, e := range r.entries {
		for _, m := range e.Pattern.FindAllStringSubmatchIndex(content, -1) {
			span, ok := doc.CharSpan(m[0], m[1])
			if !ok {
				continue
			}
			if !anyPOS(span, annotate.POSVerb) {
				continue
			}
			msg := string(e.Pattern.ExpandString(nil, e.Template, content, m))
			out = append(out, lineTagged(content, m[0], msg))
		}
	}
	return out, nil
}

// PhrasalContextRule flags a verb whose particle matches Related when the
// text around the verb mentions one of Keywords.
type PhrasalContextRule struct {
	meta
	word     string
	related  *regexp.Regexp
	window   int
	keywords *regexp.Regexp
	message  string
}

func (r *PhrasalContextRule) Check(content string, doc *annotate.Annotation) ([]string, error) {
	var out []string
	for _, t := range doc.Tokens() {
		if t.Lower() != r.word || !r.hasParticle(doc, t) {
			continue
		}
		lo := max(0, t.Start-r.window)
		hi := min(len(content), t.Start+r.window)
		if !r.keywords.MatchString(content[lo:hi]) {
			continue
		}
		out = append(out, lineTagged(content, t.Start, r.message))
	}
	return out, nil
}

func (r *PhrasalContextRule) hasParticle(doc *annotate.Annotation, t annotate.Token) bool {
	if head, ok := doc.Token(t.Head); ok && head.Index != t.Index && r.related.MatchString(head.Text) {
		return true
	}
	for _, c := range doc.Children(t.Index) {
		if c.Dep == annotate.DepParticle && r.related.MatchString(c.Text) {
			return true
		}
	}
	return false
}

// GovernedWordRule flags a word that is governed by, or governs as object or
// compound, a token matching Related.
type GovernedWordRule struct {
	meta
	word    string
	related *regexp.Regexp
	message string
}

func (r *GovernedWordRule) Check(content string, doc *annotate.Annotation) ([]string, error) {
	var out []string
	for _, t := range doc.Tokens() {
		if t.Lower() != r.word || !r.linked(doc, t) {
			continue
		}
		out = append(out, lineTagged(content, t.Start, r.message))
	}
	return out, nil
}

func (r *GovernedWordRule) linked(doc *annotate.Annotation, t annotate.Token) bool {
	if head, ok := doc.Token(t.Head); ok && head.Index != t.Index && r.related.MatchString(head.Text) {
		return true
	}
	for _, c := range doc.Children(t.Index) {
		if (c.Dep == annotate.DepDobj || c.Dep == annotate.DepCompound) && r.related.MatchString(c.Text) {
			return true
		}
	}
	return false
}

// NounVerbContractionRule flags a noun ending in a possessive marker that is
// directly followed by a verb, as in "Microsoft's developing".
type NounVerbContractionRule struct {
	meta
	template string
}

func (r *NounVerbContractionRule) Check(content string, doc *annotate.Annotation) ([]string, error) {
	var out []string
	toks := doc.Tokens()
	for i := 0; i+1 < len(toks); i++ {
		t, next := toks[i], toks[i+1]
		lower := t.Lower()
		if !strings.HasSuffix(lower, "'s") && !strings.HasSuffix(lower, "’s") {
			continue
		}
		if t.POS != annotate.POSNoun && t.POS != annotate.POSPropn {
			continue
		}
		if next.POS != annotate.POSVerb && next.POS != annotate.POSAux {
			continue
		}
		msg := strings.NewReplacer("{token}", t.Text, "{next}", next.Text).Replace(r.template)
		out = append(out, lineTagged(content, t.Start, msg))
	}
	return out, nil
}

func anyPOS(toks []annotate.Token, pos string) bool {
	for _, t := range toks {
		if t.POS == pos {
			return true
		}
	}
	return false
}
