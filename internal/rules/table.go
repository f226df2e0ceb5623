package rules

import (
	"regexp"
	"strings"

	"github.com/pthm/doclint/internal/annotate"
)

// Entry is one row of a pattern table.
type Entry struct {
	Pattern *regexp.Regexp
	// Template is expanded against each match with regexp.Expand, so ${0}
	// is the matched text and ${1} the first group.
	Template string
	// Skip lists exact matches that are already correct.
	Skip []string
	// SkipLowercase ignores matches that are entirely lowercase.
	SkipLowercase bool
	// Window and Keywords require Keywords to match within Window bytes on
	// either side of the match.
	Window   int
	Keywords *regexp.Regexp
}

func (e Entry) accepts(content string, start, end int) bool {
	found := content[start:end]
	for _, s := range e.Skip {
		if found == s {
			return false
		}
	}
	if e.SkipLowercase && found == strings.ToLower(found) {
		return false
	}
	if e.Keywords != nil {
		lo := max(0, start-e.Window)
		hi := min(len(content), end+e.Window)
		if !e.Keywords.MatchString(content[lo:hi]) {
			return false
		}
	}
	return true
}

// TableRule flags every match of every entry, one line-tagged suggestion per
// occurrence, entries in declaration order.
type TableRule struct {
	meta
	entries []Entry
}

// NewTableRule creates a TableRule.
func NewTableRule(name, description string, config RuleConfig, entries []Entry) *TableRule {
	return &TableRule{meta: meta{name, description, config}, entries: entries}
}

func (r *TableRule) Check(content string, _ *annotate.Annotation) ([]string, error) {
	var out []string
	for _, e := range r.entries {
		for _, m := range e.Pattern.FindAllStringSubmatchIndex(content, -1) {
			if !e.accepts(content, m[0], m[1]) {
				continue
			}
			msg := string(e.Pattern.ExpandString(nil, e.Template, content, m))
			out = append(out, lineTagged(content, m[0], msg))
		}
	}
	return out, nil
}

// Pair is a spelled-out phrase and its contraction.
type Pair struct {
	Spelled    string
	Contracted string

	spelled    *regexp.Regexp
	contracted *regexp.Regexp
}

// NewPair compiles word-boundary matchers for both forms. Apostrophes match
// either the straight or the typographic form.
func NewPair(spelled, contracted string) Pair {
	return Pair{
		Spelled:    spelled,
		Contracted: contracted,
		spelled:    phrasePattern(spelled),
		contracted: phrasePattern(contracted),
	}
}

func phrasePattern(phrase string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?i)\b`)
	for i, word := range strings.Fields(phrase) {
		if i > 0 {
			b.WriteString(`\s+`)
		}
		for _, r := range word {
			if r == '\'' || r == '’' {
				b.WriteString(`['’]`)
				continue
			}
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`\b`)
	return regexp.MustCompile(b.String())
}

// MixedUsageRule flags a block of text that uses both forms of a pair. Blocks
// are separated by blank lines; each pair is reported at most once per
// block, on the block's first line.
type MixedUsageRule struct {
	meta
	pairs    []Pair
	template string
}

// NewMixedUsageRule creates a MixedUsageRule. The template may reference
// {spelled} and {contracted}.
func NewMixedUsageRule(name, description string, config RuleConfig, template string, pairs []Pair) *MixedUsageRule {
	return &MixedUsageRule{meta: meta{name, description, config}, pairs: pairs, template: template}
}

func (r *MixedUsageRule) Check(content string, _ *annotate.Annotation) ([]string, error) {
	var out []string
	offset := 0
	for _, block := range strings.Split(content, "\n\n") {
		for _, p := range r.pairs {
			if p.spelled.MatchString(block) && p.contracted.MatchString(block) {
				msg := strings.NewReplacer("{spelled}", p.Spelled, "{contracted}", p.Contracted).Replace(r.template)
				out = append(out, lineTagged(content, offset, msg))
			}
		}
		offset += len(block) + 2
	}
	return out, nil
}

// OveruseRule reports once, without a line prefix, when a word appears as a
// token more than Threshold times.
type OveruseRule struct {
	meta
	word      string
	threshold int
	message   string
}

// NewOveruseRule creates an OveruseRule.
func NewOveruseRule(name, description string, config RuleConfig, word string, threshold int, message string) *OveruseRule {
	return &OveruseRule{meta: meta{name, description, config}, word: strings.ToLower(word), threshold: threshold, message: message}
}

func (r *OveruseRule) Check(_ string, doc *annotate.Annotation) ([]string, error) {
	count := 0
	for _, t := range doc.Tokens() {
		if t.Lower() == r.word {
			count++
		}
	}
	if count > r.threshold {
		return []string{r.message}, nil
	}
	return nil, nil
}
