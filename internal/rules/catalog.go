package rules

import (
	"embed"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var catalogFS embed.FS

// Rule kinds understood by the catalog loader.
const (
	KindPattern     = "pattern"
	KindReplacement = "replacement"
	KindMixed       = "mixed"
	KindOveruse     = "overuse"
	KindBuiltin     = "builtin"
)

// Catalog is a YAML rule table document.
type Catalog struct {
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec declares one rule of a catalog.
type RuleSpec struct {
	// Name is the rule identifier (e.g., "catalog-terms")
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`

	// Kind selects the checker: pattern, replacement, mixed, overuse or
	// builtin. Builtin rules are looked up by Name.
	Kind string `yaml:"kind"`

	Entries []EntrySpec `yaml:"entries"`
	Pairs   []PairSpec  `yaml:"pairs"`

	// Word, Related, Window, Keywords, Threshold and Message parameterize
	// overuse and builtin rules.
	Word      string `yaml:"word"`
	Related   string `yaml:"related"`
	Window    int    `yaml:"window"`
	Keywords  string `yaml:"keywords"`
	Threshold int    `yaml:"threshold"`
	Message   string `yaml:"message"`
}

// EntrySpec is one row of a pattern or replacement table.
type EntrySpec struct {
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`

	// Replacement is the preferred wording; empty suggests removal.
	Replacement string `yaml:"replacement"`

	Skip          []string `yaml:"skip"`
	SkipLowercase bool     `yaml:"skip_lowercase"`
	Window        int      `yaml:"window"`
	Keywords      string   `yaml:"keywords"`
}

// PairSpec is a spelled-out phrase and its contraction.
type PairSpec struct {
	Spelled    string `yaml:"spelled"`
	Contracted string `yaml:"contracted"`
}

type builder func(RuleSpec, meta) (Rule, error)

// builtins are rules whose logic needs the annotation beyond a table lookup.
var builtins = map[string]builder{
	"request-verb": func(s RuleSpec, m meta) (Rule, error) {
		entries, err := compileEntries(s.Entries)
		if err != nil {
			return nil, err
		}
		return &VerbSpanRule{meta: m, entries: entries}, nil
	},
	"carry-out-context": func(s RuleSpec, m meta) (Rule, error) {
		related, err := regexp.Compile(s.Related)
		if err != nil {
			return nil, fmt.Errorf("related: %w", err)
		}
		keywords, err := regexp.Compile(s.Keywords)
		if err != nil {
			return nil, fmt.Errorf("keywords: %w", err)
		}
		return &PhrasalContextRule{
			meta:     m,
			word:     strings.ToLower(s.Word),
			related:  related,
			window:   s.Window,
			keywords: keywords,
			message:  s.Message,
		}, nil
	},
	"execute-command": func(s RuleSpec, m meta) (Rule, error) {
		related, err := regexp.Compile(s.Related)
		if err != nil {
			return nil, fmt.Errorf("related: %w", err)
		}
		return &GovernedWordRule{meta: m, word: strings.ToLower(s.Word), related: related, message: s.Message}, nil
	},
	"noun-verb-contraction": func(s RuleSpec, m meta) (Rule, error) {
		return &NounVerbContractionRule{meta: m, template: s.Message}, nil
	},
}

// ParseCatalog decodes a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &c, nil
}

// Build compiles every RuleSpec into a Rule, keeping catalog order.
func (c *Catalog) Build() ([]Rule, error) {
	rules := make([]Rule, 0, len(c.Rules))
	seen := make(map[string]bool)
	for _, spec := range c.Rules {
		if spec.Name == "" {
			return nil, fmt.Errorf("catalog rule without a name")
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate rule %q", spec.Name)
		}
		seen[spec.Name] = true

		rule, err := buildRule(spec)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", spec.Name, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func buildRule(s RuleSpec) (Rule, error) {
	m := meta{name: s.Name, description: s.Description, config: RuleConfig{Category: s.Category}}
	switch s.Kind {
	case KindPattern, "":
		entries, err := compileEntries(s.Entries)
		if err != nil {
			return nil, err
		}
		return &TableRule{meta: m, entries: entries}, nil
	case KindReplacement:
		specs := make([]EntrySpec, len(s.Entries))
		for i, e := range s.Entries {
			e.Message = replacementMessage(e.Replacement)
			specs[i] = e
		}
		entries, err := compileEntries(specs)
		if err != nil {
			return nil, err
		}
		return &TableRule{meta: m, entries: entries}, nil
	case KindMixed:
		pairs := make([]Pair, 0, len(s.Pairs))
		for _, p := range s.Pairs {
			if p.Spelled == "" || p.Contracted == "" {
				return nil, fmt.Errorf("pair needs both spelled and contracted forms")
			}
			pairs = append(pairs, NewPair(p.Spelled, p.Contracted))
		}
		return &MixedUsageRule{meta: m, pairs: pairs, template: s.Message}, nil
	case KindOveruse:
		if s.Word == "" {
			return nil, fmt.Errorf("overuse rule needs a word")
		}
		return &OveruseRule{meta: m, word: strings.ToLower(s.Word), threshold: s.Threshold, message: s.Message}, nil
	case KindBuiltin:
		build, ok := builtins[s.Name]
		if !ok {
			return nil, fmt.Errorf("%w: no builtin named %s", ErrUnknownRule, s.Name)
		}
		return build(s, m)
	default:
		return nil, fmt.Errorf("unknown kind %q", s.Kind)
	}
}

// replacementMessage builds the expansion template for a replacement entry.
func replacementMessage(replacement string) string {
	if replacement == "" {
		return "Consider removing '${0}' as it may not add value."
	}
	return "Replace '${0}' with '" + strings.ReplaceAll(replacement, "$", "$$") + "' for simplicity."
}

func compileEntries(specs []EntrySpec) ([]Entry, error) {
	entries := make([]Entry, 0, len(specs))
	for _, s := range specs {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", s.Pattern, err)
		}
		e := Entry{
			Pattern:       re,
			Template:      s.Message,
			Skip:          s.Skip,
			SkipLowercase: s.SkipLowercase,
			Window:        s.Window,
		}
		if s.Keywords != "" {
			if e.Keywords, err = regexp.Compile(s.Keywords); err != nil {
				return nil, fmt.Errorf("keywords %q: %w", s.Keywords, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// BuiltinCatalog returns the embedded catalog. Files are read in name order
// and their rules concatenated.
func BuiltinCatalog() (*Catalog, error) {
	entries, err := catalogFS.ReadDir("catalog")
	if err != nil {
		return nil, fmt.Errorf("reading embedded catalog: %w", err)
	}

	all := &Catalog{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := catalogFS.ReadFile(path.Join("catalog", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		c, err := ParseCatalog(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		all.Rules = append(all.Rules, c.Rules...)
	}
	return all, nil
}

// DefaultRegistry returns a registry with the builtin catalog.
func DefaultRegistry(opts ...Option) *Registry {
	c, err := BuiltinCatalog()
	if err != nil {
		panic(err)
	}
	r, err := newCatalogRegistry(c, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// RegistryFromFile builds a registry from a catalog file on disk. It uses the
// same schema as the builtin catalog and replaces it entirely.
func RegistryFromFile(file string, opts ...Option) (*Registry, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	return newCatalogRegistry(c, opts...)
}

func newCatalogRegistry(c *Catalog, opts ...Option) (*Registry, error) {
	rules, err := c.Build()
	if err != nil {
		return nil, err
	}
	r := NewRegistry(opts...)
	for _, rule := range rules {
		r.Register(rule)
	}
	return r, nil
}
