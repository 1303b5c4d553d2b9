// Package rules holds the correction rule table and the fixed word sets used
// to analyse and score text. A Store is built once at startup and never
// mutated afterwards, so it can be shared by any number of goroutines.
package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCategory = errors.New("unknown rule category")
	ErrInvalidRule     = errors.New("invalid rule")
)

//go:embed default_rules.yaml
var defaultRules []byte

// Rule rewrites text matching Pattern into Replacement.
//
// Literal rules match Pattern as whole words, ignoring case. Regex rules use
// RE2 syntax and expand ${n} references in Replacement. When Span is non-zero
// only that capture group is rewritten; the rest of the match is context.
type Rule struct {
	ID          string   `yaml:"id"`
	Category    Category `yaml:"category"`
	Pattern     string   `yaml:"pattern"`
	Replacement string   `yaml:"replacement"`
	Regex       bool     `yaml:"regex"`
	Span        int      `yaml:"span"`
}

// Priority is the application rank inherited from the rule's category.
func (r Rule) Priority() int { return r.Category.Priority() }

// Policy is suppression data consumed by the correction selector.
type Policy struct {
	// AlwaysCorrect lists words that are corrected whenever a rule matches,
	// regardless of dictionary or context signals.
	AlwaysCorrect []string `yaml:"always_correct"`
}

// Group is a named word set. Groups are kept in file order because the first
// matching group wins when words are bucketed.
type Group struct {
	Name  string   `yaml:"name"`
	Words []string `yaml:"words"`
}

// Lexicon holds the fixed word sets behind context analysis and scoring.
type Lexicon struct {
	Pronouns          []string `yaml:"pronouns"`
	Verbs             []string `yaml:"verbs"`
	KnownNames        []string `yaml:"known_names"`
	AcademicKeywords  []string `yaml:"academic_keywords"`
	BusinessKeywords  []string `yaml:"business_keywords"`
	EducationKeywords []string `yaml:"education_keywords"`
	Relationships     []Group  `yaml:"relationships"`
	SemanticGroups    []Group  `yaml:"semantic_groups"`
	AcademicSensitive []string `yaml:"academic_sensitive"`
	BusinessSensitive []string `yaml:"business_sensitive"`
}

type document struct {
	Rules   []Rule  `yaml:"rules"`
	Policy  Policy  `yaml:"policy"`
	Lexicon Lexicon `yaml:"lexicon"`
}

// Store is the immutable rule index.
type Store struct {
	byCategory map[Category][]Rule
	policy     Policy
	lexicon    Lexicon
	size       int
}

// Default returns the store built from the embedded rule table.
func Default() (*Store, error) {
	return Parse(defaultRules)
}

// LoadFile reads a YAML rule table from disk.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule table: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a YAML rule table.
func Load(r io.Reader) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read rule table: %w", err)
	}
	return Parse(data)
}

// Parse builds a store from YAML data.
func Parse(data []byte) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode rule table: %w", err)
	}
	return New(doc.Rules, doc.Policy, doc.Lexicon)
}

// New validates rules and indexes them by category, keeping their order.
func New(ruleList []Rule, policy Policy, lexicon Lexicon) (*Store, error) {
	s := &Store{
		byCategory: make(map[Category][]Rule),
		policy:     Policy{AlwaysCorrect: normalizeWords(policy.AlwaysCorrect)},
		lexicon:    normalizeLexicon(lexicon),
	}
	seen := make(map[string]bool, len(ruleList))
	for i, r := range ruleList {
		if r.ID == "" {
			r.ID = fmt.Sprintf("%s-%d", r.Category, i+1)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidRule, r.ID)
		}
		seen[r.ID] = true
		if _, err := ParseCategory(string(r.Category)); err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.ID, err)
		}
		if r.Pattern == "" {
			return nil, fmt.Errorf("%w: rule %q has an empty pattern", ErrInvalidRule, r.ID)
		}
		if r.Regex {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: rule %q: %v", ErrInvalidRule, r.ID, err)
			}
			if r.Span < 0 || r.Span > re.NumSubexp() {
				return nil, fmt.Errorf("%w: rule %q span %d out of range", ErrInvalidRule, r.ID, r.Span)
			}
		} else {
			if r.Span != 0 {
				return nil, fmt.Errorf("%w: rule %q: span needs a regex pattern", ErrInvalidRule, r.ID)
			}
			r.Pattern = norm.NFC.String(r.Pattern)
		}
		r.Replacement = norm.NFC.String(r.Replacement)
		s.byCategory[r.Category] = append(s.byCategory[r.Category], r)
		s.size++
	}
	return s, nil
}

// RulesFor returns the rules of one category in table order.
func (s *Store) RulesFor(c Category) []Rule {
	return slices.Clone(s.byCategory[c])
}

// PriorityOf returns the application rank of a category.
func (s *Store) PriorityOf(c Category) int {
	return c.Priority()
}

// Categories lists every rule category in application order.
func (s *Store) Categories() []Category {
	return slices.Clone(orderedCategories)
}

// Len is the total number of rules.
func (s *Store) Len() int { return s.size }

// Policy returns the suppression policy.
func (s *Store) Policy() Policy {
	return Policy{AlwaysCorrect: slices.Clone(s.policy.AlwaysCorrect)}
}

// Lexicon returns the fixed analysis word sets. The returned value shares
// backing arrays with the store and must be treated as read-only.
func (s *Store) Lexicon() *Lexicon {
	return &s.lexicon
}

func normalizeWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(norm.NFC.String(w)))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func normalizeGroups(groups []Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, Group{Name: g.Name, Words: normalizeWords(g.Words)})
	}
	return out
}

func normalizeLexicon(l Lexicon) Lexicon {
	return Lexicon{
		Pronouns:          normalizeWords(l.Pronouns),
		Verbs:             normalizeWords(l.Verbs),
		KnownNames:        normalizeWords(l.KnownNames),
		AcademicKeywords:  normalizeWords(l.AcademicKeywords),
		BusinessKeywords:  normalizeWords(l.BusinessKeywords),
		EducationKeywords: normalizeWords(l.EducationKeywords),
		Relationships:     normalizeGroups(l.Relationships),
		SemanticGroups:    normalizeGroups(l.SemanticGroups),
		AcademicSensitive: normalizeWords(l.AcademicSensitive),
		BusinessSensitive: normalizeWords(l.BusinessSensitive),
	}
}
