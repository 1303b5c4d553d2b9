// Package matcher finds rule matches in normalized text.
//
// Literal rules of a category are folded into one rune trie that is walked
// from every position of the text, so the cost of a scan does not grow with
// the number of literal rules. Regex rules are compiled once and run in table
// order. Both kinds only match at word edges, where a word is a run of
// letters, digits, underscores and combining marks.
package matcher

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"vispell/internal/rules"
	"vispell/internal/tokenizer"
)

// Candidate is one proposed correction.
type Candidate struct {
	// Word is the matched text exactly as it appears in the input.
	Word string
	// Position is the rune offset of Word in the input.
	Position int
	// Start and End are the byte bounds of Word in the input.
	Start, End int

	Category    rules.Category
	Replacement string
	RuleID      string
}

// Len is the number of bytes the candidate covers.
func (c Candidate) Len() int { return c.End - c.Start }

// Overlaps reports whether two candidates cover a common byte.
func (c Candidate) Overlaps(o Candidate) bool {
	return c.Start < o.End && o.Start < c.End
}

type compiledRule struct {
	rule rules.Rule
	re   *regexp.Regexp
}

type categoryIndex struct {
	rules []compiledRule
	trie  *node
}

// Matcher scans text against a rule store. It is immutable after New and safe
// for concurrent use.
type Matcher struct {
	index map[rules.Category]*categoryIndex
	order []rules.Category
}

// New compiles every rule of the store.
func New(store *rules.Store) (*Matcher, error) {
	m := &Matcher{
		index: make(map[rules.Category]*categoryIndex),
		order: store.Categories(),
	}
	for _, c := range m.order {
		idx := &categoryIndex{trie: newNode()}
		for i, r := range store.RulesFor(c) {
			cr := compiledRule{rule: r}
			if r.Regex {
				re, err := regexp.Compile("(?i)" + r.Pattern)
				if err != nil {
					return nil, fmt.Errorf("compile rule %q: %w", r.ID, err)
				}
				cr.re = re
			} else {
				idx.trie.insert(r.Pattern, i)
			}
			idx.rules = append(idx.rules, cr)
		}
		m.index[c] = idx
	}
	return m, nil
}

// Match returns the matches of every rule in one category. Matches of the same
// rule never overlap. Results are ordered by rule, then by position.
func (m *Matcher) Match(text string, c rules.Category) []Candidate {
	idx, ok := m.index[c]
	if !ok || text == "" {
		return nil
	}
	perRule := make([][]Candidate, len(idx.rules))
	if !idx.trie.empty() {
		scanLiterals(text, idx, perRule)
	}
	for i, cr := range idx.rules {
		if cr.re != nil {
			perRule[i] = scanRegex(text, cr)
		}
	}
	var out []Candidate
	for _, cands := range perRule {
		out = append(out, cands...)
	}
	return out
}

// MatchAll runs Match for each category in turn. A nil list means every
// category of the store, in application order.
func (m *Matcher) MatchAll(text string, cats []rules.Category) []Candidate {
	if cats == nil {
		cats = m.order
	}
	var out []Candidate
	for _, c := range cats {
		out = append(out, m.Match(text, c)...)
	}
	return out
}

func scanLiterals(text string, idx *categoryIndex, perRule [][]Candidate) {
	runes := []rune(text)
	offsets := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		offsets[i] = b
		b += utf8.RuneLen(r)
	}
	offsets[len(runes)] = b

	lastEnd := make([]int, len(idx.rules))
	for start := range runes {
		if tokenizer.IsWordRune(runes[start]) && start > 0 && tokenizer.IsWordRune(runes[start-1]) {
			continue
		}
		n := idx.trie
		for end := start; end < len(runes); end++ {
			n = n.children[unicode.ToLower(runes[end])]
			if n == nil {
				break
			}
			if len(n.ruleIdx) == 0 {
				continue
			}
			if tokenizer.IsWordRune(runes[end]) && end+1 < len(runes) && tokenizer.IsWordRune(runes[end+1]) {
				continue
			}
			word := text[offsets[start]:offsets[end+1]]
			for _, ri := range n.ruleIdx {
				r := idx.rules[ri].rule
				if offsets[start] < lastEnd[ri] || word == r.Replacement {
					continue
				}
				perRule[ri] = append(perRule[ri], Candidate{
					Word:        word,
					Position:    start,
					Start:       offsets[start],
					End:         offsets[end+1],
					Category:    r.Category,
					Replacement: r.Replacement,
					RuleID:      r.ID,
				})
				lastEnd[ri] = offsets[end+1]
			}
		}
	}
}

func scanRegex(text string, cr compiledRule) []Candidate {
	var out []Candidate
	pos := 0
	for pos <= len(text) {
		loc := cr.re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		ms := pos + loc[0]
		ss, se := pos+loc[2*cr.rule.Span], pos+loc[2*cr.rule.Span+1]
		accepted := false
		if loc[2*cr.rule.Span] >= 0 && se > ss && atWordEdges(text, ss, se) {
			repl := string(cr.re.ExpandString(nil, cr.rule.Replacement, text[pos:], loc))
			if word := text[ss:se]; repl != word {
				out = append(out, Candidate{
					Word:        word,
					Position:    utf8.RuneCountInString(text[:ss]),
					Start:       ss,
					End:         se,
					Category:    cr.rule.Category,
					Replacement: repl,
					RuleID:      cr.rule.ID,
				})
				accepted = true
			}
		}
		switch {
		case accepted:
			pos = se
		case ms < len(text):
			_, size := utf8.DecodeRuneInString(text[ms:])
			pos = ms + size
		default:
			return out
		}
	}
	return out
}

// atWordEdges reports whether text[start:end] does not cut through a word.
func atWordEdges(text string, start, end int) bool {
	first, _ := utf8.DecodeRuneInString(text[start:])
	if tokenizer.IsWordRune(first) && start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if tokenizer.IsWordRune(prev) {
			return false
		}
	}
	last, _ := utf8.DecodeLastRuneInString(text[:end])
	if tokenizer.IsWordRune(last) && end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if tokenizer.IsWordRune(next) {
			return false
		}
	}
	return true
}
