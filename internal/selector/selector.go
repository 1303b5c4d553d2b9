// Package selector decides which matched candidates become corrections.
//
// A candidate is dropped when the matched word already stands on its own: a
// dictionary word, a number, a short acronym or a proper noun. Words on the
// always-correct list skip those checks. With an empty list the selector
// simply keeps every candidate that is not independently valid.
package selector

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"vispell/internal/analyzer"
	"vispell/internal/applier"
	"vispell/internal/matcher"
	"vispell/internal/rules"
)

// Validator reports whether a word is spelled correctly on its own.
type Validator interface {
	IsCorrectWord(word string) bool
}

type Selector struct {
	dict   Validator
	always map[string]bool
}

// New builds a selector. dict may be nil, in which case no candidate is
// suppressed for being a dictionary word.
func New(dict Validator, alwaysCorrect []string) *Selector {
	always := make(map[string]bool, len(alwaysCorrect))
	for _, w := range alwaysCorrect {
		always[strings.ToLower(w)] = true
	}
	return &Selector{dict: dict, always: always}
}

// Keep reports whether a single candidate survives suppression.
func (s *Selector) Keep(c matcher.Candidate, ctx *analyzer.Context) bool {
	if applier.MatchCase(c.Word, c.Replacement) == c.Word {
		return false
	}
	if s.always[strings.ToLower(c.Word)] {
		return true
	}
	switch {
	case s.dict != nil && s.dict.IsCorrectWord(c.Word):
		return false
	case isNumber(c.Word):
		return false
	case isAcronym(c.Word):
		return false
	case ctx != nil && ctx.IsProperNoun(c.Word):
		return false
	}
	return true
}

type identity struct {
	word     string
	position int
	category rules.Category
}

// Select filters cands and removes repeats of the same word, position and
// category. The first occurrence wins and input order is preserved.
func (s *Selector) Select(cands []matcher.Candidate, ctx *analyzer.Context) []matcher.Candidate {
	seen := make(map[identity]bool, len(cands))
	out := make([]matcher.Candidate, 0, len(cands))
	for _, c := range cands {
		if !s.Keep(c, ctx) {
			continue
		}
		id := identity{word: c.Word, position: c.Position, category: c.Category}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, c)
	}
	return out
}

func isNumber(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isAcronym(w string) bool {
	if utf8.RuneCountInString(w) > 2 {
		return false
	}
	hasLetter := false
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
