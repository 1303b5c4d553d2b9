// Package applier orders corrections and rewrites text in a single pass.
package applier

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"vispell/internal/matcher"
	"vispell/internal/rules"
)

// PriorityFunc ranks a category; lower values are applied first.
type PriorityFunc func(rules.Category) int

// Order returns a sorted copy of cands: by priority, then position, then
// longer span, then replacement and rule id so the order is total.
func Order(cands []matcher.Candidate, priority PriorityFunc) []matcher.Candidate {
	out := slices.Clone(cands)
	slices.SortStableFunc(out, func(a, b matcher.Candidate) int {
		return cmp.Or(
			cmp.Compare(priority(a.Category), priority(b.Category)),
			cmp.Compare(a.Position, b.Position),
			cmp.Compare(b.Len(), a.Len()),
			cmp.Compare(a.Replacement, b.Replacement),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})
	return out
}

// Apply rewrites text with the candidates in Order. A candidate whose span
// overlaps one that was already accepted is skipped. All offsets refer to
// the original text, so edits never see each other's output.
func Apply(text string, cands []matcher.Candidate, priority PriorityFunc) (string, []matcher.Candidate) {
	var accepted []matcher.Candidate
	for _, c := range Order(cands, priority) {
		if c.Start < 0 || c.End > len(text) || c.Start > c.End {
			continue
		}
		if slices.ContainsFunc(accepted, c.Overlaps) {
			continue
		}
		accepted = append(accepted, c)
	}
	if len(accepted) == 0 {
		return text, nil
	}

	edits := slices.Clone(accepted)
	slices.SortFunc(edits, func(a, b matcher.Candidate) int { return cmp.Compare(a.Start, b.Start) })

	var sb strings.Builder
	sb.Grow(len(text))
	prev := 0
	for _, e := range edits {
		sb.WriteString(text[prev:e.Start])
		sb.WriteString(MatchCase(e.Word, e.Replacement))
		prev = e.End
	}
	sb.WriteString(text[prev:])
	return sb.String(), accepted
}

// MatchCase shapes replacement after the case of word. An all upper-case word
// gives an upper-case replacement; a title-case word capitalises the first
// letter of the replacement. Anything else leaves the replacement as is.
func MatchCase(word, replacement string) string {
	switch {
	case isUpper(word):
		return strings.ToUpper(replacement)
	case isTitle(word):
		return capitalize(replacement)
	default:
		return replacement
	}
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func isTitle(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(first) {
		return false
	}
	rest := s[size:]
	return strings.ToLower(rest) == rest
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}
