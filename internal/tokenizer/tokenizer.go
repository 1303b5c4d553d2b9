// Package tokenizer splits Vietnamese text into words.
//
// Vietnamese writes every syllable separately, so a word like "sinh viên"
// spans two space-separated syllables. Syllables are runs of letters and
// digits; neighbouring syllables are merged greedily, longest first, while the
// merged phrase is a dictionary word. Punctuation never becomes a token.
package tokenizer

import (
	"strings"
	"unicode"
)

// DefaultMaxMerge bounds how many syllables one token may join.
const DefaultMaxMerge = 4

// Lexicon tells the tokenizer which phrases are words.
type Lexicon interface {
	IsCorrectWord(word string) bool
}

type Tokenizer struct {
	lex      Lexicon
	maxMerge int
}

// New returns a tokenizer. With a nil lexicon or maxMerge below two every
// syllable is its own token.
func New(lex Lexicon, maxMerge int) *Tokenizer {
	return &Tokenizer{lex: lex, maxMerge: maxMerge}
}

type span struct{ start, end int }

// Tokenize returns the words of text in order, as they appear in text.
func (t *Tokenizer) Tokenize(text string) []string {
	syl := syllables(text)
	out := make([]string, 0, len(syl))
	for i := 0; i < len(syl); {
		n := t.longestWord(text, syl[i:])
		out = append(out, text[syl[i].start:syl[i+n-1].end])
		i += n
	}
	return out
}

// longestWord returns how many syllables from the head of syl form the
// longest dictionary word, at least one.
func (t *Tokenizer) longestWord(text string, syl []span) int {
	if t.lex == nil {
		return 1
	}
	limit := min(t.maxMerge, len(syl))
	// Only syllables separated by exactly one space may merge.
	joined := 1
	for joined < limit && text[syl[joined-1].end:syl[joined].start] == " " {
		joined++
	}
	for n := joined; n > 1; n-- {
		if t.lex.IsCorrectWord(strings.ToLower(text[syl[0].start:syl[n-1].end])) {
			return n
		}
	}
	return 1
}

func syllables(text string) []span {
	var out []span
	start := -1
	for i, r := range text {
		if IsWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, span{start, i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, span{start, len(text)})
	}
	return out
}

// IsWordRune reports whether r can be part of a word: letters, including
// precomposed Vietnamese vowels, digits, underscores and combining marks.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}
