// Package scorer estimates how likely each word of a text is to be wrong.
package scorer

import (
	"math"
	"strings"
	"unicode/utf8"

	"vispell/internal/analyzer"
	"vispell/internal/rules"
)

const (
	// correctWord is the residual probability of a dictionary word.
	correctWord = 0.05
	// unknownWord is the probability of an unflagged word the dictionary
	// does not know.
	unknownWord = 0.30
)

var baseProbability = map[rules.Category]float64{
	rules.CategoryToneError:      0.95,
	rules.CategoryTypoError:      0.90,
	rules.CategoryStickyTyping:   0.85,
	rules.CategoryCapitalization: 0.80,
	rules.CategoryCompoundWord:   0.75,
	rules.CategorySpacing:        0.70,
	rules.CategoryUnknown:        0.50,
}

// Base returns the starting probability of a corrected word.
func Base(c rules.Category) float64 {
	if p, ok := baseProbability[c]; ok {
		return p
	}
	return baseProbability[rules.CategoryUnknown]
}

type Validator interface {
	IsCorrectWord(word string) bool
}

type Scorer struct {
	dict              Validator
	academicSensitive map[string]bool
	businessSensitive map[string]bool
}

func New(dict Validator, lex *rules.Lexicon) *Scorer {
	s := &Scorer{
		dict:              dict,
		academicSensitive: make(map[string]bool),
		businessSensitive: make(map[string]bool),
	}
	for _, w := range lex.AcademicSensitive {
		s.academicSensitive[w] = true
	}
	for _, w := range lex.BusinessSensitive {
		s.businessSensitive[w] = true
	}
	return s
}

// Corrections maps lower-cased words to the category that corrected them.
// A multi-word correction also registers each of its words.
type Corrections map[string]rules.Category

// Add records a corrected word. Later additions replace earlier ones.
func (c Corrections) Add(word string, cat rules.Category) {
	lw := strings.ToLower(word)
	c[lw] = cat
	for _, part := range strings.Fields(lw) {
		c[part] = cat
	}
}

// Score returns the error probability of every token, keyed by the token as
// it appears in the text.
func (s *Scorer) Score(tokens []string, corrected Corrections, ctx *analyzer.Context) map[string]float64 {
	out := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		lt := strings.ToLower(tok)
		cat, ok := corrected[lt]
		if !ok {
			if s.dict != nil && s.dict.IsCorrectWord(tok) {
				out[tok] = correctWord
			} else {
				out[tok] = unknownWord
			}
			continue
		}

		p := Base(cat)
		n := utf8.RuneCountInString(tok)
		if n <= 2 {
			p *= 0.8
		}
		if n >= 8 {
			p *= 1.1
		}
		if ctx != nil {
			if ctx.Academic && s.academicSensitive[lt] {
				p *= 1.2
			}
			if ctx.Business && s.businessSensitive[lt] {
				p *= 1.1
			}
			if ctx.IsProperNoun(tok) {
				p *= 0.5
			}
			if ctx.InBucket(analyzer.SubjectWords, lt) {
				p *= 0.8
			}
		}
		out[tok] = math.Max(0, math.Min(1, p))
	}
	return out
}

// Confidence is 1 - errors/tokens, floored at zero. Text without tokens has
// full confidence.
func Confidence(errorCount, tokenCount int) float64 {
	if tokenCount == 0 {
		return 1.0
	}
	return math.Max(0, 1-float64(errorCount)/float64(tokenCount))
}
