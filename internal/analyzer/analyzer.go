// Package analyzer derives lightweight context signals from tokenized text.
package analyzer

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"vispell/internal/rules"
)

type SentenceType string

const (
	Statement   SentenceType = "statement"
	Question    SentenceType = "question"
	Exclamation SentenceType = "exclamation"
)

// SubjectWords is the relationship bucket holding sentence subjects.
const SubjectWords = "subject_words"

// Pair is a pronoun directly followed by a verb or auxiliary.
type Pair struct {
	Subject string `json:"subject"`
	Verb    string `json:"verb"`
}

// Context is recomputed for every request and never shared between them.
type Context struct {
	SentenceType SentenceType `json:"sentence_type"`
	// ProperNouns holds tokens as they appear in the text.
	ProperNouns       []string            `json:"proper_nouns"`
	Academic          bool                `json:"academic"`
	Business          bool                `json:"business"`
	Education         bool                `json:"education"`
	SubjectVerbPairs  []Pair              `json:"subject_verb_pairs"`
	WordRelationships map[string][]string `json:"word_relationships"`
	SemanticGroups    map[string][]string `json:"semantic_groups"`
}

// IsProperNoun reports whether word was recognised as a proper noun.
func (c *Context) IsProperNoun(word string) bool {
	return slices.Contains(c.ProperNouns, word)
}

// InBucket reports whether the lower-cased word was placed in the named
// relationship bucket.
func (c *Context) InBucket(bucket, word string) bool {
	return slices.Contains(c.WordRelationships[bucket], strings.ToLower(word))
}

type group struct {
	name  string
	words map[string]bool
}

// Analyzer holds the word sets context analysis runs against.
type Analyzer struct {
	pronouns      map[string]bool
	verbs         map[string]bool
	knownNames    map[string]bool
	academic      []string
	business      []string
	education     []string
	relationships []group
	semantic      []group
}

func New(lex *rules.Lexicon) *Analyzer {
	return &Analyzer{
		pronouns:      toSet(lex.Pronouns),
		verbs:         toSet(lex.Verbs),
		knownNames:    toSet(lex.KnownNames),
		academic:      lex.AcademicKeywords,
		business:      lex.BusinessKeywords,
		education:     lex.EducationKeywords,
		relationships: toGroups(lex.Relationships),
		semantic:      toGroups(lex.SemanticGroups),
	}
}

// Analyze builds the context of one normalized text and its tokens.
func (a *Analyzer) Analyze(text string, tokens []string) Context {
	lower := strings.ToLower(text)
	lowTokens := make([]string, len(tokens))
	for i, t := range tokens {
		lowTokens[i] = strings.ToLower(t)
	}

	ctx := Context{
		SentenceType:      sentenceType(text),
		Academic:          containsAny(lower, a.academic),
		Business:          containsAny(lower, a.business),
		Education:         containsAny(lower, a.education),
		WordRelationships: bucket(lowTokens, a.relationships),
		SemanticGroups:    bucket(lowTokens, a.semantic),
	}

	seen := make(map[string]bool)
	for i, t := range tokens {
		if !seen[t] && a.isProperNoun(t, lowTokens[i]) {
			seen[t] = true
			ctx.ProperNouns = append(ctx.ProperNouns, t)
		}
	}

	for i := 0; i+1 < len(lowTokens); i++ {
		if a.pronouns[lowTokens[i]] && a.verbs[lowTokens[i+1]] {
			ctx.SubjectVerbPairs = append(ctx.SubjectVerbPairs, Pair{Subject: lowTokens[i], Verb: lowTokens[i+1]})
		}
	}
	return ctx
}

func (a *Analyzer) isProperNoun(token, lower string) bool {
	if a.knownNames[lower] {
		return true
	}
	first, _ := utf8.DecodeRuneInString(token)
	return unicode.IsUpper(first) && utf8.RuneCountInString(token) > 1
}

func sentenceType(text string) SentenceType {
	last, _ := utf8.DecodeLastRuneInString(strings.TrimSpace(text))
	switch last {
	case '?':
		return Question
	case '!':
		return Exclamation
	default:
		return Statement
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// bucket places every token in the first group that lists it. Each bucket
// keeps first-seen order without duplicates; empty buckets are omitted.
func bucket(tokens []string, groups []group) map[string][]string {
	out := make(map[string][]string)
	for _, t := range tokens {
		for _, g := range groups {
			if !g.words[t] {
				continue
			}
			if !slices.Contains(out[g.name], t) {
				out[g.name] = append(out[g.name], t)
			}
			break
		}
	}
	return out
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

func toGroups(gs []rules.Group) []group {
	out := make([]group, 0, len(gs))
	for _, g := range gs {
		out = append(out, group{name: g.Name, words: toSet(g.Words)})
	}
	return out
}
