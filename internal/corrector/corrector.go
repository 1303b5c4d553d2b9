// Package corrector wires the correction pipeline together and memoizes its
// results.
//
// A check runs: normalize, tokenize, analyze context, match every rule
// category, suppress and deduplicate, apply in priority order, score. Every
// stage but the cache is read-only after construction, so one SpellCorrector
// serves any number of concurrent requests.
package corrector

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"vispell/internal/analyzer"
	"vispell/internal/applier"
	"vispell/internal/cache"
	"vispell/internal/matcher"
	"vispell/internal/rules"
	"vispell/internal/scorer"
	"vispell/internal/selector"
	"vispell/internal/tokenizer"
	"vispell/pkg/options"
)

// Dictionary answers word-level questions independent of the rule table.
type Dictionary interface {
	IsCorrectWord(word string) bool
	GetSuggestions(word string, limit int) []string
	AddWord(word string)
	RemoveWord(word string)
}

// WordStore persists user-added words.
type WordStore interface {
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
	All(ctx context.Context) ([]string, error)
}

// Tokenizer splits normalized text into words.
type Tokenizer interface {
	Tokenize(text string) []string
}

type SpellCorrector struct {
	config    options.CheckerOptions
	store     *rules.Store
	dict      Dictionary
	words     WordStore
	tokenizer Tokenizer
	analyzer  *analyzer.Analyzer
	matcher   *matcher.Matcher
	selector  *selector.Selector
	scorer    *scorer.Scorer
	cache     *cache.Cache
	log       *slog.Logger
}

// NewSpellCorrector builds the pipeline. words may be nil, in which case
// custom words live only in memory.
func NewSpellCorrector(store *rules.Store, dict Dictionary, words WordStore, opts ...options.Options) (*SpellCorrector, error) {
	cfg := options.Build(opts...)
	if cfg.MaxTextLength <= 0 {
		return nil, fmt.Errorf("max text length must be positive, got %d", cfg.MaxTextLength)
	}
	if cfg.MaxSuggestions <= 0 {
		return nil, fmt.Errorf("max suggestions must be positive, got %d", cfg.MaxSuggestions)
	}
	m, err := matcher.New(store)
	if err != nil {
		return nil, fmt.Errorf("build matcher: %w", err)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	sc := &SpellCorrector{
		config:    cfg,
		store:     store,
		dict:      dict,
		words:     words,
		tokenizer: tokenizer.New(dict, cfg.MaxMerge),
		analyzer:  analyzer.New(store.Lexicon()),
		matcher:   m,
		selector:  selector.New(dict, store.Policy().AlwaysCorrect),
		scorer:    scorer.New(dict, store.Lexicon()),
		log:       log,
	}
	if cfg.CacheEnabled {
		var cacheOpts []cache.Option
		if cfg.Clock != nil {
			cacheOpts = append(cacheOpts, cache.WithClock(cfg.Clock))
		}
		c, err := cache.New(cfg.CacheMaxSize, cfg.CacheTTL, cacheOpts...)
		if err != nil {
			return nil, err
		}
		sc.cache = c
	}
	return sc, nil
}

// Validate applies the length check of CheckText and also rejects blank
// text. Callers that must not accept blank input use it up front.
func (sc *SpellCorrector) Validate(text string) error {
	if err := sc.checkLength(text); err != nil {
		return err
	}
	if Normalize(text) == "" {
		return ErrEmptyText
	}
	return nil
}

func (sc *SpellCorrector) checkLength(text string) error {
	if utf8.RuneCountInString(text) > sc.config.MaxTextLength {
		return fmt.Errorf("%w: %d characters allowed", ErrTextTooLong, sc.config.MaxTextLength)
	}
	return nil
}

// CheckText corrects text. Blank text yields an empty result with full
// confidence. The only errors returned are input errors; a failure inside the
// pipeline is reported through CorrectionResult.Error instead.
func (sc *SpellCorrector) CheckText(text string) (CorrectionResult, error) {
	if err := sc.checkLength(text); err != nil {
		return CorrectionResult{}, err
	}
	normalized := Normalize(text)
	if normalized == "" {
		return emptyResult(text), nil
	}

	key := cacheKey(opCheckSpelling, normalized)
	if sc.cache != nil {
		if v, ok := sc.cache.Get(key); ok {
			if res, ok := v.(CorrectionResult); ok {
				sc.log.Debug("cache hit", "op", opCheckSpelling, "key", key[:8])
				out := res.clone()
				out.Original = text
				out.Cached = true
				return out, nil
			}
			sc.log.Warn("unexpected cache entry type", "op", opCheckSpelling, "key", key[:8], "type", fmt.Sprintf("%T", v))
		} else {
			sc.log.Debug("cache miss", "op", opCheckSpelling, "key", key[:8])
		}
	}

	res := sc.run(text, normalized)
	if sc.cache != nil && res.Error == "" {
		sc.cache.Set(key, res.clone())
	}
	return res, nil
}

func (sc *SpellCorrector) run(original, normalized string) (res CorrectionResult) {
	defer func() {
		if r := recover(); r != nil {
			sc.log.Error("correction pipeline failed", "panic", r)
			res = degradedResult(original, fmt.Errorf("internal error: %v", r))
		}
	}()

	tokens := sc.tokenizer.Tokenize(normalized)
	ctx := sc.analyzer.Analyze(normalized, tokens)
	kept := sc.selector.Select(sc.matcher.MatchAll(normalized, nil), &ctx)
	corrected, applied := applier.Apply(normalized, kept, sc.store.PriorityOf)

	appliedIDs := make(map[[2]int]string, len(applied))
	for _, c := range applied {
		appliedIDs[[2]int{c.Start, c.End}] = c.RuleID
	}

	res = CorrectionResult{
		Original:          original,
		Corrected:         corrected,
		Errors:            make([]ErrorDetail, 0, len(kept)),
		ErrorCategories:   make(map[rules.Category]int),
		WordProbabilities: map[string]float64{},
	}
	fixes := scorer.Corrections{}
	for _, c := range applier.Order(kept, sc.store.PriorityOf) {
		fixed := applier.MatchCase(c.Word, c.Replacement)
		res.Errors = append(res.Errors, ErrorDetail{
			Word:        c.Word,
			Position:    c.Position,
			Corrected:   fixed,
			Category:    c.Category,
			Suggestions: []string{fixed},
			RuleID:      c.RuleID,
			Applied:     appliedIDs[[2]int{c.Start, c.End}] == c.RuleID,
		})
		res.ErrorCategories[c.Category]++
		fixes.Add(c.Word, c.Category)
	}
	res.ErrorCount = len(res.Errors)
	res.WordProbabilities = sc.scorer.Score(tokens, fixes, &ctx)
	res.Confidence = scorer.Confidence(res.ErrorCount, len(tokens))
	return res
}

// GetSuggestions proposes corrections for a single word: rewrites from the
// rule table first, then the word itself when it is already correct, then
// dictionary suggestions.
func (sc *SpellCorrector) GetSuggestions(word string) ([]string, error) {
	w := Normalize(word)
	if w == "" {
		return nil, ErrEmptyWord
	}
	if err := sc.checkLength(w); err != nil {
		return nil, err
	}

	key := cacheKey(opSuggestions, w)
	if sc.cache != nil {
		if v, ok := sc.cache.Get(key); ok {
			if list, ok := v.([]string); ok {
				return slices.Clone(list), nil
			}
			sc.log.Warn("unexpected cache entry type", "op", opSuggestions, "key", key[:8], "type", fmt.Sprintf("%T", v))
		}
	}

	var out []string
	add := func(s string) {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	for _, c := range sc.matcher.MatchAll(w, nil) {
		fixed, _ := applier.Apply(w, []matcher.Candidate{c}, sc.store.PriorityOf)
		add(fixed)
	}
	if sc.dict != nil {
		if sc.dict.IsCorrectWord(w) {
			add(w)
		}
		for _, s := range sc.dict.GetSuggestions(w, sc.config.MaxSuggestions) {
			add(s)
		}
	}
	if len(out) > sc.config.MaxSuggestions {
		out = out[:sc.config.MaxSuggestions]
	}
	if out == nil {
		out = []string{}
	}

	if sc.cache != nil {
		sc.cache.Set(key, slices.Clone(out))
	}
	return out, nil
}

// ClearCache drops every memoized result.
func (sc *SpellCorrector) ClearCache() {
	if sc.cache != nil {
		sc.cache.Clear()
	}
}

// CacheStats reports cache counters. A disabled cache reports zeros.
func (sc *SpellCorrector) CacheStats() CacheStats {
	st := CacheStats{Enabled: sc.cache != nil, TTLSeconds: sc.config.CacheTTL.Seconds()}
	if sc.cache != nil {
		st.Stats = sc.cache.Stats()
	}
	return st
}

// Options returns the effective configuration.
func (sc *SpellCorrector) Options() options.CheckerOptions { return sc.config }

// RuleCount is the number of loaded rules.
func (sc *SpellCorrector) RuleCount() int { return sc.store.Len() }

// LoadCustomWords pulls persisted custom words into the dictionary.
func (sc *SpellCorrector) LoadCustomWords(ctx context.Context) (int, error) {
	if sc.words == nil || sc.dict == nil {
		return 0, nil
	}
	words, err := sc.words.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("load custom words: %w", err)
	}
	for _, w := range words {
		sc.dict.AddWord(w)
	}
	if len(words) > 0 {
		sc.ClearCache()
	}
	return len(words), nil
}

// AddCustomWord accepts word as correct and persists it. Cached results are
// dropped since they may have flagged the word.
func (sc *SpellCorrector) AddCustomWord(ctx context.Context, word string) error {
	w := strings.ToLower(Normalize(word))
	if w == "" {
		return ErrEmptyWord
	}
	if sc.words != nil {
		if err := sc.words.Add(ctx, w); err != nil {
			return fmt.Errorf("store custom word: %w", err)
		}
	}
	if sc.dict != nil {
		sc.dict.AddWord(w)
	}
	sc.ClearCache()
	return nil
}

// RemoveCustomWord reverses AddCustomWord.
func (sc *SpellCorrector) RemoveCustomWord(ctx context.Context, word string) error {
	w := strings.ToLower(Normalize(word))
	if w == "" {
		return ErrEmptyWord
	}
	if sc.words != nil {
		if err := sc.words.Remove(ctx, w); err != nil {
			return fmt.Errorf("remove custom word: %w", err)
		}
	}
	if sc.dict != nil {
		sc.dict.RemoveWord(w)
	}
	sc.ClearCache()
	return nil
}

func emptyResult(original string) CorrectionResult {
	return CorrectionResult{
		Original:          original,
		Corrected:         "",
		Errors:            []ErrorDetail{},
		Confidence:        1.0,
		ErrorCategories:   map[rules.Category]int{},
		WordProbabilities: map[string]float64{},
	}
}

func degradedResult(original string, err error) CorrectionResult {
	return CorrectionResult{
		Original:          original,
		Corrected:         original,
		Errors:            []ErrorDetail{},
		Confidence:        0,
		ErrorCategories:   map[rules.Category]int{},
		WordProbabilities: map[string]float64{},
		Error:             err.Error(),
	}
}
