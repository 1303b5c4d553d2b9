package corrector

import (
	"errors"
	"maps"
	"slices"

	"vispell/internal/cache"
	"vispell/internal/rules"
)

// Input errors. Requests failing these checks never reach the pipeline.
var (
	ErrEmptyText   = errors.New("text is empty")
	ErrTextTooLong = errors.New("text exceeds the maximum length")
	ErrEmptyWord   = errors.New("word is empty")
)

// IsInputError reports whether err rejects the caller's input, as opposed to
// a failure of the checker itself.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrTextTooLong) || errors.Is(err, ErrEmptyWord)
}

// ErrorDetail is one correction found in a text.
type ErrorDetail struct {
	Word        string         `json:"word"`
	Position    int            `json:"position"`
	Corrected   string         `json:"corrected"`
	Category    rules.Category `json:"category"`
	Suggestions []string       `json:"suggestions"`
	RuleID      string         `json:"rule_id"`
	// Applied is false when an overlapping correction of higher priority
	// rewrote the same text.
	Applied bool `json:"applied"`
}

type CorrectionResult struct {
	Original          string                 `json:"original_text"`
	Corrected         string                 `json:"corrected_text"`
	Errors            []ErrorDetail          `json:"errors"`
	ErrorCount        int                    `json:"error_count"`
	Confidence        float64                `json:"confidence"`
	ErrorCategories   map[rules.Category]int `json:"error_categories"`
	WordProbabilities map[string]float64     `json:"word_probabilities"`
	// Error is set when the checker failed and the text was left unchanged.
	Error  string `json:"error,omitempty"`
	Cached bool   `json:"cached"`
}

func (r CorrectionResult) clone() CorrectionResult {
	out := r
	out.Errors = make([]ErrorDetail, len(r.Errors))
	for i, e := range r.Errors {
		e.Suggestions = slices.Clone(e.Suggestions)
		out.Errors[i] = e
	}
	out.ErrorCategories = maps.Clone(r.ErrorCategories)
	out.WordProbabilities = maps.Clone(r.WordProbabilities)
	return out
}

// CacheStats extends the cache counters with the checker's cache settings.
type CacheStats struct {
	cache.Stats
	Enabled    bool    `json:"enabled"`
	TTLSeconds float64 `json:"ttl_seconds"`
}
