package options

import (
	"log/slog"
	"time"
)

// DefaultOptions mirror the limits the HTTP API has always used.
var DefaultOptions = CheckerOptions{
	MaxTextLength:  10000,
	MaxSuggestions: 5,
	CacheEnabled:   true,
	CacheMaxSize:   1000,
	CacheTTL:       time.Hour,
	MaxMerge:       4,
}

type CheckerOptions struct {
	MaxTextLength  int // Longest accepted input, in characters
	MaxSuggestions int // Upper bound on suggestions per word
	CacheEnabled   bool
	CacheMaxSize   int
	CacheTTL       time.Duration
	MaxMerge       int // Syllables the tokenizer may join into one word
	Logger         *slog.Logger
	Clock          func() time.Time
}

type Options interface {
	Apply(options *CheckerOptions)
}

type FuncConfig struct {
	ops func(options *CheckerOptions)
}

func (w FuncConfig) Apply(conf *CheckerOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *CheckerOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Build applies opts over DefaultOptions.
func Build(opts ...Options) CheckerOptions {
	o := DefaultOptions
	for _, opt := range opts {
		opt.Apply(&o)
	}
	return o
}

func WithMaxTextLength(n int) Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.MaxTextLength = n
	})
}

func WithMaxSuggestions(n int) Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.MaxSuggestions = n
	})
}

func WithCache(maxSize int, ttl time.Duration) Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.CacheEnabled = true
		options.CacheMaxSize = maxSize
		options.CacheTTL = ttl
	})
}

func WithoutCache() Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.CacheEnabled = false
	})
}

func WithMaxMerge(n int) Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.MaxMerge = n
	})
}

func WithLogger(l *slog.Logger) Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.Logger = l
	})
}

// WithClock replaces time.Now for cache expiry.
func WithClock(now func() time.Time) Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.Clock = now
	})
}
