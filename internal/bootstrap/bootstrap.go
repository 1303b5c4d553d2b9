// Package bootstrap assembles a SpellCorrector from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"vispell/internal/config"
	"vispell/internal/corrector"
	"vispell/internal/customdict"
	"vispell/internal/dictionary"
	"vispell/internal/rules"
	"vispell/pkg/options"
)

const redisPingTimeout = 3 * time.Second

// App owns the checker and the connections it depends on.
type App struct {
	Corrector  *corrector.SpellCorrector
	Dictionary *dictionary.Dictionary
	Rules      *rules.Store

	redis redis.UniversalClient
	log   *slog.Logger
}

// New loads rules and dictionary, connects to Redis when enabled and
// restores persisted custom words.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{log: logger}

	store, err := loadRules(cfg.Rules.Path)
	if err != nil {
		return nil, err
	}
	dict, err := loadDictionary(cfg.Dictionary.Path)
	if err != nil {
		return nil, err
	}
	app.Rules, app.Dictionary = store, dict
	logger.Debug("loaded language data", "rules", store.Len(), "words", dict.Len())

	var words corrector.WordStore
	if cfg.Redis.Enabled {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cd := customdict.New(app.redis).WithKey(cfg.Redis.Key)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		err := cd.Ping(pingCtx)
		cancel()
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		words = cd
	}

	merge := cfg.Checker.MaxMerge
	if merge == 0 {
		merge = dict.LongestEntry()
	}
	opts := []options.Options{
		options.WithMaxTextLength(cfg.Checker.MaxTextLength),
		options.WithMaxSuggestions(cfg.Checker.MaxSuggestions),
		options.WithMaxMerge(merge),
		options.WithLogger(logger),
	}
	if cfg.Cache.Enabled {
		opts = append(opts, options.WithCache(cfg.Cache.MaxSize, cfg.Cache.TTL))
	} else {
		opts = append(opts, options.WithoutCache())
	}

	sc, err := corrector.NewSpellCorrector(store, dict, words, opts...)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("init corrector: %w", err)
	}
	app.Corrector = sc

	n, err := sc.LoadCustomWords(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	if n > 0 {
		logger.Info("restored custom words", "count", n)
	}
	return app, nil
}

// Close releases the Redis connection, if any.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}

func loadRules(path string) (*rules.Store, error) {
	if path == "" {
		return rules.Default()
	}
	store, err := rules.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load rules from %s: %w", path, err)
	}
	return store, nil
}

func loadDictionary(path string) (*dictionary.Dictionary, error) {
	if path == "" {
		return dictionary.Default()
	}
	dict, err := dictionary.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load dictionary from %s: %w", path, err)
	}
	return dict, nil
}
