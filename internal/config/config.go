// Package config loads settings from defaults, an optional config.yaml and
// VISPELL_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, so cache.ttl is read from
// VISPELL_CACHE_TTL.
const EnvPrefix = "VISPELL"

type Config struct {
	HTTP       HTTPConfig       `mapstructure:"http"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Rules      RulesConfig      `mapstructure:"rules"`
	Checker    CheckerConfig    `mapstructure:"checker"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RedisConfig locates the store for custom words. With Enabled false custom
// words are kept in memory and lost on restart.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

// DictionaryConfig.Path empty selects the embedded word list.
type DictionaryConfig struct {
	Path string `mapstructure:"path"`
}

// RulesConfig.Path empty selects the embedded rule table.
type RulesConfig struct {
	Path string `mapstructure:"path"`
}

// CheckerConfig.MaxMerge zero lets the longest dictionary entry set how many
// syllables the tokenizer may join.
type CheckerConfig struct {
	MaxTextLength  int `mapstructure:"max_text_length"`
	MaxSuggestions int `mapstructure:"max_suggestions"`
	MaxMerge       int `mapstructure:"max_merge"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
	MaxSize int           `mapstructure:"max_size"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaults = map[string]any{
	"http.addr":               ":3000",
	"http.shutdown_timeout":   10 * time.Second,
	"redis.enabled":           false,
	"redis.addr":              "localhost:6379",
	"redis.password":          "",
	"redis.db":                0,
	"redis.key":               "custom_dict",
	"dictionary.path":         "",
	"rules.path":              "",
	"checker.max_text_length": 10000,
	"checker.max_suggestions": 5,
	"checker.max_merge":       0,
	"cache.enabled":           true,
	"cache.ttl":               time.Hour,
	"cache.max_size":          1000,
	"logging.level":           "info",
	"logging.format":          "console",
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"log-level":  "logging.level",
	"log-format": "logging.format",
	"addr":       "http.addr",
	"dictionary": "dictionary.path",
	"rules":      "rules.path",
}

// Load reads the configuration. cfgFile, when set, must exist; otherwise
// config.yaml is looked up in the working directory and $HOME/.vispell and
// may be absent. Flags present in flags override everything else.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.vispell")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
		// --no-cache inverts cache.enabled, so it cannot be bound directly.
		if noCache, err := flags.GetBool("no-cache"); err == nil && noCache {
			v.Set("cache.enabled", false)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the checker cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Checker.MaxTextLength <= 0:
		return fmt.Errorf("checker.max_text_length must be positive, got %d", c.Checker.MaxTextLength)
	case c.Checker.MaxSuggestions <= 0:
		return fmt.Errorf("checker.max_suggestions must be positive, got %d", c.Checker.MaxSuggestions)
	case c.Checker.MaxMerge < 0:
		return fmt.Errorf("checker.max_merge must not be negative, got %d", c.Checker.MaxMerge)
	case c.Cache.Enabled && c.Cache.MaxSize <= 0:
		return fmt.Errorf("cache.max_size must be positive, got %d", c.Cache.MaxSize)
	case c.HTTP.Addr == "":
		return errors.New("http.addr is empty")
	}
	return nil
}
