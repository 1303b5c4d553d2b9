package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"vispell/internal/bootstrap"
	"vispell/internal/config"
	"vispell/internal/logging"
	"vispell/internal/server"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("vispell-server", pflag.ExitOnError)
	cfgFile := flags.String("config", "", "config file (default: ./config.yaml or $HOME/.vispell/config.yaml)")
	flags.String("addr", ":3000", "listen address")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("dictionary", "", "word list file (default: embedded)")
	flags.String("rules", "", "rule table file (default: embedded)")
	flags.Bool("no-cache", false, "disable the result cache")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgFile, flags)
	if err != nil {
		return err
	}
	logger, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("close redis", "error", err)
		}
	}()

	srv := server.New(app.Corrector, server.Config{
		Addr:            cfg.HTTP.Addr,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		Version:         version,
		Logger:          logger,
		Settings: map[string]any{
			"max_text_length": cfg.Checker.MaxTextLength,
			"max_suggestions": cfg.Checker.MaxSuggestions,
			"cache_enabled":   cfg.Cache.Enabled,
			"cache_ttl":       cfg.Cache.TTL.Seconds(),
			"cache_max_size":  cfg.Cache.MaxSize,
			"redis_enabled":   cfg.Redis.Enabled,
			"rules":           app.Rules.Len(),
			"words":           app.Dictionary.Len(),
		},
	})
	return srv.Run(ctx)
}
