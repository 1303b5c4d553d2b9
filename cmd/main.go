package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"vispell/internal/bootstrap"
	"vispell/internal/config"
	"vispell/internal/corrector"
	"vispell/internal/logging"
)

var (
	cfgFile string
	asJSON  bool
	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vispell",
		Short:         "Vietnamese spell checker",
		Long:          "vispell finds and fixes common Vietnamese typing mistakes: missing tone marks,\nglued words, mistyped letters, capitalisation and spacing around punctuation.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or $HOME/.vispell/config.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.String("dictionary", "", "word list file (default: embedded)")
	pf.String("rules", "", "rule table file (default: embedded)")
	pf.BoolVar(&asJSON, "json", false, "print results as JSON")

	root.AddCommand(checkCmd(), suggestCmd(), statsCmd())
	return root
}

// setup builds the checker for one command invocation.
func setup(cmd *cobra.Command) (*bootstrap.App, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return bootstrap.New(cmd.Context(), cfg, logger)
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [text...]",
		Short: "Check and correct text",
		Long:  "Check the text given as arguments, or each line of standard input when no\narguments are given.",
		Example: `  vispell check "toi dang hoc tieng viet"
  cat essay.txt | vispell check --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				return checkOne(out, app.Corrector, strings.Join(args, " "))
			}
			sc := bufio.NewScanner(cmd.InOrStdin())
			sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
			for sc.Scan() {
				if strings.TrimSpace(sc.Text()) == "" {
					continue
				}
				if err := checkOne(out, app.Corrector, sc.Text()); err != nil {
					return err
				}
			}
			return sc.Err()
		},
	}
}

func checkOne(w io.Writer, sc *corrector.SpellCorrector, text string) error {
	res, err := sc.CheckText(text)
	if err != nil {
		return err
	}
	if asJSON {
		return json.NewEncoder(w).Encode(res)
	}
	if res.Error != "" {
		slog.Warn("check failed", "error", res.Error)
	}
	fmt.Fprintln(w, res.Corrected)
	for _, e := range res.Errors {
		mark := ""
		if !e.Applied {
			mark = " (overlapped)"
		}
		fmt.Fprintf(w, "  %4d  %-20s %-14s -> %s%s\n", e.Position, e.Category, e.Word, e.Corrected, mark)
	}
	fmt.Fprintf(w, "  %d error(s), confidence %.2f\n", res.ErrorCount, res.Confidence)
	return nil
}

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "suggest <word>",
		Short:   "Suggest corrections for a word",
		Example: `  vispell suggest toi`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			word := strings.Join(args, " ")
			list, err := app.Corrector.GetSuggestions(word)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(map[string]any{"word": word, "suggestions": list})
			}
			for _, s := range list {
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show loaded rules, dictionary size and settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			opts := app.Corrector.Options()
			counts := make(map[string]int)
			for _, c := range app.Rules.Categories() {
				counts[string(c)] = len(app.Rules.RulesFor(c))
			}
			stats := map[string]any{
				"rules":           app.Rules.Len(),
				"rules_by_kind":   counts,
				"words":           app.Dictionary.Len(),
				"custom_words":    len(app.Dictionary.CustomWords()),
				"max_text_length": opts.MaxTextLength,
				"max_suggestions": opts.MaxSuggestions,
				"cache":           app.Corrector.CacheStats(),
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(stats)
			}
			fmt.Fprintf(out, "rules:           %d\n", app.Rules.Len())
			for _, c := range app.Rules.Categories() {
				fmt.Fprintf(out, "  %-20s %d\n", c, counts[string(c)])
			}
			fmt.Fprintf(out, "words:           %d\n", app.Dictionary.Len())
			fmt.Fprintf(out, "custom words:    %d\n", len(app.Dictionary.CustomWords()))
			fmt.Fprintf(out, "max text length: %d\n", opts.MaxTextLength)
			fmt.Fprintf(out, "max suggestions: %d\n", opts.MaxSuggestions)
			fmt.Fprintf(out, "cache enabled:   %t\n", app.Corrector.CacheStats().Enabled)
			return nil
		},
	}
}
