package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/agentic-research/ketl/internal/config"
	"github.com/agentic-research/ketl/internal/render"
	"github.com/agentic-research/ketl/internal/trace"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type configKey struct{}

// NewRootCmd builds the ketl command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "ketl",
		Short: "ketl: flatten JSON documents into rows with column definitions",
		Long: `ketl turns nested JSON into a table. Each line of a definition file
declares one column and the path that fills it:

  Column Symbol = {"Global Quote"}.{"01. symbol"}
  Column Field  = NodeName.{"Global Quote"}.*

Wildcards fan out into one row per member; shorter columns repeat their
first value.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg)
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./ketl.yaml)")
	pf.BoolP("verbose", "v", false, "Verbose logging")
	pf.Bool("trace", false, "Log every parse, resolve and row event")
	pf.Int("concurrency", 0, "Columns resolved in parallel (0 = GOMAXPROCS)")
	pf.StringP("output", "o", "", "Output format (table|csv|markdown|html|json)")
	pf.String("sqlite-source", "", "Read the document from a SQLite database of (id, record) rows")
	pf.String("sqlite-query", "", "Query selecting (id, record) rows from --sqlite-source")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(render.Formats))
		for i, f := range render.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newFlattenCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newExplainCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		render.NewNotifier(os.Stderr).Error(err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose || cfg.Trace {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{Output: config.DefaultOutput}
}

func getLogger(cmd *cobra.Command) *slog.Logger {
	return config.GetLogger(cmd.Context())
}

func tracerFor(cmd *cobra.Command, cfg *config.Config) trace.Tracer {
	if !cfg.Trace {
		return trace.Nop
	}
	return trace.NewLogger(getLogger(cmd))
}

func notifier(cmd *cobra.Command) *render.Notifier {
	return render.NewNotifier(cmd.ErrOrStderr())
}

func errNoInput(what string) error {
	return fmt.Errorf("missing %s", what)
}
