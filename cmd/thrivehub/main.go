package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"thrivehub/internal/bootstrap"
	quotedto "thrivehub/internal/modules/quote/dto"
	"thrivehub/internal/platform/config"
	apperrors "thrivehub/internal/platform/errors"
	"thrivehub/internal/platform/logging"
)

const sparklineHeight = 4

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates rejected input (2) from storage and runtime failures (1).
func exitCode(err error) int {
	if apperrors.IsUserInput(err) {
		return 2
	}
	return 1
}

type globalFlags struct {
	dataDir    string
	configPath string
	logFile    string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "thrivehub",
		Short:         "Growth mindset journal: daily quote, reflections and progress",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data", ".", "directory holding reflections.csv and progress.json")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default <data>/thrivehub.yaml when present)")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write logs to this file (tui logs nowhere otherwise)")

	root.AddCommand(newQuoteCmd(&flags))
	root.AddCommand(newReflectCmd(&flags))
	root.AddCommand(newReflectionsCmd(&flags))
	root.AddCommand(newProgressCmd(&flags))
	root.AddCommand(newReindexCmd(&flags))
	root.AddCommand(newTUICmd(&flags))
	root.AddCommand(newServeCmd(&flags))
	return root
}

type appMode int

const (
	modeOneShot appMode = iota
	modeTUI
	modeServer
)

// loadApp resolves config and wires the app. One-shot commands log warnings
// to stderr, the TUI logs only to --log-file, and serve uses the configured
// level and format.
func loadApp(ctx context.Context, flags *globalFlags, mode appMode) (*bootstrap.App, error) {
	cfg, err := config.Load(flags.dataDir, flags.configPath)
	if err != nil {
		return nil, err
	}
	var outputs []string
	if flags.logFile != "" {
		outputs = append(outputs, flags.logFile)
	}
	var logger *zap.Logger
	switch {
	case mode == modeTUI && flags.logFile == "":
		logger = zap.NewNop()
	case mode == modeOneShot:
		logger, err = logging.New("warn", cfg.Log.Format, outputs...)
	default:
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format, outputs...)
	}
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return app, nil
}

func closeApp(app *bootstrap.App) {
	if err := app.Close(); err != nil {
		app.Logger.Warn("close app", zap.Error(err))
	}
	_ = app.Logger.Sync()
}

func newQuoteCmd(flags *globalFlags) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print today's motivational quote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, flags, modeOneShot)
			if err != nil {
				return err
			}
			defer closeApp(app)
			if all {
				quotes, err := app.QuoteCLI.List(ctx)
				if err != nil {
					return err
				}
				for _, q := range quotes {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), q)
				}
				return nil
			}
			out, err := app.QuoteCLI.Daily(ctx, &quotedto.QuoteCache{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Quote)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every configured quote")
	return cmd
}

func newReflectCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reflect <text...>",
		Short: "Append a reflection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, flags, modeOneShot)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.ReflectionCLI.Append(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved reflection at %s\n", out.Timestamp.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newReflectionsCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "reflections",
		Short: "List saved reflections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, flags, modeOneShot)
			if err != nil {
				return err
			}
			defer closeApp(app)
			entries, err := app.ReflectionCLI.List(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no reflections yet")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Text)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the most recent N reflections")
	return cmd
}

func newProgressCmd(flags *globalFlags) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Weekly progress commands"}

	progress.AddCommand(&cobra.Command{
		Use:   "save <0-100>",
		Short: "Record how much you grew this week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse progress %q: %w", args[0], apperrors.ErrInvalidInput)
			}
			ctx := cmd.Context()
			app, err := loadApp(ctx, flags, modeOneShot)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.ProgressCLI.Save(ctx, value)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %d%% for %s\n", out.Value, out.Date)
			return nil
		},
	})

	var width int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print recorded progress in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, flags, modeOneShot)
			if err != nil {
				return err
			}
			defer closeApp(app)
			entries, err := app.ProgressCLI.History(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no progress data available yet")
				return nil
			}
			w := width
			if w <= 0 {
				w = len(entries)
			}
			spark := sparkline.New(w, sparklineHeight, sparkline.WithMaxValue(100))
			for _, e := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%3d%%\n", e.Date, e.Value)
				spark.Push(float64(e.Value))
			}
			spark.Draw()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), spark.View())
			return nil
		},
	}
	historyCmd.Flags().IntVar(&width, "width", 0, "sparkline width (default one column per entry)")
	progress.AddCommand(historyCmd)
	return progress
}

func newReindexCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite index from reflections.csv and progress.json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, flags, modeOneShot)
			if err != nil {
				return err
			}
			defer closeApp(app)
			reflections, err := app.ReflectionCLI.Reindex(ctx)
			if err != nil {
				return err
			}
			progress, err := app.ProgressCLI.Reindex(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex completed: %d reflections, %d progress entries\n", reflections.Indexed, progress.Indexed)
			return nil
		},
	}
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, modeTUI)
			if err != nil {
				return err
			}
			defer closeApp(app)
			return bootstrap.RunTUI(app)
		},
	}
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app, err := loadApp(ctx, flags, modeServer)
			if err != nil {
				return err
			}
			defer closeApp(app)
			return bootstrap.RunServer(ctx, app)
		},
	}
}
