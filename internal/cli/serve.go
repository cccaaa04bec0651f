package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"txsignals/internal/config"
	"txsignals/internal/store"
	"txsignals/internal/web"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen   string
	Database string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the demo HTTP server.

The server exposes GET /create-user, which creates a user inside a scoped
transaction and fires the creation notifier synchronously at insert time.
Pass fail=yes to roll the transaction back after the notifier has run.

Example:
  txsignals serve --db ./demo.db
  txsignals serve --listen :9090 --config ./config.yaml --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	setupLogging(cfg.LogLevel, opts.Verbose)

	slog.Info("opening database", "path", cfg.Database)
	st, err := store.Open(cfg.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	recorder, closeRecorder, err := buildRecorder(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to set up stats backend", err)
	}
	defer closeRecorder()

	svc := buildService(cfg, st, recorder, slog.Default())

	serverOpts := []web.Option{}
	if cfg.RateLimit.Enabled {
		serverOpts = append(serverOpts, web.WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	server := web.NewServer(svc, slog.Default(), serverOpts...)

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("server starting",
		"listen", cfg.Listen,
		"db", cfg.Database,
		"notifier_delay", cfg.Notifier.Delay.String(),
	)
	fmt.Fprintln(cmd.OutOrStdout(), "Server started. Try /create-user and /create-user?fail=yes.")
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl-C to stop.")

	if err := server.Run(ctx, cfg.Listen, cfg.Notifier.Delay.Std()); err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "server error", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
