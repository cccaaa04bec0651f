package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"txsignals/internal/config"
	"txsignals/internal/store"
	"txsignals/internal/user"
	"txsignals/internal/web"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Database string
	Fail     bool
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Run one creation scenario without HTTP",
		Long: `Run a single user-creation scenario directly against the database.

The full sequence runs inline: insert, synchronous notifier (including its
blocking delay), then commit - or rollback with --fail. Prints the same
response text the HTTP endpoint returns.

Example:
  txsignals create --db ./demo.db
  txsignals create --db ./demo.db --fail`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")
	cmd.Flags().BoolVar(&opts.Fail, "fail", false, "raise the simulated failure to roll the transaction back")

	return cmd
}

func runCreate(opts *CreateOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	setupLogging(cfg.LogLevel, opts.Verbose)

	st, err := store.Open(cfg.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	recorder, closeRecorder, err := buildRecorder(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to set up stats backend", err)
	}
	defer closeRecorder()

	svc := buildService(cfg, st, recorder, nil)

	token := web.UUIDv7Generator{}.Generate()
	created, resp, err := svc.Create(cmd.Context(), token, opts.Fail)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if err != nil {
		if ferr := formatter.Failure(resp, err.Error()); ferr != nil {
			return WrapExitError(ExitCommandError, "failed to write output", ferr)
		}
		// A rollback the caller asked for is a successful demonstration.
		if opts.Fail && errors.Is(err, user.ErrSimulatedFailure) {
			return nil
		}
		return WrapExitError(ExitFailure, "transaction rolled back", err)
	}

	var payload any = resp
	if opts.Format == "json" {
		payload = map[string]any{
			"response": resp,
			"user_id":  created.ID,
			"name":     created.Name,
		}
	}
	if ferr := formatter.Success(payload); ferr != nil {
		return WrapExitError(ExitCommandError, "failed to write output", ferr)
	}
	return nil
}
