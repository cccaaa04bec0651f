package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"txsignals/internal/config"
	"txsignals/internal/store"
)

// UsersOptions holds flags for the users command.
type UsersOptions struct {
	*RootOptions
	Database string
}

// NewUsersCommand creates the users command.
func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UsersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List committed users",
		Long: `List the user rows committed to the database.

Useful for verifying rollback from outside: a user created with fail=yes
never shows up here.

Example:
  txsignals users --db ./demo.db
  txsignals users --db ./demo.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsers(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")

	return cmd
}

func runUsers(opts *UsersOptions, cmd *cobra.Command) error {
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

	users, err := st.ListUsers(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list users", err)
	}

	if opts.Format == "json" {
		type userRow struct {
			ID        int64  `json:"id"`
			Name      string `json:"name"`
			CreatedAt string `json:"created_at"`
		}
		rows := make([]userRow, 0, len(users))
		for _, u := range users {
			rows = append(rows, userRow{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z")})
		}
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(rows)
	}

	if len(users) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no users")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", u.ID, u.Name, u.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	}
	return nil
}
