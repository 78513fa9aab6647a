package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds flags shared by every command.
type RootOptions struct {
	SkipMigrations bool
	SkipSeeds      bool
}

// NewRootCommand builds the programpro command. Without a subcommand it
// serves the API.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "programpro",
		Short:         "Program Pro - church worship program backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.SkipMigrations, "skip-migrations", false, "do not apply migrations at startup")
	cmd.PersistentFlags().BoolVar(&opts.SkipSeeds, "skip-seeds", false, "do not seed the admin user at startup")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
