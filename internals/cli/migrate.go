package cli

import (
	"github.com/spf13/cobra"

	database "programpro_backend/internals/databases"
)

func NewMigrateCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			database.ConnectDB()
			defer database.Close()
			return database.Migrate()
		},
	}
}
