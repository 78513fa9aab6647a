package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	database "programpro_backend/internals/databases"
	"programpro_backend/internals/seeds"
)

func NewSeedCommand(_ *RootOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default church and admin user when missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			database.ConnectDB()
			defer database.Close()

			seed := seeds.AdminFromEnv()
			if username != "" {
				seed.Username = username
			}
			if password != "" {
				seed.Password = password
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			_, err := seeds.EnsureAdminUser(ctx, database.DB, seed)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin username (default ADMIN_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (default ADMIN_PASSWORD)")
	return cmd
}
