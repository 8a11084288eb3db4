package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordpick/internal/database"
	"github.com/at-ishikawa/wordpick/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the mysql history backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			applied, err := database.Migrate(cmd.Context(), db, schemas.Migrations)
			if err != nil {
				return fmt.Errorf("database.Migrate > %w", err)
			}
			if len(applied) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "The database is up to date")
			} else {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migrations\n", len(applied))
			}
			if err != nil {
				return fmt.Errorf("failed to write to stdout: %w", err)
			}
			return nil
		},
	}
}
