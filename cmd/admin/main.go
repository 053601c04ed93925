package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/stridehq/stride/internal/db"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "admin",
		Short: "Operational tools for stride",
	}

	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(database *dbHandle) error {
				return db.RunMigrations(database.sql, database.driver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(database *dbHandle) error {
				return db.MigrateDown(database.sql, database.driver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(database *dbHandle) error {
				return db.MigrationStatus(database.sql, database.driver)
			})
		},
	})

	return cmd
}
