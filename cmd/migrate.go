package cmd

import (
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateRollback bool
	migrateDir      string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply warehouse schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(".")
		if err != nil {
			return err
		}

		dir := migrateDir
		if dir == "" {
			dir = cfg.Pipeline.MigrationsDir
		}

		db, err := goose.OpenDBWithDriver("pgx", cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to open database for migrations: %w", err)
		}
		defer db.Close()

		goose.SetTableName("schema_migrations")

		command := "up"
		if migrateRollback {
			command = "down"
		}
		if err := goose.RunContext(cmd.Context(), command, db, dir); err != nil {
			return fmt.Errorf("migration %s failed: %w", command, err)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "roll back the most recent migration instead of applying")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "", "migrations directory (defaults to pipeline.migrations_dir)")
}
