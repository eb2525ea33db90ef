package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caixinha/caixinha/internal/cli"
	"github.com/caixinha/caixinha/internal/config"
	"github.com/caixinha/caixinha/internal/storage"
)

func migrateCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			dbPath := viper.GetString("database.path")
			if dbPath == "" {
				dbPath = config.DefaultDatabasePath()
			}
			dbPath = config.ExpandPath(dbPath)

			store, err := storage.NewSQLiteStorage(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			if status {
				version, err := store.SchemaVersion(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Schema version: %d (latest: %d)\n",
					version, storage.ExpectedSchemaVersion)
				if version < storage.ExpectedSchemaVersion {
					fmt.Println(cli.FormatWarning("Migrations pending — run `caixinha migrate`"))
				}
				return nil
			}

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Println(cli.FormatSuccess("Database schema is up to date"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "show schema version without migrating")
	return cmd
}
