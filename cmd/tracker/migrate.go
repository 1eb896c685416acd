package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/progress/internal/app"
	"github.com/fastygo/progress/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, zapLogger, err := setup("")
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	if cfg.Storage.Driver == config.StorageMemory {
		return fmt.Errorf("storage driver %q has no schema to migrate", cfg.Storage.Driver)
	}
	cfg.Migrations.Enabled = true

	// Opening the store applies pending migrations.
	a, err := app.New(cmd.Context(), cfg, zapLogger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", cfg.Storage.Driver)
	return a.Close(context.Background())
}
