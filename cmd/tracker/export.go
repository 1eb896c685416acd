package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/progress/internal/app"
)

var (
	exportUser string
	exportDir  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a user's tasks.csv and logs.csv",
	Long: `Write a user's tasks and daily logs as CSV files.

This reads the store directly and is meant for operators; end users export
from the terminal client or the HTTP API.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportUser, "user", "", "Username whose records are exported")
	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "Destination directory")
	_ = exportCmd.MarkFlagRequired("user")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, zapLogger, err := setup("")
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	a, err := app.New(cmd.Context(), cfg, zapLogger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	ctx, cancel := context.WithTimeout(cmd.Context(), a.RequestTimeout())
	defer cancel()

	if _, err := a.Profile.GetProfile(ctx, exportUser); err != nil {
		return err
	}
	files, err := a.Export.ToDir(ctx, exportUser, exportDir)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}
