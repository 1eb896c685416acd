package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fastygo/progress/internal/app"
	"github.com/fastygo/progress/internal/ui"
)

var (
	tuiLogFile   string
	tuiExportDir string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the interactive terminal client",
	Long: `Run the interactive terminal client against the configured store.

Logs go to a file so they do not draw over the screen.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "./data/tracker.log", "File that receives application logs")
	tuiCmd.Flags().StringVar(&tuiExportDir, "export-dir", ".", "Default directory for CSV exports")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, zapLogger, err := setup(tuiLogFile)
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	a, err := app.New(cmd.Context(), cfg, zapLogger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())
	a.StartBackground()

	p := tea.NewProgram(ui.New(a.Navigation(), a.RequestTimeout(), tuiExportDir), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
