package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/progress/internal/config"
	"github.com/fastygo/progress/pkg/logger"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Personal productivity tracker",
	Long: `Track tasks and daily activity logs, and review productivity metrics.

Run "tracker serve" for the HTTP API or "tracker tui" for the terminal client.
Settings come from .env, an optional YAML file named by CONFIG_FILE, and the
environment.`,
	SilenceUsage: true,
	Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportCmd)
}

// setup loads configuration and builds the logger. logFile, when set,
// overrides LOG_FILE.
func setup(logFile string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config error: %w", err)
	}
	if logFile != "" {
		cfg.Logger.File = logFile
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		File:     cfg.Logger.File,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger error: %w", err)
	}
	return cfg, zapLogger, nil
}
