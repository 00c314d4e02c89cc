// Package main provides the CLI entry point for crmdash.
package main

import (
	"log/slog"
	"os"
	"sync"

	"github.com/iipl/crmdash/internal/config"
	"github.com/iipl/crmdash/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app carries state shared by subcommands after the root pre-run.
type app struct {
	cfg *config.Config

	// setupLog installs the default logger and returns its flush function.
	setupLog  func(level, format, seqURL string) func()
	closeLog  func()
	closeOnce sync.Once
}

func newApp() *app {
	return &app{
		setupLog: logging.Setup,
		closeLog: func() {},
	}
}

func main() {
	if err := execute(newApp(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// execute runs the command line in args. The log sink is flushed before
// returning, including when the command fails.
func execute(a *app, args []string) error {
	defer a.close()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// close flushes the log sink once.
func (a *app) close() {
	a.closeOnce.Do(func() { a.closeLog() })
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crmdash",
		Short: "Convert the CRM inquiry sheet to JSON and serve the dashboard",
		Long: `crmdash reads the INQUIRY sheet of the CRM workbook, writes the
records the dashboard reads (iipl_data.json), and serves the dashboard
directory over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.AddCommand(newConvertCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	return rootCmd
}

// setup loads .env, the environment configuration and the logger.
func (a *app) setup() error {
	// A missing .env file is normal; the environment still applies.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.closeLog = a.setupLog(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.SeqURL)

	if envErr == nil {
		slog.Debug("loaded .env file")
	}
	slog.Debug("configuration loaded", "config", cfg.String())
	return nil
}
