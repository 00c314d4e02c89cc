package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/iipl/crmdash/internal/config"
	"github.com/iipl/crmdash/internal/web"
	"github.com/spf13/cobra"
)

type serveFlags struct {
	dir     string
	port    int
	open    bool
	convert bool
	watch   bool
}

func (f *serveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "dir", ".", "Directory to serve")
	cmd.Flags().IntVar(&f.port, "port", 8000, "Port to listen on")
	cmd.Flags().BoolVar(&f.open, "open", true, "Open the dashboard in the default browser")
	cmd.Flags().BoolVar(&f.convert, "convert", false, "Convert the workbook before serving")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "With --convert, convert again whenever the workbook changes")
}

func (f *serveFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Server.Dir = f.dir
	}
	if flags.Changed("port") {
		cfg.Server.Port = f.port
	}
	if flags.Changed("open") {
		cfg.Server.OpenBrowser = f.open
	}
	if flags.Changed("watch") {
		cfg.Watch.Enabled = f.watch
	}
	return cfg.Validate()
}

func newServeCmd(a *app) *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard directory over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, a.cfg); err != nil {
				return err
			}
			cfg := a.cfg

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if flags.convert {
				runner := newRunner(cfg)
				if _, err := runner.Run(ctx); err != nil {
					// The previous document is still served.
					slog.Warn("initial conversion failed", "error", err)
				}
				if cfg.Watch.Enabled || cfg.Watch.Schedule != "" {
					go func() {
						if err := keepFresh(ctx, runner, cfg.Watch); err != nil {
							slog.Error("refresh stopped", "error", err)
						}
					}()
				}
			}

			return serve(ctx, cmd.OutOrStdout(), cfg.Server)
		},
	}

	flags.register(cmd)
	return cmd
}

// serve runs the dashboard server until ctx is cancelled.
func serve(ctx context.Context, out io.Writer, cfg config.ServerConfig) error {
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("cannot serve %s: not a directory", dir)
	}

	srv := web.NewServer(web.Options{
		Addr:        cfg.Addr(),
		Dir:         dir,
		ReadTimeout: cfg.ReadTimeout,
		IdleTimeout: cfg.IdleTimeout,
	})

	printBanner(out, cfg, dir)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	if cfg.OpenBrowser {
		web.OpenBrowser(ctx, cfg.URL(), cfg.BrowserDelay)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	fmt.Fprintln(out, "\n✓ Server stopped")
	return <-errCh
}

func printBanner(w io.Writer, cfg config.ServerConfig, dir string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "IIPL CRM Dashboard Server")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\n✓ Server starting on port %d...\n", cfg.Port)
	fmt.Fprintf(w, "✓ Dashboard URL: %s\n", cfg.URL())
	fmt.Fprintf(w, "\nServing files from: %s\n", dir)
	if cfg.OpenBrowser {
		fmt.Fprintln(w, "\nOpening dashboard in your default browser...")
	}
	fmt.Fprintln(w, "\nPress Ctrl+C to stop the server")
	fmt.Fprintln(w, rule)
}
