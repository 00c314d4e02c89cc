package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/iipl/crmdash/internal/config"
	"github.com/iipl/crmdash/internal/refresh"
	"github.com/iipl/crmdash/pkg/inquiry"
	"github.com/iipl/crmdash/pkg/inquiry/models"
	"github.com/spf13/cobra"
)

// convertFlags mirrors the inquiry and watch configuration on the command line.
type convertFlags struct {
	outputPath string
	sheet      string
	maxRecords int
	skipRows   int
	pretty     bool
	watch      bool
	schedule   string
}

func (f *convertFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "iipl_data.json", "Output JSON file")
	cmd.Flags().StringVar(&f.sheet, "sheet", inquiry.DefaultSheet, "Sheet holding inquiries")
	cmd.Flags().IntVar(&f.maxRecords, "max-records", inquiry.DefaultMaxRecords, "Maximum number of valid rows to keep")
	cmd.Flags().IntVar(&f.skipRows, "skip-rows", inquiry.DefaultSkipRows, "Title rows above the header row")
	cmd.Flags().BoolVar(&f.pretty, "pretty", true, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Convert again whenever the workbook changes")
	cmd.Flags().StringVar(&f.schedule, "schedule", "", "Cron expression for periodic conversion")
}

// apply overrides cfg with the flags set on cmd.
func (f *convertFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Inquiry.Output = f.outputPath
	}
	if flags.Changed("sheet") {
		cfg.Inquiry.Sheet = f.sheet
	}
	if flags.Changed("max-records") {
		cfg.Inquiry.MaxRecords = f.maxRecords
	}
	if flags.Changed("skip-rows") {
		cfg.Inquiry.SkipRows = f.skipRows
	}
	if flags.Changed("pretty") {
		cfg.Inquiry.Pretty = f.pretty
	}
	if flags.Changed("watch") {
		cfg.Watch.Enabled = f.watch
	}
	if flags.Changed("schedule") {
		cfg.Watch.Schedule = f.schedule
	}
	return cfg.Validate()
}

func newConvertCmd(a *app) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert [input.xlsx]",
		Short: "Convert the inquiry sheet to JSON",
		Long: `Convert reads the inquiry sheet of the workbook (default: INQUIRY_SOURCE)
and writes the dashboard JSON document. With --watch or --schedule it keeps
running and regenerates the document until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.cfg.Inquiry.Source = args[0]
			}
			if err := flags.apply(cmd, a.cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := newRunner(a.cfg)
			result, err := runner.Run(ctx)
			if err != nil {
				return fmt.Errorf("conversion failed: %w", err)
			}
			printSummary(cmd.OutOrStdout(), result, runner.Output)

			if !a.cfg.Watch.Enabled && a.cfg.Watch.Schedule == "" {
				return nil
			}
			return keepFresh(ctx, runner, a.cfg.Watch)
		},
	}

	flags.register(cmd)
	return cmd
}

func newRunner(cfg *config.Config) *refresh.Runner {
	return &refresh.Runner{
		Source: cfg.Inquiry.Source,
		Output: cfg.Inquiry.Output,
		Options: inquiry.Options{
			Sheet:      cfg.Inquiry.Sheet,
			MaxRecords: cfg.Inquiry.MaxRecords,
			SkipRows:   cfg.Inquiry.SkipRows,
		},
		Pretty: cfg.Inquiry.Pretty,
	}
}

// keepFresh regenerates the output on change and on schedule until ctx ends.
func keepFresh(ctx context.Context, runner *refresh.Runner, cfg config.WatchConfig) error {
	if cfg.Schedule != "" {
		c, err := runner.Schedule(ctx, cfg.Schedule)
		if err != nil {
			return err
		}
		defer c.Stop()
	}

	if cfg.Enabled {
		return runner.Watch(ctx, cfg.Debounce)
	}

	<-ctx.Done()
	return nil
}

func printSummary(w io.Writer, result *models.ExtractionResult, outputPath string) {
	fmt.Fprintf(w, "✓ Converted %d inquiry records to JSON\n", result.Metadata.TotalRecords)
	fmt.Fprintf(w, "✓ Output saved to: %s\n", outputPath)
	fmt.Fprintln(w, "\nColumn names found:")
	for i, col := range result.Columns {
		fmt.Fprintf(w, "  %d. %s\n", i+1, col)
	}
}
