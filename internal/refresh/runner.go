// Package refresh converts the inquiry workbook to JSON on demand, on file
// change and on a schedule.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iipl/crmdash/internal/logging"
	"github.com/iipl/crmdash/pkg/inquiry"
	"github.com/iipl/crmdash/pkg/inquiry/models"
	"github.com/iipl/crmdash/pkg/inquiry/output"
)

// Runner converts Source into Output. Runs are serialized.
type Runner struct {
	// Source is the workbook path.
	Source string
	// Output is the JSON file path.
	Output string
	// Options configures extraction.
	Options inquiry.Options
	// Pretty indents the JSON output.
	Pretty bool

	mu sync.Mutex
}

// Run performs one conversion and writes the output file.
// On error the previous output file is left untouched.
func (r *Runner) Run(ctx context.Context) (*models.ExtractionResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := logging.WithFields(ctx,
		"run_id", uuid.NewString(),
		"source", r.Source,
		"sheet", r.Options.Sheet,
	)
	start := time.Now()
	logger.Debug("conversion started")

	result, err := inquiry.ExtractFile(r.Source, r.Options)
	if err != nil {
		logger.Error("conversion failed", "error", err)
		return nil, err
	}

	if err := output.WriteFile(r.Output, result, r.Pretty); err != nil {
		logger.Error("writing output failed", "output", r.Output, "error", err)
		return nil, fmt.Errorf("write %s: %w", r.Output, err)
	}

	logger.Info("conversion complete",
		"records", result.Metadata.TotalRecords,
		"columns", len(result.Columns),
		"output", r.Output,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
