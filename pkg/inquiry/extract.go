package inquiry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/iipl/crmdash/pkg/inquiry/models"
	"github.com/iipl/crmdash/pkg/inquiry/parser"
	"github.com/xuri/excelize/v2"
)

// Extract builds the extraction result for an in-memory table.
// source is recorded as metadata.source_file.
func Extract(table models.Table, source string, opts Options) (*models.ExtractionResult, error) {
	result, err := parser.Extract(table, opts.MaxRecords, source, opts.now())
	if err != nil {
		return nil, NewExtractionError(opts.Sheet, "normalize", err)
	}
	return result, nil
}

// ExtractFile extracts inquiries from the workbook at path.
// The reader is chosen by file extension: .xlsx/.xlsm/.xltx/.xltm or .xls.
func ExtractFile(path string, opts Options) (*models.ExtractionResult, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	table, err := ReadTable(path, opts)
	if err != nil {
		return nil, err
	}

	return Extract(table, filepath.Base(path), opts)
}

// ReadTable loads the configured sheet of the workbook at path.
func ReadTable(path string, opts Options) (models.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return models.Table{}, NewExtractionError(opts.Sheet, "open", err)
		}
		defer f.Close()

		table, err := parser.ReadXLSXSheet(f, opts.Sheet, opts.SkipRows)
		if err != nil {
			return models.Table{}, NewExtractionError(opts.Sheet, "read", err)
		}
		return table, nil

	case ".xls":
		table, err := parser.ReadXLSSheet(path, opts.Sheet, opts.SkipRows)
		if err != nil {
			return models.Table{}, NewExtractionError(opts.Sheet, "read", err)
		}
		return table, nil

	default:
		return models.Table{}, fmt.Errorf("%w: %s", ErrInvalidFormat, filepath.Ext(path))
	}
}
