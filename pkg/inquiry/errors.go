package inquiry

import (
	"errors"
	"fmt"

	"github.com/iipl/crmdash/pkg/inquiry/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a supported workbook format.
var ErrInvalidFormat = errors.New("unsupported workbook format")

// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrMalformedInput indicates the sheet has no header row.
var ErrMalformedInput = parser.ErrMalformedInput

// MalformedInputError describes a sheet that could not be normalized.
type MalformedInputError = parser.MalformedInputError

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "open", "read", "normalize"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
