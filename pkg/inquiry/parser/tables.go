package parser

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/iipl/crmdash/pkg/inquiry/models"
	"golang.org/x/text/unicode/norm"
)

// ErrMalformedInput indicates a table with no header row.
var ErrMalformedInput = errors.New("malformed input")

// ErrInvalidLimit indicates a non-positive record bound.
var ErrInvalidLimit = errors.New("record limit must be positive")

// MalformedInputError describes why a table could not be normalized.
// It matches ErrMalformedInput with errors.Is.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMalformedInput, e.Reason)
}

// Is reports whether target is ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// Normalize promotes the first row of table to column names and returns up
// to maxRecords records built from the following non-blank rows.
// Rows whose cells are all empty or whitespace are skipped and do not count
// toward maxRecords. Rows after the bound is reached are never read.
func Normalize(table models.Table, maxRecords int) ([]models.Record, []string, error) {
	if len(table.Rows) == 0 {
		return nil, nil, &MalformedInputError{Reason: "table has no header row"}
	}
	if maxRecords <= 0 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, maxRecords)
	}

	columns := resolveColumns(table.Rows[0], table.Width())
	records := make([]models.Record, 0)

	for r := 1; r < len(table.Rows); r++ {
		row := table.Rows[r]
		if rowIsBlank(row) {
			continue
		}

		record := models.NewRecord()
		for c, name := range columns {
			record.Set(name, coerce(table.At(r, c)))
		}
		records = append(records, record)

		if len(records) >= maxRecords {
			break
		}
	}

	return records, columns, nil
}

// Extract normalizes table and stamps the result metadata.
func Extract(table models.Table, maxRecords int, source string, now time.Time) (*models.ExtractionResult, error) {
	records, columns, err := Normalize(table, maxRecords)
	if err != nil {
		return nil, err
	}

	return &models.ExtractionResult{
		Inquiries: records,
		Metadata: models.Metadata{
			TotalRecords: len(records),
			GeneratedAt:  now.Format(models.TimestampLayout),
			SourceFile:   source,
		},
		Columns: columns,
	}, nil
}

// resolveColumns converts the header row into width unique column names.
// Empty header cells become "Unnamed: <index>"; repeated names get ".1",
// ".2", ... suffixes in order of appearance.
func resolveColumns(header []models.Cell, width int) []string {
	if len(header) > width {
		width = len(header)
	}

	columns := make([]string, width)
	used := make(map[string]bool, width)
	suffix := make(map[string]int, width)
	for i := 0; i < width; i++ {
		var name string
		if i < len(header) && !isBlank(header[i]) {
			name = norm.NFC.String(cellText(header[i]))
		} else {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		unique := name
		for used[unique] {
			suffix[name]++
			unique = name + "." + strconv.Itoa(suffix[name])
		}
		used[unique] = true
		columns[i] = unique
	}
	return columns
}

// rowIsBlank reports whether every cell in row is empty.
func rowIsBlank(row []models.Cell) bool {
	for _, c := range row {
		if !isBlank(c) {
			return false
		}
	}
	return true
}

// trimTable drops skip leading rows and any blank rows before the header.
func trimTable(rows [][]models.Cell, skip int) models.Table {
	rows = dropBlankPrefix(rows)
	if skip > 0 {
		if skip >= len(rows) {
			return models.Table{}
		}
		rows = rows[skip:]
	}
	return models.Table{Rows: dropBlankPrefix(rows)}
}

func dropBlankPrefix(rows [][]models.Cell) [][]models.Cell {
	for len(rows) > 0 && rowIsBlank(rows[0]) {
		rows = rows[1:]
	}
	return rows
}
