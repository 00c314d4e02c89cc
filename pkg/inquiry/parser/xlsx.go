package parser

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/iipl/crmdash/pkg/inquiry/models"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// isoDateLayouts are the encodings of cells stored with t="d".
var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	DateLayout,
}

// cellReader types raw cell values of one sheet.
type cellReader struct {
	f         *excelize.File
	sheetName string
	date1904  bool
	// styles caches number format classes by style index.
	styles map[int]numFmtClass
}

// ReadXLSXSheet reads a sheet into a typed table.
// Leading blank rows are dropped, then skip rows, then blank rows again, so
// the first row of the table is the header row.
func ReadXLSXSheet(f *excelize.File, sheetName string, skip int) (models.Table, error) {
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return models.Table{}, err
	}
	if idx < 0 {
		return models.Table{}, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	// Raw values keep numbers unformatted; shared strings are still resolved.
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Table{}, err
	}

	r := &cellReader{
		f:         f,
		sheetName: sheetName,
		styles:    make(map[int]numFmtClass),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}

	cells := make([][]models.Cell, len(rows))
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		typed := make([]models.Cell, len(row))
		for colIdx, raw := range row {
			cell, err := r.read(colIdx+1, rowNum, raw)
			if err != nil {
				return models.Table{}, err
			}
			typed[colIdx] = cell
		}
		cells[rowIdx] = typed
	}

	return trimTable(cells, skip), nil
}

// read converts the raw value of one cell using its stored type and style.
func (r *cellReader) read(col, row int, raw string) (models.Cell, error) {
	if raw == "" {
		return models.EmptyCell(), nil
	}

	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Cell{}, err
	}

	cellType, err := r.f.GetCellType(r.sheetName, ref)
	if err != nil {
		return models.Cell{}, err
	}

	switch cellType {
	case excelize.CellTypeBool:
		return models.BoolCell(raw == "1" || raw == "TRUE" || raw == "true"), nil
	case excelize.CellTypeDate:
		for _, layout := range isoDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return models.DateCell(t), nil
			}
		}
		return models.StringCell(raw), nil
	// CellTypeFormula is t="str", a formula whose cached result is text.
	// Formulas with numeric results carry t="n" or no type and fall through.
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return models.StringCell(raw), nil
	}

	// Unset and number types hold numeric text.
	class, err := r.numFmt(ref)
	if err != nil {
		return models.Cell{}, err
	}
	if class != fmtNumber {
		serial, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.StringCell(raw), nil
		}
		t, err := excelize.ExcelDateToTime(serial, r.date1904)
		if err != nil {
			return models.FloatCell(serial), nil
		}
		if class == fmtTimeOfDay && serial < 1 {
			return models.TimeCell(t), nil
		}
		return models.DateCell(t), nil
	}

	cell := ParseValue(raw)
	if cell.Kind == models.CellDate {
		// Numeric cells never hold date text.
		return models.StringCell(raw), nil
	}
	return cell, nil
}

// numFmt returns the number format class of the cell at ref.
func (r *cellReader) numFmt(ref string) (numFmtClass, error) {
	styleIdx, err := r.f.GetCellStyle(r.sheetName, ref)
	if err != nil {
		return fmtNumber, err
	}
	if class, ok := r.styles[styleIdx]; ok {
		return class, nil
	}

	class := fmtNumber
	if style, err := r.f.GetStyle(styleIdx); err == nil && style != nil {
		custom := ""
		if style.CustomNumFmt != nil {
			custom = *style.CustomNumFmt
		}
		class = classifyNumFmt(style.NumFmt, custom)
	}
	r.styles[styleIdx] = class
	return class, nil
}
