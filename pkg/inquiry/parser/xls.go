package parser

import (
	"errors"
	"fmt"
	"os"

	"github.com/extrame/xls"
	"github.com/iipl/crmdash/pkg/inquiry/models"
)

// xlsCharset is the fallback charset for BIFF5 strings.
const xlsCharset = "utf-8"

// errNoWorkbookStream indicates an OLE file without a Workbook or Book stream.
var errNoWorkbookStream = errors.New("not an excel file: no workbook stream")

// ReadXLSSheet reads a sheet of a legacy BIFF (.xls) workbook.
// Cells are only available as display text, so they are typed with
// ParseValue. Row trimming matches ReadXLSXSheet.
func ReadXLSSheet(path, sheetName string, skip int) (table models.Table, err error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Table{}, err
	}
	defer f.Close()

	// The reader panics on some truncated records.
	defer func() {
		if r := recover(); r != nil {
			table, err = models.Table{}, fmt.Errorf("malformed xls: %v", r)
		}
	}()

	wb, err := xls.OpenReader(f, xlsCharset)
	if err != nil {
		return models.Table{}, err
	}
	if wb == nil {
		return models.Table{}, errNoWorkbookStream
	}

	var sheet *xls.WorkSheet
	for i := 0; i < wb.NumSheets(); i++ {
		if s := wb.GetSheet(i); s != nil && s.Name == sheetName {
			sheet = s
			break
		}
	}
	if sheet == nil {
		return models.Table{}, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	rows := make([][]models.Cell, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := rowAt(sheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		// LastCol is one past the last used column.
		cells := make([]models.Cell, row.LastCol())
		for c := range cells {
			cells[c] = ParseValue(row.Col(c))
		}
		rows = append(rows, cells)
	}

	return trimTable(rows, skip), nil
}

// rowAt returns row i of sheet, or nil when the row is absent from the
// sheet stream. WorkSheet.Row dereferences missing rows.
func rowAt(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}
