package parser

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/iipl/crmdash/pkg/inquiry/models"
	"github.com/xuri/excelize/v2"
)

// openSheet saves f to a temporary file and opens it again, so cells are
// read the way they are stored on disk.
func openSheet(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f.Close()

	opened, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	t.Cleanup(func() { opened.Close() })
	return opened
}

func TestReadXLSXSheet(t *testing.T) {
	f := excelize.NewFile()
	sheetName := "INQUIRY"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		t.Fatalf("Failed to rename sheet: %v", err)
	}

	// Title row, blank row, header, then data.
	f.SetCellValue(sheetName, "A1", "IIPL - CRM")
	f.SetCellValue(sheetName, "A3", "Client")
	f.SetCellValue(sheetName, "B3", "Qty")
	f.SetCellValue(sheetName, "C3", "Rate")
	f.SetCellValue(sheetName, "D3", "Date")
	f.SetCellValue(sheetName, "E3", "Won")
	f.SetCellValue(sheetName, "F3", "Call")

	f.SetCellValue(sheetName, "A4", "Acme")
	f.SetCellValue(sheetName, "B4", 10)
	f.SetCellValue(sheetName, "C4", 2.5)
	f.SetCellValue(sheetName, "D4", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	f.SetCellBool(sheetName, "E4", true)
	f.SetCellFloat(sheetName, "F4", 0.5, -1, 64)

	timeStyle, err := f.NewStyle(&excelize.Style{NumFmt: 20})
	if err != nil {
		t.Fatalf("Failed to create style: %v", err)
	}
	if err := f.SetCellStyle(sheetName, "F4", "F4", timeStyle); err != nil {
		t.Fatalf("Failed to set style: %v", err)
	}

	f.SetCellValue(sheetName, "A5", "2024-03-01")

	table, err := ReadXLSXSheet(openSheet(t, f), sheetName, 1)
	if err != nil {
		t.Fatalf("ReadXLSXSheet failed: %v", err)
	}

	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows, expected 3 (header + 2 data)", len(table.Rows))
	}
	if got := cellText(table.At(0, 0)); got != "Client" {
		t.Errorf("header = %q, expected Client", got)
	}

	tests := []struct {
		row, col int
		expected any
	}{
		{1, 0, "Acme"},
		{1, 1, int64(10)},
		{1, 2, 2.5},
		{1, 3, "2024-01-05"},
		{1, 4, true},
		{1, 5, "12:00:00"},
		{2, 0, "2024-03-01"}, // text stays text
		{2, 1, nil},
	}

	for _, tt := range tests {
		result := coerce(table.At(tt.row, tt.col))
		if result != tt.expected {
			t.Errorf("cell (%d,%d) = %v (type: %T), expected %v (type: %T)",
				tt.row, tt.col, result, result, tt.expected, tt.expected)
		}
	}

	if kind := table.At(2, 0).Kind; kind != models.CellString {
		t.Errorf("text cell kind = %v, expected String", kind)
	}
}

func TestReadXLSXSheet_SheetNotFound(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := ReadXLSXSheet(f, "INQUIRY", 1)
	if !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("err = %v, expected ErrSheetNotFound", err)
	}
}

func TestReadXLSXSheet_EmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	table, err := ReadXLSXSheet(f, "Sheet1", 1)
	if err != nil {
		t.Fatalf("ReadXLSXSheet failed: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Fatalf("got %d rows, expected none", len(table.Rows))
	}

	_, _, err = Normalize(table, 5)
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("err = %v, expected ErrMalformedInput", err)
	}
}
