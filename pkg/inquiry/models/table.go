package models

// Table is a raw two-dimensional sheet region.
// The first row holds column names; rows may be ragged.
type Table struct {
	// Rows contains the table rows in sheet order.
	Rows [][]Cell
}

// Width returns the length of the longest row.
func (t Table) Width() int {
	width := 0
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// At returns the cell at row r, column c, or an empty cell when the row
// is shorter than c.
func (t Table) At(r, c int) Cell {
	if r < 0 || r >= len(t.Rows) {
		return EmptyCell()
	}
	row := t.Rows[r]
	if c < 0 || c >= len(row) {
		return EmptyCell()
	}
	return row[c]
}
