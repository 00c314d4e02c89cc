// Package models defines data structures for inquiry extraction.
package models

import "time"

// CellKind identifies which field of a Cell carries its value.
type CellKind int

const (
	// CellEmpty is an absent or null cell.
	CellEmpty CellKind = iota
	// CellInt is an integral number stored without a fractional part.
	CellInt
	// CellFloat is a floating-point number.
	CellFloat
	// CellBool is a spreadsheet boolean.
	CellBool
	// CellDate is a date or date-time value.
	CellDate
	// CellTime is a time-of-day value with no date part.
	CellTime
	// CellString is any textual value.
	CellString
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellInt:
		return "int"
	case CellFloat:
		return "float"
	case CellBool:
		return "bool"
	case CellDate:
		return "date"
	case CellTime:
		return "time"
	case CellString:
		return "string"
	default:
		return "unknown"
	}
}

// Cell is a single typed value read from a sheet.
// Only the field matching Kind is meaningful.
type Cell struct {
	// Kind selects the populated value field.
	Kind CellKind
	// Int holds CellInt values.
	Int int64
	// Float holds CellFloat values.
	Float float64
	// Bool holds CellBool values.
	Bool bool
	// Time holds CellDate and CellTime values.
	Time time.Time
	// Str holds CellString values.
	Str string
}

// EmptyCell returns an absent cell.
func EmptyCell() Cell { return Cell{Kind: CellEmpty} }

// IntCell returns an integer cell.
func IntCell(i int64) Cell { return Cell{Kind: CellInt, Int: i} }

// FloatCell returns a floating-point cell.
func FloatCell(f float64) Cell { return Cell{Kind: CellFloat, Float: f} }

// BoolCell returns a boolean cell.
func BoolCell(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }

// DateCell returns a date cell.
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }

// TimeCell returns a time-of-day cell.
func TimeCell(t time.Time) Cell { return Cell{Kind: CellTime, Time: t} }

// StringCell returns a text cell.
func StringCell(s string) Cell { return Cell{Kind: CellString, Str: s} }
