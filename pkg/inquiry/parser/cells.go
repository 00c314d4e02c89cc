package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iipl/crmdash/pkg/inquiry/models"
)

// DateLayout is the rendering of date cells in records.
const DateLayout = "2006-01-02"

// TimeOfDayLayout is the rendering of time-of-day cells in records.
const TimeOfDayLayout = "15:04:05"

// dateTimeLayout is the default string form of a date cell used as a header.
const dateTimeLayout = "2006-01-02 15:04:05"

// textDateLayouts are tried in order when typing display strings.
var textDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	dateTimeLayout,
	DateLayout,
	"2006.01.02",
}

// ParseValue types a display string.
// Returns an Int cell for integers, Float for finite decimals, Date for
// ISO-like dates, Empty for "", or a String cell holding the input.
func ParseValue(s string) models.Cell {
	if s == "" {
		return models.EmptyCell()
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.IntCell(i)
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return models.FloatCell(f)
	}
	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.DateCell(t)
		}
	}
	return models.StringCell(s)
}

// isBlank reports whether a cell counts as empty for row validity.
func isBlank(c models.Cell) bool {
	switch c.Kind {
	case models.CellEmpty:
		return true
	case models.CellString:
		return strings.TrimSpace(c.Str) == ""
	default:
		return false
	}
}

// coerce converts a cell to its JSON-compatible record value.
func coerce(c models.Cell) any {
	switch c.Kind {
	case models.CellInt:
		return c.Int
	case models.CellFloat:
		if math.IsNaN(c.Float) || math.IsInf(c.Float, 0) {
			return nil
		}
		return c.Float
	case models.CellBool:
		return c.Bool
	case models.CellDate:
		return c.Time.Format(DateLayout)
	case models.CellTime:
		return c.Time.Format(TimeOfDayLayout)
	case models.CellString:
		return c.Str
	default:
		return nil
	}
}

// cellText is the default string conversion of a cell, used for column names.
func cellText(c models.Cell) string {
	switch c.Kind {
	case models.CellInt:
		return strconv.FormatInt(c.Int, 10)
	case models.CellFloat:
		if c.Float == math.Trunc(c.Float) && !math.IsInf(c.Float, 0) {
			return strconv.FormatFloat(c.Float, 'f', 1, 64)
		}
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	case models.CellBool:
		if c.Bool {
			return "True"
		}
		return "False"
	case models.CellDate:
		return c.Time.Format(dateTimeLayout)
	case models.CellTime:
		return c.Time.Format(TimeOfDayLayout)
	case models.CellString:
		return c.Str
	default:
		return ""
	}
}
