// Package inquiry extracts the inquiry sheet of a CRM workbook into records.
package inquiry

import "time"

const (
	// DefaultSheet is the sheet holding inquiries.
	DefaultSheet = "INQUIRY"
	// DefaultMaxRecords is the number of valid rows kept by default.
	// Rows after it in the workbook are scratch data.
	DefaultMaxRecords = 282
	// DefaultSkipRows is the number of title rows above the header row.
	DefaultSkipRows = 1
)

// Options configures extraction behavior.
type Options struct {
	// Sheet is the name of the sheet to read.
	Sheet string
	// MaxRecords bounds the number of records kept. Must be positive.
	MaxRecords int
	// SkipRows is the number of rows above the header row, counted from
	// the first non-blank row.
	SkipRows int
	// Now returns the generation time. If nil, time.Now is used.
	Now func() time.Time
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Sheet:      DefaultSheet,
		MaxRecords: DefaultMaxRecords,
		SkipRows:   DefaultSkipRows,
	}
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
