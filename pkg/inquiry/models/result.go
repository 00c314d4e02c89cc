package models

// TimestampLayout is the layout of Metadata.GeneratedAt.
const TimestampLayout = "2006-01-02 15:04:05"

// Metadata summarizes an extraction run.
type Metadata struct {
	// TotalRecords is the number of records in Inquiries.
	TotalRecords int `json:"total_records"`
	// GeneratedAt is the local generation time (YYYY-MM-DD HH:MM:SS).
	GeneratedAt string `json:"generated_at"`
	// SourceFile identifies the workbook the records came from.
	SourceFile string `json:"source_file"`
}

// ExtractionResult is the document written for the dashboard.
type ExtractionResult struct {
	// Inquiries contains the extracted records in sheet order.
	Inquiries []Record `json:"inquiries"`
	// Metadata describes the run.
	Metadata Metadata `json:"metadata"`
	// Columns lists the resolved column names in header order.
	Columns []string `json:"-"`
}
