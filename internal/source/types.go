package source

import "encoding/json"

// Format is the layout of an importable figures file.
type Format int

// Supported file formats.
const (
	FormatCSV    Format = iota // header row with month (or date), revenue, expenses
	FormatJSONL                // one RawRecord per line
	FormatReport               // a financial-forecast export; its historicalData is read
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSONL:
		return "jsonl"
	default:
		return "report"
	}
}

// RawRecord is one JSONL line. Either Month (YYYY-MM) or Date (YYYY-MM-DD)
// names the period; figures may be JSON numbers or numeric strings.
type RawRecord struct {
	Month    string      `json:"month,omitempty"`
	Date     string      `json:"date,omitempty"`
	Revenue  json.Number `json:"revenue"`
	Expenses json.Number `json:"expenses"`
}

// DiscoveredFile is an importable file found while scanning.
type DiscoveredFile struct {
	Path   string
	Format Format
}
