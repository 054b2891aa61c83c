// Package output provides formatters for the projected active range.
//
// Formatters consume what table.Project returns: header labels plus one
// cell slice per visible row.
//
// Currently supported formats:
//   - CSV: comma-separated values with header row
//   - JSON Lines: one JSON object per row
//   - Table: aligned columns with borders, for terminals
package output

import "io"

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format writes headers and rows in the formatter's specific format
	Format(headers []string, rows [][]string) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}
