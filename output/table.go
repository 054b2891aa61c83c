package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter outputs rows as an aligned text table for terminals
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new aligned-table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders headers and rows as an aligned table
func (t *TableFormatter) Format(headers []string, rows [][]string) error {
	tw := tablewriter.NewWriter(t.writer)
	tw.SetHeader(headers)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.AppendBulk(rows)
	tw.Render()
	return nil
}
