package table

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// PrintOptions controls how Print renders the active range
type PrintOptions struct {
	// Delimiter joins the cells of each output row
	Delimiter string

	// NAFill is emitted in place of absent cells; "" emits nothing
	NAFill string

	// ShowRowNumbers prefixes each row with its row number and the
	// delimiter
	ShowRowNumbers bool
}

// Print writes the cross product of active rows and active columns, both
// ascending, one line per row. An empty active range produces no output
// and no error. No header row is emitted; headers, if wanted, are
// ordinary data rows loaded by the caller.
func (t *Table) Print(w io.Writer, opts PrintOptions) error {
	if err := t.ready(); err != nil {
		return err
	}

	cols := sortedCopy(t.activeCols)
	if len(cols) == 0 || len(t.activeRows) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)

	for _, rowNum := range sortedCopy(t.activeRows) {
		if opts.ShowRowNumbers {
			bw.WriteString(strconv.Itoa(rowNum))
			bw.WriteString(opts.Delimiter)
		}
		for i, c := range cols {
			if i > 0 {
				bw.WriteString(opts.Delimiter)
			}
			cell := ""
			if c >= 1 && c <= len(t.cols) {
				var present bool
				cell, present = t.cols[c-1].cells[rowNum]
				if !present {
					cell = opts.NAFill
				}
			}
			bw.WriteString(cell)
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

// Project returns the active range as header labels plus one []string
// per active row, for handing to an output formatter. Headers fall back
// to the column identifier when no label is registered; absent cells are
// empty strings.
func (t *Table) Project() ([]string, [][]string, error) {
	if err := t.ready(); err != nil {
		return nil, nil, err
	}

	cols := sortedCopy(t.activeCols)
	headers := make([]string, 0, len(cols))
	for _, c := range cols {
		h := t.reg.Label(c)
		if h == "" {
			h = t.reg.Name(c)
		}
		headers = append(headers, h)
	}

	rows := make([][]string, 0, len(t.activeRows))
	for _, rowNum := range sortedCopy(t.activeRows) {
		cells := make([]string, len(cols))
		for i, c := range cols {
			if c >= 1 && c <= len(t.cols) {
				cells[i] = t.cols[c-1].cells[rowNum]
			}
		}
		rows = append(rows, cells)
	}

	return headers, rows, nil
}
