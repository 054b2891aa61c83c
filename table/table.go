// Package table implements an in-memory, column-oriented table with an
// active range: the subset of row and column numbers currently visible
// to printing and filtering.
//
// Row and column numbers are assigned once (columns by registry order,
// rows by load order starting at 1) and never renumbered. All range
// operations (Filter, Slice, Select, SetActiveRange) only rewrite the
// active range; the stored cells are immutable after Load.
//
// Example usage:
//
//	reg, err := table.BuildRegistry([]string{"A", "B"}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	t := table.New(reg)
//	if err := t.Load([]string{"1|x", "2|"}, "|"); err != nil {
//	    log.Fatal(err)
//	}
//	_ = t.Filter("$A > 1")
//	_ = t.Print(os.Stdout, table.PrintOptions{Delimiter: "|"})
package table

import (
	"fmt"
	"sort"
	"strings"
)

// column is the per-column store: an ordered-by-row-number mapping from
// row number to cell text. Absent cells are missing keys. The declared
// number must always match the column's position in the registry.
type column struct {
	num   int
	cells map[int]string
}

// Table owns one registry, one cell store and one active range. It is
// not safe for concurrent use; callers needing parallel reads must
// serialize access externally.
type Table struct {
	reg        *Registry
	cols       []*column
	maxRow     int
	activeRows []int
	activeCols []int
	loaded     bool
}

// New creates an empty table over the given registry. The table holds no
// rows until Load is called.
func New(reg *Registry) *Table {
	t := &Table{reg: reg}
	if reg != nil {
		t.cols = make([]*column, reg.Len())
		for i := range t.cols {
			t.cols[i] = &column{num: i + 1, cells: make(map[int]string)}
		}
	}
	return t
}

// Load populates the table from input lines, one row per line, splitting
// each line into fields by delim. Row numbers are assigned sequentially
// from 1 in input order. Field i-1 becomes the cell of column i; empty
// and missing fields are absent cells. Extra fields beyond the declared
// columns are ignored.
//
// Load may be called once per table; the active range afterwards covers
// every loaded row and every registered column.
func (t *Table) Load(lines []string, delim string) error {
	if t.reg == nil {
		return fmt.Errorf("%w: registry was never built", ErrCorruptedState)
	}
	if t.loaded {
		return fmt.Errorf("%w: table already loaded", ErrCorruptedState)
	}
	if delim == "" {
		return fmt.Errorf("%w: empty field delimiter", ErrConfiguration)
	}
	if err := t.checkColumns(); err != nil {
		return err
	}

	for _, line := range lines {
		t.maxRow++
		// strings.Split keeps trailing empty fields, so a delimiter run
		// at the end of the line still yields its final empty field.
		fields := strings.Split(line, delim)
		for c := 1; c <= len(t.cols); c++ {
			if c-1 < len(fields) && fields[c-1] != "" {
				t.cols[c-1].cells[t.maxRow] = fields[c-1]
			}
		}
	}

	t.activeRows = fullRows(t.maxRow)
	t.activeCols = fullCols(len(t.cols))
	t.loaded = true
	return nil
}

// Cell returns the text of cell (row, col) and whether it is present.
func (t *Table) Cell(row, col int) (string, bool, error) {
	if err := t.ready(); err != nil {
		return "", false, err
	}
	if col < 1 || col > len(t.cols) {
		return "", false, nil
	}
	v, ok := t.cols[col-1].cells[row]
	return v, ok, nil
}

// MaxRow returns the highest assigned row number
func (t *Table) MaxRow() int {
	return t.maxRow
}

// Registry returns the table's column registry
func (t *Table) Registry() *Registry {
	return t.reg
}

// ready verifies that the table is loaded and internally consistent.
// Every operation calls it before touching any row or column.
func (t *Table) ready() error {
	if t.reg == nil || !t.loaded {
		return fmt.Errorf("%w: no table loaded", ErrCorruptedState)
	}
	return t.checkColumns()
}

// checkColumns verifies the stored column numbers against the registry.
// A mismatch means the store was corrupted, not that the caller erred.
func (t *Table) checkColumns() error {
	if len(t.cols) != t.reg.Len() {
		return fmt.Errorf("%w: store has %d columns, registry %d", ErrCorruptedState, len(t.cols), t.reg.Len())
	}
	for i, col := range t.cols {
		if col == nil || col.num != i+1 {
			return fmt.Errorf("%w: column %d carries number %d", ErrCorruptedState, i+1, col.num)
		}
	}
	return nil
}

// fullRows returns the ascending row universe 1..maxRow
func fullRows(maxRow int) []int {
	rows := make([]int, maxRow)
	for i := range rows {
		rows[i] = i + 1
	}
	return rows
}

// fullCols returns the ascending column universe 1..n
func fullCols(n int) []int {
	cols := make([]int, n)
	for i := range cols {
		cols[i] = i + 1
	}
	return cols
}

// sortedCopy returns an ascending copy of ns
func sortedCopy(ns []int) []int {
	out := make([]int, len(ns))
	copy(out, ns)
	sort.Ints(out)
	return out
}
