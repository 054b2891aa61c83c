package table

import (
	"fmt"

	"github.com/vegasq/tabrange/expr"
)

// DefaultSubstitutionBudget bounds identifier-to-column substitutions in
// Filter and Select. An expression needing exactly this many still
// compiles; one needing more fails with expr.ErrSubstitutionLimit.
const DefaultSubstitutionBudget = 100

// Filter keeps only the active rows for which expression evaluates true
// and uses the default substitution budget. See FilterWithBudget.
func (t *Table) Filter(expression string) error {
	return t.FilterWithBudget(expression, DefaultSubstitutionBudget)
}

// FilterWithBudget compiles expression against the registry and
// evaluates it once per active row in ascending row-number order. A row
// is retained iff the predicate is true; the active column set is never
// touched. On any error the active range is left unchanged.
//
// The expression is evaluated as written; the caller owns sanitization
// of untrusted input before handing it to Filter.
//
// budget bounds the number of identifier substitutions performed during
// compilation; exceeding it fails with expr.ErrSubstitutionLimit.
func (t *Table) FilterWithBudget(expression string, budget int) error {
	if err := t.ready(); err != nil {
		return err
	}
	if len(t.activeRows) == 0 || len(t.activeCols) == 0 {
		return nil
	}

	pred, err := expr.Compile(expression, t.reg, budget)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	retained := make([]int, 0, len(t.activeRows))
	for _, rowNum := range sortedCopy(t.activeRows) {
		match, err := pred.Eval(t.rowView(rowNum))
		if err != nil {
			return fmt.Errorf("filter: row %d: %w", rowNum, err)
		}
		if match {
			retained = append(retained, rowNum)
		}
	}

	t.activeRows = retained
	return nil
}

// FilterFunc keeps only the active rows for which pred returns true.
// pred receives the row number and the row's values keyed by column
// identifier, one entry per active column with absent cells as "".
//
// This is the injection-free alternative to Filter: no textual rewriting
// happens, so no substitution budget applies.
func (t *Table) FilterFunc(pred func(num int, values map[string]string) (bool, error)) error {
	if err := t.ready(); err != nil {
		return err
	}
	if pred == nil {
		return fmt.Errorf("%w: nil predicate", ErrConfiguration)
	}
	if len(t.activeRows) == 0 || len(t.activeCols) == 0 {
		return nil
	}

	retained := make([]int, 0, len(t.activeRows))
	for _, rowNum := range sortedCopy(t.activeRows) {
		values := make(map[string]string, len(t.activeCols))
		for _, c := range t.activeCols {
			if c < 1 || c > len(t.cols) {
				continue
			}
			values[t.reg.Name(c)] = t.cols[c-1].cells[rowNum]
		}
		match, err := pred(rowNum, values)
		if err != nil {
			return fmt.Errorf("filter: row %d: %w", rowNum, err)
		}
		if match {
			retained = append(retained, rowNum)
		}
	}

	t.activeRows = retained
	return nil
}

// rowView builds the per-row evaluation context: one entry per active
// column, keyed by column number, with absent cells as empty strings.
func (t *Table) rowView(rowNum int) expr.Row {
	row := make(expr.Row, len(t.activeCols))
	for _, c := range t.activeCols {
		if c < 1 || c > len(t.cols) {
			continue
		}
		row[c] = t.cols[c-1].cells[rowNum]
	}
	return row
}
