package table

// RangeToken is an opaque, exchangeable snapshot of a row/column range.
// Tokens round-trip exactly through ActiveRange and SetActiveRange;
// callers should not depend on any particular internal encoding.
type RangeToken struct {
	rows []int
	cols []int
}

// NewRangeToken builds a hand-made token from explicit row and column
// numbers. The contents are copied; the caller is responsible for their
// correctness when the token is later restored.
func NewRangeToken(rows, cols []int) RangeToken {
	return RangeToken{rows: copyInts(rows), cols: copyInts(cols)}
}

// Rows returns a copy of the token's row numbers
func (tok RangeToken) Rows() []int {
	return copyInts(tok.rows)
}

// Cols returns a copy of the token's column numbers
func (tok RangeToken) Cols() []int {
	return copyInts(tok.cols)
}

// ActiveRange returns a snapshot of the current active row and column
// sets. Fails with ErrCorruptedState when no table is loaded.
func (t *Table) ActiveRange() (RangeToken, error) {
	if err := t.ready(); err != nil {
		return RangeToken{}, err
	}
	return NewRangeToken(t.activeRows, t.activeCols), nil
}

// SetActiveRange replaces the active row and column sets with the
// token's contents verbatim. No validation against the loaded universe
// is performed; numbers outside it simply never match any stored cell.
func (t *Table) SetActiveRange(tok RangeToken) error {
	if err := t.ready(); err != nil {
		return err
	}
	t.activeRows = tok.Rows()
	t.activeCols = tok.Cols()
	return nil
}

// InactiveRange returns the complement of the active range within the
// loaded universe: rows {1..maxRow} minus the active rows, columns
// {1..maxCol} minus the active columns. A pure query; the active range
// is untouched.
func (t *Table) InactiveRange() (RangeToken, error) {
	if err := t.ready(); err != nil {
		return RangeToken{}, err
	}
	return RangeToken{
		rows: complement(t.activeRows, t.maxRow),
		cols: complement(t.activeCols, len(t.cols)),
	}, nil
}

// complement returns the ascending members of 1..max not present in ns.
// ns may hold duplicates or out-of-universe numbers (hand-built tokens
// are restored verbatim), so its length says nothing about the result's.
func complement(ns []int, max int) []int {
	member := make(map[int]bool, len(ns))
	for _, n := range ns {
		member[n] = true
	}
	out := make([]int, 0, max)
	for n := 1; n <= max; n++ {
		if !member[n] {
			out = append(out, n)
		}
	}
	return out
}

func copyInts(ns []int) []int {
	out := make([]int, len(ns))
	copy(out, ns)
	return out
}
