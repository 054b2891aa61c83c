package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vegasq/tabrange/expr"
)

// Slice rewrites the active row set by processing tokens left to right:
// "N" adds row N, "-N" removes it, "*" resets the working set to the
// full row universe and "-*" to the empty set. Numbers outside the
// universe are harmless no-ops, an empty token list is a no-op, and the
// active column set is never touched.
func (t *Table) Slice(tokens ...string) error {
	if err := t.ready(); err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	working, err := applyTokens(t.activeRows, tokens, t.maxRow, nil)
	if err != nil {
		return err
	}
	t.activeRows = working
	return nil
}

// Select is the column-set counterpart of Slice. Tokens may also name
// columns by identifier ("-A" removes column A); each name lookup counts
// against the default substitution budget and over-budget input fails
// with expr.ErrSubstitutionLimit, leaving the range unchanged.
func (t *Table) Select(tokens ...string) error {
	if err := t.ready(); err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	lookups := 0
	resolve := func(name string) (int, error) {
		if lookups >= DefaultSubstitutionBudget {
			return 0, fmt.Errorf("%w: budget %d", expr.ErrSubstitutionLimit, DefaultSubstitutionBudget)
		}
		col, ok := t.reg.Resolve(name)
		if !ok {
			return 0, fmt.Errorf("%w: %q", expr.ErrUnknownColumn, name)
		}
		lookups++
		return col, nil
	}

	working, err := applyTokens(t.activeCols, tokens, len(t.cols), resolve)
	if err != nil {
		return err
	}
	t.activeCols = working
	return nil
}

// applyTokens runs the shared set algebra over a copy of the current
// selection and returns the resulting ascending set. The current
// selection is never modified, so a failing token leaves the caller's
// range intact.
func applyTokens(current []int, tokens []string, max int, resolve func(string) (int, error)) ([]int, error) {
	working := make(map[int]bool, len(current))
	for _, n := range current {
		working[n] = true
	}

	for _, tok := range tokens {
		remove := strings.HasPrefix(tok, "-")
		body := strings.TrimPrefix(tok, "-")

		if body == "*" {
			working = make(map[int]bool, max)
			if !remove {
				for n := 1; n <= max; n++ {
					working[n] = true
				}
			}
			continue
		}

		n, err := strconv.Atoi(body)
		if err != nil {
			if resolve == nil {
				return nil, fmt.Errorf("%w: invalid range token %q", ErrConfiguration, tok)
			}
			n, err = resolve(body)
			if err != nil {
				return nil, err
			}
		}

		if remove {
			delete(working, n)
		} else if n >= 1 && n <= max {
			working[n] = true
		}
	}

	out := make([]int, 0, len(working))
	for n := range working {
		out = append(out, n)
	}
	return sortedCopy(out), nil
}
