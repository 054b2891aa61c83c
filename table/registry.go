package table

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vegasq/tabrange/expr"
)

// LabelFunc supplies the raw label for a column identifier, typically of
// the form "namespace:label". The second return reports whether a label
// exists at all.
type LabelFunc func(name string) (string, bool)

// Registry maps column identifiers to their immutable column numbers and
// optional header labels. It is built once, before Load, and never
// changes for the life of the table.
type Registry struct {
	names   []string       // index c-1 holds the identifier of column c
	labels  []string       // index c-1 holds the label of column c
	numbers map[string]int // identifier -> column number
}

// BuildRegistry assigns 1-based column numbers to the identifiers in
// order and derives each label by stripping everything up to and
// including the first colon of the raw label ("ns:Age" -> "Age").
//
// A nil or empty name sequence means the name generator collaborator is
// absent; that, a duplicate, or a malformed identifier fails with
// ErrConfiguration. labels may be nil when no labels exist.
func BuildRegistry(names []string, labels LabelFunc) (*Registry, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no column names supplied", ErrConfiguration)
	}

	r := &Registry{
		names:   make([]string, 0, len(names)),
		labels:  make([]string, 0, len(names)),
		numbers: make(map[string]int, len(names)),
	}

	for _, name := range names {
		if !validIdentifier(name) {
			return nil, fmt.Errorf("%w: malformed column identifier %q", ErrConfiguration, name)
		}
		if _, dup := r.numbers[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column identifier %q", ErrConfiguration, name)
		}

		label := ""
		if labels != nil {
			if raw, ok := labels(name); ok {
				if i := strings.IndexByte(raw, ':'); i >= 0 {
					label = raw[i+1:]
				} else {
					label = raw
				}
			}
		}

		r.names = append(r.names, name)
		r.labels = append(r.labels, label)
		r.numbers[name] = len(r.names)
	}

	return r, nil
}

// validIdentifier reports whether name is a legal column identifier: an
// optional leading sentinel, then a letter or underscore, then letters,
// digits and underscores.
func validIdentifier(name string) bool {
	runes := []rune(name)
	if len(runes) > 0 && runes[0] == expr.Sentinel {
		runes = runes[1:]
	}
	if len(runes) == 0 {
		return false
	}
	if !unicode.IsLetter(runes[0]) && runes[0] != '_' {
		return false
	}
	for _, ch := range runes[1:] {
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '_' {
			return false
		}
	}
	return true
}

// Len returns the number of registered columns
func (r *Registry) Len() int {
	return len(r.names)
}

// Name returns the identifier of column number n, or "" when out of range
func (r *Registry) Name(n int) string {
	if n < 1 || n > len(r.names) {
		return ""
	}
	return r.names[n-1]
}

// Label returns the header label of column number n, or "" when out of
// range or unlabeled
func (r *Registry) Label(n int) string {
	if n < 1 || n > len(r.labels) {
		return ""
	}
	return r.labels[n-1]
}

// Resolve maps an identifier to its column number. A reference written
// with the sentinel prefix matches a name registered without it and vice
// versa, so "$age" and "age" address the same column. Resolve satisfies
// expr.Resolver.
func (r *Registry) Resolve(name string) (int, bool) {
	if n, ok := r.numbers[name]; ok {
		return n, true
	}
	if strings.HasPrefix(name, string(expr.Sentinel)) {
		if n, ok := r.numbers[name[1:]]; ok {
			return n, true
		}
	} else if n, ok := r.numbers[string(expr.Sentinel)+name]; ok {
		return n, true
	}
	return 0, false
}
