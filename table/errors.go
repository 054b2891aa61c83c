package table

import "errors"

var (
	// ErrConfiguration is returned when an external collaborator is
	// missing or malformed: no name generator output, duplicate or
	// invalid column identifiers, an empty field delimiter. Fatal, not
	// retryable.
	ErrConfiguration = errors.New("configuration error")

	// ErrCorruptedState is returned when an operation is called before a
	// table is loaded, when Load is called twice, or when a column's
	// stored number disagrees with its registry number. It indicates a
	// call-sequencing or internal bug, never bad data.
	ErrCorruptedState = errors.New("corrupted table state")
)
