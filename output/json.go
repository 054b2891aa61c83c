package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter outputs rows as JSON Lines: one object per row, keyed by
// header
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes each row as one JSON object per line. Repeated headers
// are disambiguated with a positional suffix so no column is lost.
func (j *JSONFormatter) Format(headers []string, rows [][]string) error {
	encoder := json.NewEncoder(j.writer)
	keys := objectKeys(headers)

	for _, row := range rows {
		obj := make(map[string]string, len(keys))
		for i, k := range keys {
			if i < len(row) {
				obj[k] = row[i]
			} else {
				obj[k] = ""
			}
		}
		if err := encoder.Encode(obj); err != nil {
			return err
		}
	}

	return nil
}

// objectKeys returns one distinct JSON key per header. The first
// occurrence keeps the header verbatim; later ones get "_2", "_3", ...
func objectKeys(headers []string) []string {
	keys := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		seen[h]++
		if seen[h] == 1 {
			keys[i] = h
		} else {
			keys[i] = fmt.Sprintf("%s_%d", h, seen[h])
		}
	}
	return keys
}
