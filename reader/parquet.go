package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Parquet reads a parquet file and re-expresses it as delimited input
// for the engine: column names from the schema, one delimited line per
// row.
//
// It maintains both an OS file handle and a parquet file handle to
// enable proper resource cleanup.
type Parquet struct {
	file   *os.File
	pqFile *parquet.File
}

// OpenParquet opens and validates a parquet file.
//
// Example:
//
//	pq, err := reader.OpenParquet("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pq.Close()
func OpenParquet(path string) (*Parquet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Parquet{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// Columns returns the schema's column names in declaration order. This
// is the name sequence handed to the registry, so parquet column names
// must be legal column identifiers.
func (p *Parquet) Columns() []string {
	fields := p.pqFile.Schema().Fields()
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name())
	}
	return names
}

// ReadLines reads all rows and joins each row's cells with delim, in
// schema column order. Null cells become empty fields. Cell text that
// itself contains delim would shift fields, so pick a delimiter that
// cannot occur in the data.
func (p *Parquet) ReadLines(delim string) ([]string, error) {
	columns := p.Columns()

	reader := parquet.NewReader(p.pqFile)
	defer func() { _ = reader.Close() }()

	var lines []string
	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		fields := make([]string, len(columns))
		for i, col := range columns {
			fields[i] = cellText(row[col])
		}
		lines = append(lines, strings.Join(fields, delim))
	}

	return lines, nil
}

// Close closes the parquet reader and releases associated resources. It
// is safe to call Close multiple times.
func (p *Parquet) Close() error {
	if p.file != nil {
		err := p.file.Close()
		p.file = nil
		return err
	}
	return nil
}

// cellText converts a parquet value to its cell representation
func cellText(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
