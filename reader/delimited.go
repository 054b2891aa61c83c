// Package reader provides input sources for the table engine: plain
// delimited text and Apache Parquet files.
package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// maxLineSize bounds a single input line (16MB)
const maxLineSize = 16 * 1024 * 1024

// Lines reads r into one string per input line, without trailing
// newlines. The record boundary is always the line; field splitting is
// the engine's job.
func Lines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

// File reads the named file into lines
func File(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Lines(f)
}
