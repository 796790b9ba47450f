// pkg/dataset/csv.go
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrSourceNotFound is returned when the input dataset does not exist
	ErrSourceNotFound = errors.New("source not found")
	// ErrMissingHeader is returned when the input dataset has no header row
	ErrMissingHeader = errors.New("missing header row")
)

// Table is a header plus raw text rows.
// A blank line in the source is kept as an empty row.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable loads a comma-delimited dataset with a required header row.
// Rows keep whatever field count they have in the file.
func ReadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads a table from any CSV stream. Quotes are parsed leniently, and
// blank lines, which encoding/csv skips, are restored as empty rows.
func Decode(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	table := &Table{Header: header}
	nextLine := recordEndLine(reader, header) + 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}

		startLine, _ := reader.FieldPos(0)
		table.appendBlankRows(startLine - nextLine)
		table.Rows = append(table.Rows, row)
		nextLine = recordEndLine(reader, row) + 1
	}
	table.appendBlankRows(countLines(data) - (nextLine - 1))

	return table, nil
}

// recordEndLine returns the last line occupied by the record just read
func recordEndLine(reader *csv.Reader, record []string) int {
	last := len(record) - 1
	line, _ := reader.FieldPos(last)
	return line + strings.Count(record[last], "\n")
}

// countLines counts lines the way a line reader sees them, with or without
// a trailing newline
func countLines(data []byte) int {
	n := bytes.Count(data, []byte("\n"))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

func (t *Table) appendBlankRows(n int) {
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, []string{})
	}
}

// WriteTable writes the header and every row to path, replacing any existing file
func WriteTable(path string, table *Table) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close dataset %s: %w", path, cerr)
		}
	}()

	return Encode(file, table)
}

// Encode writes a table as CSV
func Encode(w io.Writer, table *Table) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	return nil
}
