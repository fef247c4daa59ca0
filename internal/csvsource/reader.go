// Package csvsource reads a delimited file into a lazy sequence of records.
//
// Each record maps a trimmed header name to the trimmed cell value for one
// row. The file is consumed front to back exactly once; there is no rewind.
// UTF-8 and UTF-16 byte order marks from spreadsheet exports are handled
// transparently.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMissingHeader indicates the input file has no header row.
var ErrMissingHeader = errors.New("csv file has no header row")

// Record is one CSV row keyed by column name. Values are whitespace-trimmed;
// a short row yields empty strings for its missing trailing columns.
type Record map[string]string

// Source is a lazy, non-restartable reader over the rows of a CSV file.
type Source struct {
	file    *os.File
	reader  *csv.Reader
	columns []string
}

// Open opens path, reads and cleans the header row, and returns a Source
// positioned at the first data row. Returns ErrMissingHeader for a file with
// no header.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}

	// BOMOverride strips a UTF-8 BOM and decodes UTF-16 inputs; plain UTF-8
	// passes through untouched.
	decoded := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	r := csv.NewReader(decoded)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		f.Close()
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	return &Source{file: f, reader: r, columns: columns}, nil
}

// Columns returns the ordered, trimmed header names. The returned slice is
// shared; callers must not modify it.
func (s *Source) Columns() []string {
	return s.columns
}

// Next returns the next record. It returns io.EOF once the file is
// exhausted, and a wrapped parse error for a malformed row.
func (s *Source) Next() (Record, error) {
	row, err := s.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading csv row: %w", err)
	}

	rec := make(Record, len(s.columns))
	for i, col := range s.columns {
		if i < len(row) {
			rec[col] = strings.TrimSpace(row[i])
		} else {
			rec[col] = ""
		}
	}
	return rec, nil
}

// Close releases the underlying file.
func (s *Source) Close() error {
	return s.file.Close()
}
