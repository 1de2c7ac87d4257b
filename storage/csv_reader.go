package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"listing-advisor/models"
)

// CSVReader loads raw listings from a flat CSV file with a header row.
type CSVReader struct {
	file   *os.File
	reader io.Reader
}

// NewCSVReader opens the dataset file at path.
func NewCSVReader(path string) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open dataset %q: %w", path, err)
	}
	return &CSVReader{file: f, reader: f}, nil
}

// NewCSVReaderFrom reads from an already open stream.
func NewCSVReaderFrom(r io.Reader) *CSVReader {
	return &CSVReader{reader: r}
}

// Load parses every data row. Row numbers start at 1 for the first data row;
// unknown columns are ignored and empty cells are left out of Fields.
func (c *CSVReader) Load() ([]*models.RawListing, error) {
	r := csv.NewReader(c.reader)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv: dataset is empty")
		}
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	columns := make([]string, len(header))
	known := 0
	for i, h := range header {
		if col, ok := CanonicalColumn(h); ok {
			columns[i] = col
			known++
		}
	}
	if known == 0 {
		return nil, fmt.Errorf("csv: header has no recognised columns: %v", header)
	}

	var listings []*models.RawListing
	for row := 1; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w", row, err)
		}

		raw := &models.RawListing{Row: row, Fields: make(map[string]string, known)}
		for i, cell := range record {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				raw.Fields[columns[i]] = v
			}
		}
		listings = append(listings, raw)
	}
	return listings, nil
}

// Close closes the underlying file when the reader owns one.
func (c *CSVReader) Close() error {
	if c.file == nil {
		return nil
	}
	return c.file.Close()
}
