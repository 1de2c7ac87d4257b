package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"listing-advisor/models"
)

// CSVWriter writes cleaned listings to a CSV file using canonical columns,
// preceded by an id column. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"id"}, Columns...)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per listing. Absent attributes are written as empty cells.
func (c *CSVWriter) Write(listings []*models.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range listings {
		if err := c.writer.Write(append([]string{strconv.Itoa(l.ID)}, ListingRow(l)...)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// ListingRow renders a listing in Columns order.
func ListingRow(l *models.Listing) []string {
	return []string{
		l.Suburb,
		l.Address,
		strconv.FormatFloat(l.Price, 'f', -1, 64),
		optInt(l.Rooms),
		optInt(l.TotalRooms),
		optInt(l.Bathrooms),
		optInt(l.Garage),
		optFloat(l.LandSize),
		optFloat(l.BuildingArea),
		optInt(l.YearBuilt),
		l.Postcode,
		optFloat(l.Latitude),
		optFloat(l.Longitude),
		l.RegionName,
		optInt(l.RegionCount),
		optFloat(l.PredictedPrice),
		l.Type,
		optFloat(l.Distance),
	}
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
