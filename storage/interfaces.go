package storage

import "listing-advisor/models"

// ListingSource is the interface any dataset backend must satisfy.
type ListingSource interface {
	Load() ([]*models.RawListing, error)
	Close() error
}

// ListingWriter is the interface for persisting cleaned listings.
type ListingWriter interface {
	Write(listings []*models.Listing) error
	Close() error
}

var (
	_ ListingSource = (*CSVReader)(nil)
	_ ListingSource = (*PostgresStore)(nil)
	_ ListingWriter = (*CSVWriter)(nil)
	_ ListingWriter = (*PostgresStore)(nil)
)
