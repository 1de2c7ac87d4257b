package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"listing-advisor/models"
	"listing-advisor/utils"
)

// PostgresStore mirrors the listing table in PostgreSQL. Rows keep the
// dataset ID so that ordinals survive a round trip through the database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to accept
// pings, runs schema migrations and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

// Prices are coerced from free text and can carry any number of decimals,
// so they are stored as DOUBLE PRECISION like the other numeric columns.
const listingsSchema = `
	CREATE TABLE IF NOT EXISTS listings (
		id              INTEGER PRIMARY KEY,
		suburb          TEXT             NOT NULL DEFAULT '',
		address         TEXT             NOT NULL DEFAULT '',
		price           DOUBLE PRECISION NOT NULL DEFAULT 0,
		rooms           INTEGER,
		total_rooms     INTEGER,
		bathrooms       INTEGER,
		garage          INTEGER,
		land_size       DOUBLE PRECISION,
		building_area   DOUBLE PRECISION,
		year_built      INTEGER,
		postcode        TEXT             NOT NULL DEFAULT '',
		latitude        DOUBLE PRECISION,
		longitude       DOUBLE PRECISION,
		region_name     TEXT             NOT NULL DEFAULT '',
		region_count    INTEGER,
		predicted_price DOUBLE PRECISION,
		type            TEXT             NOT NULL DEFAULT '',
		distance        DOUBLE PRECISION
	);

	ALTER TABLE listings ALTER COLUMN price TYPE DOUBLE PRECISION;

	CREATE INDEX IF NOT EXISTS idx_listings_suburb ON listings(suburb);
	CREATE INDEX IF NOT EXISTS idx_listings_price  ON listings(price);
`

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(listingsSchema)
	return err
}

// Clear deletes all existing listings from the table.
func (ps *PostgresStore) Clear() error {
	if _, err := ps.db.Exec("DELETE FROM listings"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

const insertBatchSize = 200

// Write replaces the table contents with the given listings in a single
// transaction. A failed batch rolls back to the previous contents.
func (ps *PostgresStore) Write(listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	tx, err := ps.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM listings"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	for _, batch := range batches(listings, insertBatchSize) {
		query, args := insertStatement(batch)
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func batches(listings []*models.Listing, size int) [][]*models.Listing {
	var out [][]*models.Listing
	for i := 0; i < len(listings); i += size {
		end := i + size
		if end > len(listings) {
			end = len(listings)
		}
		out = append(out, listings[i:end])
	}
	return out
}

const listingColumnCount = 19

func insertStatement(batch []*models.Listing) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*listingColumnCount)

	for idx, l := range batch {
		base := idx * listingColumnCount
		placeholders := make([]string, listingColumnCount)
		for j := range placeholders {
			placeholders[j] = "$" + strconv.Itoa(base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			l.ID, l.Suburb, l.Address, l.Price,
			nullInt(l.Rooms), nullInt(l.TotalRooms), nullInt(l.Bathrooms), nullInt(l.Garage),
			nullFloat(l.LandSize), nullFloat(l.BuildingArea), nullInt(l.YearBuilt), l.Postcode,
			nullFloat(l.Latitude), nullFloat(l.Longitude), l.RegionName, nullInt(l.RegionCount),
			nullFloat(l.PredictedPrice), l.Type, nullFloat(l.Distance))
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (id, suburb, address, price, rooms, total_rooms, bathrooms, garage,
			land_size, building_area, year_built, postcode, latitude, longitude,
			region_name, region_count, predicted_price, type, distance)
		VALUES %s
		ON CONFLICT (id) DO NOTHING
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

// listingRow is one scanned row of the listings table.
type listingRow struct {
	id                                          int
	suburb, address, postcode, region, typ      string
	price                                       float64
	rooms, totalRooms, baths, garage, year, cnt sql.NullInt64
	land, area, lat, lon, predicted, distance   sql.NullFloat64
}

func (r *listingRow) raw() *models.RawListing {
	raw := &models.RawListing{Row: r.id, Fields: map[string]string{}}
	setString(raw, ColSuburb, r.suburb)
	setString(raw, ColAddress, r.address)
	setString(raw, ColPrice, strconv.FormatFloat(r.price, 'f', -1, 64))
	setString(raw, ColPostcode, r.postcode)
	setString(raw, ColRegionName, r.region)
	setString(raw, ColType, r.typ)
	setNullInt(raw, ColRooms, r.rooms)
	setNullInt(raw, ColTotalRooms, r.totalRooms)
	setNullInt(raw, ColBathrooms, r.baths)
	setNullInt(raw, ColGarage, r.garage)
	setNullInt(raw, ColYearBuilt, r.year)
	setNullInt(raw, ColRegionCount, r.cnt)
	setNullFloat(raw, ColLandSize, r.land)
	setNullFloat(raw, ColBuildingArea, r.area)
	setNullFloat(raw, ColLatitude, r.lat)
	setNullFloat(raw, ColLongitude, r.lon)
	setNullFloat(raw, ColPredictedPrice, r.predicted)
	setNullFloat(raw, ColDistance, r.distance)
	return raw
}

// Load reads the mirrored table back as raw rows ordered by ID. Each row
// keeps its stored ID, so ordinals match the seeded dataset.
func (ps *PostgresStore) Load() ([]*models.RawListing, error) {
	rows, err := ps.db.Query(`
		SELECT id, suburb, address, price, rooms, total_rooms, bathrooms, garage,
			land_size, building_area, year_built, postcode, latitude, longitude,
			region_name, region_count, predicted_price, type, distance
		FROM listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []*models.RawListing
	for rows.Next() {
		var r listingRow
		if err := rows.Scan(&r.id, &r.suburb, &r.address, &r.price, &r.rooms, &r.totalRooms, &r.baths, &r.garage,
			&r.land, &r.area, &r.year, &r.postcode, &r.lat, &r.lon, &r.region, &r.cnt, &r.predicted, &r.typ, &r.distance); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		listings = append(listings, r.raw())
	}
	return listings, rows.Err()
}

// Close closes the connection pool.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

// DefaultRetry returns the ping retry policy used when connecting.
func DefaultRetry(attempts int, logger *utils.Logger) *utils.RetryConfig {
	return &utils.RetryConfig{MaxAttempts: attempts, BaseDelay: 2 * time.Second, Logger: logger}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func setString(raw *models.RawListing, col, v string) {
	if v != "" {
		raw.Fields[col] = v
	}
}

func setNullInt(raw *models.RawListing, col string, v sql.NullInt64) {
	if v.Valid {
		raw.Fields[col] = strconv.FormatInt(v.Int64, 10)
	}
}

func setNullFloat(raw *models.RawListing, col string, v sql.NullFloat64) {
	if v.Valid {
		raw.Fields[col] = strconv.FormatFloat(v.Float64, 'f', -1, 64)
	}
}
