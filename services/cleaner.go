package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"listing-advisor/models"
	"listing-advisor/storage"
	"listing-advisor/utils"
)

// priceStripRegexp matches everything a price cell may carry besides digits
// and the decimal point: currency symbols, group separators, signs, text.
var priceStripRegexp = regexp.MustCompile(`[^\d.]`)

// Cleaner transforms RawListings into typed Listings.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean converts raw rows into listings. Each listing's ID is the raw row
// number, so ordinals stay stable however the table is later viewed.
func (c *Cleaner) Clean(raw []*models.RawListing) []*models.Listing {
	result := make([]*models.Listing, 0, len(raw))
	droppedCoords := 0

	for _, r := range raw {
		l := &models.Listing{
			ID:      r.Row,
			Suburb:  normaliseText(r.Get(storage.ColSuburb)),
			Address: normaliseText(r.Get(storage.ColAddress)),
			Type:    normaliseText(r.Get(storage.ColType)),
			Price:   CoercePrice(r.Get(storage.ColPrice)),

			PredictedPrice: c.parseFloat(r, storage.ColPredictedPrice),

			Rooms:      c.parseInt(r, storage.ColRooms),
			TotalRooms: c.parseInt(r, storage.ColTotalRooms),
			Bathrooms:  c.parseInt(r, storage.ColBathrooms),
			Garage:     c.parseInt(r, storage.ColGarage),

			LandSize:     c.parseFloat(r, storage.ColLandSize),
			BuildingArea: c.parseFloat(r, storage.ColBuildingArea),
			YearBuilt:    c.parseInt(r, storage.ColYearBuilt),
			Distance:     c.parseFloat(r, storage.ColDistance),
			Postcode:     normalisePostcode(r.Get(storage.ColPostcode)),

			Latitude:  c.parseFloat(r, storage.ColLatitude),
			Longitude: c.parseFloat(r, storage.ColLongitude),

			RegionName:  normaliseText(r.Get(storage.ColRegionName)),
			RegionCount: c.parseInt(r, storage.ColRegionCount),
		}

		if l.Latitude != nil || l.Longitude != nil {
			if !l.HasCoordinates() || !l.Point().Valid() {
				c.logger.Debug("[cleaner] Row %d has incomplete or out-of-range coordinates, clearing them", r.Row)
				l.Latitude, l.Longitude = nil, nil
				droppedCoords++
			}
		}

		result = append(result, l)
	}

	if droppedCoords > 0 {
		c.logger.Warn("[cleaner] Cleared coordinates on %d listings", droppedCoords)
	}
	c.logger.Info("[cleaner] Loaded %d listings", len(result))
	return result
}

// CoercePrice strips every character except digits and the decimal point and
// parses the remainder. Empty or unparseable remainders yield 0, so the
// result is never negative.
func CoercePrice(raw string) float64 {
	cleaned := priceStripRegexp.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (c *Cleaner) parseFloat(r *models.RawListing, col string) *float64 {
	raw := r.Get(col)
	if raw == "" || strings.EqualFold(raw, "nan") {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.logger.Debug("[cleaner] Row %d: unparseable %s %q", r.Row, col, raw)
		return nil
	}
	return &v
}

// parseInt accepts integral float spellings such as "3.0".
func (c *Cleaner) parseInt(r *models.RawListing, col string) *int {
	f := c.parseFloat(r, col)
	if f == nil {
		return nil
	}
	if *f != math.Trunc(*f) {
		c.logger.Debug("[cleaner] Row %d: non-integral %s %v", r.Row, col, *f)
		return nil
	}
	n := int(*f)
	return &n
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

// normalisePostcode drops the ".0" suffix float-typed exports leave behind.
func normalisePostcode(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSuffix(s, ".0")
}
