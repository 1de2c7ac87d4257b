package models

// RawListing holds one dataset row exactly as read from the source, keyed by
// canonical column name. Absent or empty cells are simply missing from Fields.
type RawListing struct {
	Row    int
	Fields map[string]string
}

// Get returns the raw cell for a canonical column, or "" when absent.
func (r *RawListing) Get(column string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return r.Fields[column]
}

// Listing is a cleaned dataset record. ID is assigned once at load time and
// equals the 1-based source row; nil pointers mean the attribute is absent.
type Listing struct {
	ID int

	Suburb  string
	Address string
	Type    string
	Price   float64

	PredictedPrice *float64

	Rooms      *int
	TotalRooms *int
	Bathrooms  *int
	Garage     *int

	LandSize     *float64
	BuildingArea *float64
	YearBuilt    *int
	Distance     *float64
	Postcode     string

	Latitude  *float64
	Longitude *float64

	RegionName  string
	RegionCount *int
}

// HasCoordinates reports whether both latitude and longitude are present.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Point returns the listing's coordinates. Callers check HasCoordinates first.
func (l *Listing) Point() GeoPoint {
	return GeoPoint{Lat: *l.Latitude, Lon: *l.Longitude}
}

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the point lies within latitude/longitude bounds.
func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}
