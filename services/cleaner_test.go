package services

import (
	"testing"

	"listing-advisor/models"
	"listing-advisor/storage"
)

func TestCoercePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"$1,480,000", 1480000},
		{"1480000.0", 1480000},
		{"R$ 950000", 950000},
		{"", 0},
		{"price on request", 0},
		{"-500", 500},
		{"1.2.3", 0},
		{".", 0},
	}

	for _, tt := range tests {
		got := CoercePrice(tt.raw)
		if got != tt.want {
			t.Errorf("CoercePrice(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestCoercePriceNeverNegative(t *testing.T) {
	inputs := []string{"-1", "--2.5", "-0", "abc-", "- 3", "−4", "1e-5", "-.5"}
	for _, in := range inputs {
		if got := CoercePrice(in); got < 0 {
			t.Errorf("CoercePrice(%q) = %v; want >= 0", in, got)
		}
	}
}

func raw(row int, fields map[string]string) *models.RawListing {
	return &models.RawListing{Row: row, Fields: fields}
}

func TestCleanerTypesColumns(t *testing.T) {
	c := NewCleaner(newTestLogger())
	listings := c.Clean([]*models.RawListing{
		raw(1, map[string]string{
			storage.ColSuburb:    "  North   Melbourne ",
			storage.ColPrice:     "$1,200,000",
			storage.ColRooms:     "3.0",
			storage.ColGarage:    "2",
			storage.ColPostcode:  "3051.0",
			storage.ColLatitude:  "-37.79",
			storage.ColLongitude: "144.94",
		}),
	})

	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	l := listings[0]
	if l.ID != 1 {
		t.Errorf("ID: got %d, want 1", l.ID)
	}
	if l.Suburb != "North Melbourne" {
		t.Errorf("Suburb: got %q", l.Suburb)
	}
	if l.Price != 1200000 {
		t.Errorf("Price: got %v", l.Price)
	}
	if l.Rooms == nil || *l.Rooms != 3 {
		t.Errorf("Rooms: got %v, want 3", l.Rooms)
	}
	if l.Bathrooms != nil {
		t.Errorf("Bathrooms should be absent, got %v", *l.Bathrooms)
	}
	if l.Postcode != "3051" {
		t.Errorf("Postcode: got %q", l.Postcode)
	}
	if !l.HasCoordinates() {
		t.Error("expected coordinates")
	}
}

func TestCleanerClearsBadCoordinates(t *testing.T) {
	c := NewCleaner(newTestLogger())
	listings := c.Clean([]*models.RawListing{
		raw(1, map[string]string{storage.ColLatitude: "-37.8"}),
		raw(2, map[string]string{storage.ColLatitude: "200", storage.ColLongitude: "144.9"}),
		raw(3, map[string]string{storage.ColLatitude: "nan", storage.ColLongitude: "144.9"}),
	})

	for _, l := range listings {
		if l.Latitude != nil || l.Longitude != nil {
			t.Errorf("listing %d: coordinates should be cleared", l.ID)
		}
	}
}

func TestCleanerRejectsFractionalCounts(t *testing.T) {
	c := NewCleaner(newTestLogger())
	listings := c.Clean([]*models.RawListing{
		raw(1, map[string]string{storage.ColRooms: "2.5", storage.ColYearBuilt: "1998"}),
	})
	if listings[0].Rooms != nil {
		t.Errorf("fractional rooms should be absent, got %d", *listings[0].Rooms)
	}
	if listings[0].YearBuilt == nil || *listings[0].YearBuilt != 1998 {
		t.Errorf("YearBuilt: got %v, want 1998", listings[0].YearBuilt)
	}
}

func TestCleanerKeepsRowOrderAsIDs(t *testing.T) {
	c := NewCleaner(newTestLogger())
	listings := c.Clean([]*models.RawListing{raw(1, nil), raw(2, nil), raw(3, nil)})
	for i, l := range listings {
		if l.ID != i+1 {
			t.Errorf("listing %d: ID %d", i, l.ID)
		}
		if l.Price != 0 {
			t.Errorf("missing price should coerce to 0, got %v", l.Price)
		}
	}
}
