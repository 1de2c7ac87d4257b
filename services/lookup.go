package services

import (
	"fmt"
	"strconv"
	"strings"

	"listing-advisor/models"
)

// SelectionPrefix is the label every listing carries in selection lists.
const SelectionPrefix = "Listing "

// LookupService resolves listing ordinals against the table.
type LookupService struct {
	table *Table
}

// NewLookupService creates a LookupService over table.
func NewLookupService(table *Table) *LookupService {
	return &LookupService{table: table}
}

// Options returns the selection labels for every listing, in ordinal order.
func (s *LookupService) Options() []string {
	all := s.table.All()
	opts := make([]string, len(all))
	for i, l := range all {
		opts[i] = SelectionLabel(l.ID)
	}
	return opts
}

// SelectionLabel is the display name of ordinal id.
func SelectionLabel(id int) string {
	return SelectionPrefix + strconv.Itoa(id)
}

// Select resolves a free-form selection: "12" or "Listing 12".
func (s *LookupService) Select(selection string) (*models.Listing, error) {
	sel := strings.TrimSpace(selection)
	sel = strings.TrimSpace(strings.TrimPrefix(sel, SelectionPrefix))
	ordinal, err := strconv.Atoi(sel)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", selection, ErrNotFound)
	}
	return s.Get(ordinal)
}

// Get returns the listing with the given ordinal. Ordinals are the stable
// listing IDs and need not be contiguous.
func (s *LookupService) Get(ordinal int) (*models.Listing, error) {
	l, ok := s.table.Get(ordinal)
	if !ok {
		return nil, fmt.Errorf("ordinal %d: %w", ordinal, ErrNotFound)
	}
	return l, nil
}

// DetailLine is one labelled attribute of a listing.
type DetailLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Details renders every attribute of l. Absent attributes show NotAvailable.
func Details(l *models.Listing) []DetailLine {
	return []DetailLine{
		{"Suburb", text(l.Suburb)},
		{"Address", text(l.Address)},
		{"Total rooms", optInt(l.TotalRooms)},
		{"Type", text(l.Type)},
		{"Price", FormatCurrency(l.Price)},
		{"Predicted price", FormatOptionalCurrency(l.PredictedPrice)},
		{"Distance", optFloat(l.Distance)},
		{"Postcode", text(l.Postcode)},
		{"Rooms", optInt(l.Rooms)},
		{"Bathrooms", optInt(l.Bathrooms)},
		{"Garage", optInt(l.Garage)},
		{"Land size", optFloat(l.LandSize)},
		{"Building area", optFloat(l.BuildingArea)},
		{"Year built", optInt(l.YearBuilt)},
		{"Latitude", optFloat(l.Latitude)},
		{"Longitude", optFloat(l.Longitude)},
		{"Region", text(l.RegionName)},
		{"Listings in region", optInt(l.RegionCount)},
	}
}

func text(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func optInt(v *int) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.Itoa(*v)
}

func optFloat(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
