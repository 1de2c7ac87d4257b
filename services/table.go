package services

import (
	"sort"

	"listing-advisor/models"
)

// Table is the in-memory listing dataset. It is built once and never
// mutated; every accessor returns a fresh slice.
type Table struct {
	listings []*models.Listing
	byID     map[int]*models.Listing
	suburbs  []string
}

// NewTable indexes the given listings, keeping their order.
func NewTable(listings []*models.Listing) *Table {
	t := &Table{
		listings: append([]*models.Listing(nil), listings...),
		byID:     make(map[int]*models.Listing, len(listings)),
	}

	seen := make(map[string]struct{})
	for _, l := range t.listings {
		t.byID[l.ID] = l
		if l.Suburb == "" {
			continue
		}
		if _, ok := seen[l.Suburb]; !ok {
			seen[l.Suburb] = struct{}{}
			t.suburbs = append(t.suburbs, l.Suburb)
		}
	}
	sort.Strings(t.suburbs)
	return t
}

// Len returns the number of listings.
func (t *Table) Len() int {
	return len(t.listings)
}

// Get returns the listing with the given ID.
func (t *Table) Get(id int) (*models.Listing, bool) {
	l, ok := t.byID[id]
	return l, ok
}

// All returns every listing in load order.
func (t *Table) All() []*models.Listing {
	return append([]*models.Listing(nil), t.listings...)
}

// Filter returns the listings for which keep reports true.
func (t *Table) Filter(keep func(*models.Listing) bool) []*models.Listing {
	var out []*models.Listing
	for _, l := range t.listings {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// Suburbs returns the distinct non-empty suburbs, sorted.
func (t *Table) Suburbs() []string {
	return append([]string(nil), t.suburbs...)
}

// HasSuburb reports whether any listing is in the given suburb.
func (t *Table) HasSuburb(suburb string) bool {
	i := sort.SearchStrings(t.suburbs, suburb)
	return i < len(t.suburbs) && t.suburbs[i] == suburb
}

// GarageMode returns the most frequent garage count.
func (t *Table) GarageMode() int {
	return t.intMode(func(l *models.Listing) *int { return l.Garage })
}

// YearMode returns the most frequent construction year.
func (t *Table) YearMode() int {
	return t.intMode(func(l *models.Listing) *int { return l.YearBuilt })
}

// intMode returns the most frequent present value, preferring the smallest
// on ties. A column with no values yields 0.
func (t *Table) intMode(attr func(*models.Listing) *int) int {
	counts := make(map[int]int)
	for _, l := range t.listings {
		if v := attr(l); v != nil {
			counts[*v]++
		}
	}

	mode, best := 0, 0
	for v, n := range counts {
		if n > best || (n == best && v < mode) {
			mode, best = v, n
		}
	}
	return mode
}
