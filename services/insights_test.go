package services

import (
	"bytes"
	"strings"
	"testing"
)

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleListings())
	if r.TotalListings != 6 {
		t.Errorf("TotalListings: got %d, want 6", r.TotalListings)
	}
	if r.WithCoordinates != 4 {
		t.Errorf("WithCoordinates: got %d, want 4", r.WithCoordinates)
	}
	if r.ListingsBySuburb["X"] != 3 {
		t.Errorf("X count: got %d, want 3", r.ListingsBySuburb["X"])
	}
}

func TestInsightPrices(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleListings())
	// (480000+300000+700000+490000+200000+100000)/6
	wantAvg := 378333.33
	if r.AveragePrice != wantAvg {
		t.Errorf("AveragePrice: got %.2f, want %.2f", r.AveragePrice, wantAvg)
	}
	if r.MinPrice != 100000 {
		t.Errorf("MinPrice: got %.2f, want 100000", r.MinPrice)
	}
	if r.MaxPrice != 700000 {
		t.Errorf("MaxPrice: got %.2f, want 700000", r.MaxPrice)
	}
	if r.MostExpensive == nil || r.MostExpensive.ID != 3 {
		t.Errorf("MostExpensive: got %v, want listing 3", r.MostExpensive)
	}
}

func TestInsightIgnoresUnpricedListings(t *testing.T) {
	listings := sampleListings()
	listings[5].Price = 0
	r := NewInsightService(newTestLogger()).Generate(listings)
	if r.PricedListings != 5 {
		t.Errorf("PricedListings: got %d, want 5", r.PricedListings)
	}
	if r.MinPrice != 200000 {
		t.Errorf("MinPrice: got %.2f, want 200000", r.MinPrice)
	}
}

func TestTopSuburbs(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleListings())
	top := TopSuburbs(r, 2)
	if len(top) != 2 {
		t.Fatalf("len: got %d, want 2", len(top))
	}
	if top[0].Suburb != "X" || top[0].Count != 3 {
		t.Errorf("top[0]: got %+v", top[0])
	}
	// Remaining suburbs tie on one listing each; names break the tie.
	if top[1].Suburb != "W" {
		t.Errorf("top[1]: got %+v, want W", top[1])
	}
}

func TestInsightPrint(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	var buf bytes.Buffer
	svc.Print(&buf, svc.Generate(sampleListings()))
	out := buf.String()
	for _, want := range []string{"LISTING DATASET SUMMARY", "R$ 700.000,00", "Listing 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(nil)
	if r.TotalListings != 0 {
		t.Errorf("expected 0 total listings for empty input")
	}
}
