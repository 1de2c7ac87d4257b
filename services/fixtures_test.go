package services

import (
	"errors"
	"io"

	"listing-advisor/models"
	"listing-advisor/utils"
)

func newTestLogger() *utils.Logger {
	return utils.NewLoggerWithOptions(utils.LoggerOptions{Writer: io.Discard})
}

func intp(n int) *int { return &n }

func floatp(f float64) *float64 { return &f }

func coords(lat, lon float64) (*float64, *float64) { return &lat, &lon }

// sampleListings is a small table covering the recommendation and
// evaluation scenarios:
//
//	1 X 480k r3 g1 b2 2000 coords
//	2 X 300k r4 g2 b1 1990 coords
//	3 X 700k r3 g1 b2 2010 no coords
//	4 Y 490k r3 g1 b- -    coords
//	5 Z 200k r5 g3 b1 2000 coords
//	6 W 100k r- g1 b1 2000 no coords
func sampleListings() []*models.Listing {
	lat1, lon1 := coords(-37.80, 144.90)
	lat2, lon2 := coords(-37.82, 144.94)
	lat4, lon4 := coords(-37.70, 145.00)
	lat5, lon5 := coords(-37.60, 145.10)
	return []*models.Listing{
		{ID: 1, Suburb: "X", Address: "1 First St", Price: 480000, Rooms: intp(3), Garage: intp(1), Bathrooms: intp(2), YearBuilt: intp(2000), Latitude: lat1, Longitude: lon1},
		{ID: 2, Suburb: "X", Address: "2 Second St", Price: 300000, Rooms: intp(4), Garage: intp(2), Bathrooms: intp(1), YearBuilt: intp(1990), Latitude: lat2, Longitude: lon2},
		{ID: 3, Suburb: "X", Address: "3 Third St", Price: 700000, Rooms: intp(3), Garage: intp(1), Bathrooms: intp(2), YearBuilt: intp(2010)},
		{ID: 4, Suburb: "Y", Address: "4 Fourth St", Price: 490000, Rooms: intp(3), Garage: intp(1), Latitude: lat4, Longitude: lon4},
		{ID: 5, Suburb: "Z", Address: "5 Fifth St", Price: 200000, Rooms: intp(5), Garage: intp(3), Bathrooms: intp(1), YearBuilt: intp(2000), Latitude: lat5, Longitude: lon5},
		{ID: 6, Suburb: "W", Address: "6 Sixth St", Price: 100000, Garage: intp(1), Bathrooms: intp(1), YearBuilt: intp(2000)},
	}
}

func sampleTable() *Table {
	return NewTable(sampleListings())
}

// fakeModel records the features it was asked to score.
type fakeModel struct {
	names    []string
	estimate float64
	err      error
	got      []float64
}

func (m *fakeModel) Predict(features []float64) (float64, error) {
	m.got = append([]float64(nil), features...)
	if m.err != nil {
		return 0, m.err
	}
	return m.estimate, nil
}

func (m *fakeModel) FeatureNames() []string { return m.names }

var errModelBroken = errors.New("model broken")
