package models

// Recommendation is the outcome of a successful neighborhood search.
type Recommendation struct {
	Best  *Listing
	Peers []*Listing
	// Candidates is the size of the filtered candidate set.
	Candidates int
}

// Evaluation is the outcome of a price evaluation. MeanComparablePrice is nil
// when no comparable listing was found.
type Evaluation struct {
	Suburb              string
	Comparables         []*Listing
	MeanComparablePrice *float64
	ModelEstimate       float64
}

// ComparableCount returns the size of the comparable set.
func (e *Evaluation) ComparableCount() int {
	return len(e.Comparables)
}

// DatasetSummary holds descriptive statistics over the loaded table.
type DatasetSummary struct {
	TotalListings    int
	PricedListings   int
	WithCoordinates  int
	AveragePrice     float64
	MinPrice         float64
	MaxPrice         float64
	MostExpensive    *Listing
	ListingsBySuburb map[string]int
}
