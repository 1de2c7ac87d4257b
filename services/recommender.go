package services

import (
	"sort"

	"listing-advisor/models"
	"listing-advisor/utils"
)

// RecommendForm carries the raw recommendation inputs as typed by the user.
type RecommendForm struct {
	MaxPrice  string
	MinRooms  string
	MinGarage string
}

// RecommendCriteria are validated buyer constraints.
type RecommendCriteria struct {
	MaxPrice  float64
	MinRooms  int
	MinGarage int
}

// Criteria validates the form field by field.
func (f RecommendForm) Criteria() (RecommendCriteria, error) {
	var c RecommendCriteria
	var err error
	if c.MaxPrice, err = parseNonNegative(FieldMaxPrice, f.MaxPrice); err != nil {
		return c, err
	}
	if c.MinRooms, err = parseRequiredInt(FieldMinRooms, f.MinRooms, MinCount, MaxCount); err != nil {
		return c, err
	}
	if c.MinGarage, err = parseRequiredInt(FieldMinGarage, f.MinGarage, MinCount, MaxCount); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks the ranges of already typed criteria.
func (c RecommendCriteria) Validate() error {
	if c.MaxPrice < 0 {
		return invalid(FieldMaxPrice, "must not be negative")
	}
	if err := checkRange(FieldMinRooms, c.MinRooms, MinCount, MaxCount); err != nil {
		return err
	}
	return checkRange(FieldMinGarage, c.MinGarage, MinCount, MaxCount)
}

// Recommender picks the listing closest to the requested room and garage
// counts within a price ceiling.
type Recommender struct {
	table  *Table
	logger *utils.Logger
}

// NewRecommender creates a Recommender over table.
func NewRecommender(table *Table, logger *utils.Logger) *Recommender {
	return &Recommender{table: table, logger: logger}
}

// Candidates returns the listings within budget that meet the minimum counts.
// Listings missing rooms or garage never qualify.
func (r *Recommender) Candidates(c RecommendCriteria) []*models.Listing {
	return r.table.Filter(func(l *models.Listing) bool {
		return l.Price <= c.MaxPrice &&
			l.Rooms != nil && *l.Rooms >= c.MinRooms &&
			l.Garage != nil && *l.Garage >= c.MinGarage
	})
}

// Score is the distance of a candidate from the requested counts; lower is better.
func Score(l *models.Listing, c RecommendCriteria) int {
	return abs(*l.Garage-c.MinGarage) + abs(*l.Rooms-c.MinRooms)
}

// Recommend returns the best candidate, ranked by score then price, together
// with every other listing in its suburb.
func (r *Recommender) Recommend(c RecommendCriteria) (*models.Recommendation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	candidates := r.Candidates(c)
	if len(candidates) == 0 {
		r.logger.Info("[recommend] No candidates for price<=%.2f rooms>=%d garage>=%d",
			c.MaxPrice, c.MinRooms, c.MinGarage)
		return nil, ErrNoMatch
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := Score(candidates[i], c), Score(candidates[j], c)
		if si != sj {
			return si < sj
		}
		if candidates[i].Price != candidates[j].Price {
			return candidates[i].Price < candidates[j].Price
		}
		return candidates[i].ID < candidates[j].ID
	})
	best := candidates[0]

	var peers []*models.Listing
	if best.Suburb != "" {
		peers = r.table.Filter(func(l *models.Listing) bool {
			return l.Suburb == best.Suburb && l.ID != best.ID
		})
	}

	r.logger.Info("[recommend] %d candidates, best is listing %d in %s with %d neighbours",
		len(candidates), best.ID, best.Suburb, len(peers))

	return &models.Recommendation{Best: best, Peers: peers, Candidates: len(candidates)}, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
