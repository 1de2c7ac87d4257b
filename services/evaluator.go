package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"listing-advisor/models"
	"listing-advisor/utils"
)

// PriceModel is a pre-trained regression model. FeatureNames may be empty
// when the model does not declare its expected columns.
type PriceModel interface {
	Predict(features []float64) (float64, error)
	FeatureNames() []string
}

var errNoModel = errors.New("no model loaded")

// EvaluateForm carries the raw evaluation inputs as typed by the user.
type EvaluateForm struct {
	Suburb       string
	MinRooms     string
	MinBathrooms string
	MinGarage    string
	MinYear      string
}

// EvaluateCriteria are validated evaluation thresholds. Nil optional
// thresholds do not filter and are imputed for the model.
type EvaluateCriteria struct {
	Suburb       string
	MinRooms     int
	MinBathrooms int
	MinGarage    *int
	MinYear      *int
}

// Criteria validates the form field by field. Suburb membership is checked
// by the Evaluator, which knows the table.
func (f EvaluateForm) Criteria() (EvaluateCriteria, error) {
	c := EvaluateCriteria{Suburb: strings.TrimSpace(f.Suburb)}
	if c.Suburb == "" {
		return c, invalid(FieldSuburb, "is required")
	}
	var err error
	if c.MinRooms, err = parseRequiredInt(FieldMinRooms, f.MinRooms, MinCount, MaxCount); err != nil {
		return c, err
	}
	if c.MinBathrooms, err = parseRequiredInt(FieldMinBathrooms, f.MinBathrooms, MinCount, MaxCount); err != nil {
		return c, err
	}
	if c.MinGarage, err = parseOptionalInt(FieldMinGarage, f.MinGarage, MinCount, MaxCount); err != nil {
		return c, err
	}
	if c.MinYear, err = parseOptionalInt(FieldMinYear, f.MinYear, MinYear, MaxYear); err != nil {
		return c, err
	}
	return c, nil
}

// Evaluator estimates a price from comparable listings and a regression model.
type Evaluator struct {
	table  *Table
	model  PriceModel
	schema FeatureSchema
	logger *utils.Logger
}

// NewEvaluator creates an Evaluator using the trained feature schema.
func NewEvaluator(table *Table, model PriceModel, logger *utils.Logger) *Evaluator {
	return &Evaluator{table: table, model: model, schema: TrainedFeatureSchema, logger: logger}
}

// WithSchema returns a copy of e encoding features with schema.
func (e *Evaluator) WithSchema(schema FeatureSchema) *Evaluator {
	cp := *e
	cp.schema = schema
	return &cp
}

// Validate checks ranges and that the suburb exists in the table.
func (e *Evaluator) Validate(c EvaluateCriteria) error {
	if c.Suburb == "" {
		return invalid(FieldSuburb, "is required")
	}
	if !e.table.HasSuburb(c.Suburb) {
		return invalid(FieldSuburb, "unknown suburb %q", c.Suburb)
	}
	if err := checkRange(FieldMinRooms, c.MinRooms, MinCount, MaxCount); err != nil {
		return err
	}
	if err := checkRange(FieldMinBathrooms, c.MinBathrooms, MinCount, MaxCount); err != nil {
		return err
	}
	if c.MinGarage != nil {
		if err := checkRange(FieldMinGarage, *c.MinGarage, MinCount, MaxCount); err != nil {
			return err
		}
	}
	if c.MinYear != nil {
		if err := checkRange(FieldMinYear, *c.MinYear, MinYear, MaxYear); err != nil {
			return err
		}
	}
	return nil
}

// Comparables returns the listings in the suburb meeting every threshold.
// Listings missing a thresholded attribute are not comparable.
func (e *Evaluator) Comparables(c EvaluateCriteria) []*models.Listing {
	return e.table.Filter(func(l *models.Listing) bool {
		if l.Suburb != c.Suburb {
			return false
		}
		if l.Rooms == nil || *l.Rooms < c.MinRooms {
			return false
		}
		if l.Bathrooms == nil || *l.Bathrooms < c.MinBathrooms {
			return false
		}
		if c.MinGarage != nil && (l.Garage == nil || *l.Garage < *c.MinGarage) {
			return false
		}
		if c.MinYear != nil && (l.YearBuilt == nil || *l.YearBuilt < *c.MinYear) {
			return false
		}
		return true
	})
}

// MeanPrice returns the arithmetic mean price, or nil for an empty set.
func MeanPrice(listings []*models.Listing) *float64 {
	if len(listings) == 0 {
		return nil
	}
	var total float64
	for _, l := range listings {
		total += l.Price
	}
	mean := total / float64(len(listings))
	return &mean
}

// FeatureInput imputes missing optional thresholds with the table's most
// frequent value.
func (e *Evaluator) FeatureInput(c EvaluateCriteria) FeatureInput {
	in := FeatureInput{Suburb: c.Suburb, Rooms: c.MinRooms, Bathrooms: c.MinBathrooms}
	if c.MinGarage != nil {
		in.Garage = *c.MinGarage
	} else {
		in.Garage = e.table.GarageMode()
	}
	if c.MinYear != nil {
		in.YearBuilt = *c.MinYear
	} else {
		in.YearBuilt = e.table.YearMode()
	}
	return in
}

// Estimate queries the model for a single price prediction.
func (e *Evaluator) Estimate(c EvaluateCriteria) (float64, error) {
	if e.model == nil {
		return 0, &ArtifactError{Op: "predict", Err: errNoModel}
	}

	row := e.schema.Encode(e.FeatureInput(c))
	features := row.Align(e.model.FeatureNames())

	price, err := e.model.Predict(features)
	if err != nil {
		return 0, &ArtifactError{Op: "predict", Err: err}
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, &ArtifactError{Op: "predict", Err: fmt.Errorf("non-finite prediction %v", price)}
	}
	return price, nil
}

// Evaluate validates c, collects comparables and their mean price, and asks
// the model for an estimate. A model failure yields no result at all.
func (e *Evaluator) Evaluate(c EvaluateCriteria) (*models.Evaluation, error) {
	if err := e.Validate(c); err != nil {
		return nil, err
	}

	comparables := e.Comparables(c)
	estimate, err := e.Estimate(c)
	if err != nil {
		e.logger.Error("[evaluate] %v", err)
		return nil, err
	}

	eval := &models.Evaluation{
		Suburb:              c.Suburb,
		Comparables:         comparables,
		MeanComparablePrice: MeanPrice(comparables),
		ModelEstimate:       estimate,
	}
	e.logger.Info("[evaluate] %s: %d comparables, model estimate %.2f",
		c.Suburb, len(comparables), estimate)
	return eval, nil
}
