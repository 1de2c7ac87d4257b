package services

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestEvaluateMeanOfComparables(t *testing.T) {
	model := &fakeModel{estimate: 510000}
	e := NewEvaluator(sampleTable(), model, newTestLogger())

	eval, err := e.Evaluate(EvaluateCriteria{Suburb: "X", MinRooms: 3, MinBathrooms: 1})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if eval.ComparableCount() != 3 {
		t.Fatalf("ComparableCount: got %d, want 3", eval.ComparableCount())
	}
	want := (480000.0 + 300000.0 + 700000.0) / 3
	if eval.MeanComparablePrice == nil || math.Abs(*eval.MeanComparablePrice-want) > 1e-6 {
		t.Errorf("MeanComparablePrice: got %v, want %.2f", eval.MeanComparablePrice, want)
	}
	if eval.ModelEstimate != 510000 {
		t.Errorf("ModelEstimate: got %v", eval.ModelEstimate)
	}
}

func TestEvaluateOptionalThresholds(t *testing.T) {
	e := NewEvaluator(sampleTable(), &fakeModel{estimate: 1}, newTestLogger())

	garage := 2
	got := e.Comparables(EvaluateCriteria{Suburb: "X", MinRooms: 0, MinBathrooms: 0, MinGarage: &garage})
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("garage>=2: got %d comparables", len(got))
	}

	year := 2005
	got = e.Comparables(EvaluateCriteria{Suburb: "X", MinRooms: 0, MinBathrooms: 0, MinYear: &year})
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("year>=2005: got %d comparables", len(got))
	}
}

func TestEvaluateEmptyComparablesStillEstimates(t *testing.T) {
	model := &fakeModel{estimate: 432100}
	e := NewEvaluator(sampleTable(), model, newTestLogger())

	eval, err := e.Evaluate(EvaluateCriteria{Suburb: "Y", MinRooms: 2, MinBathrooms: 1})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if eval.MeanComparablePrice != nil {
		t.Errorf("MeanComparablePrice should be nil, got %v", *eval.MeanComparablePrice)
	}
	if eval.ComparableCount() != 0 {
		t.Errorf("ComparableCount: got %d", eval.ComparableCount())
	}
	if eval.ModelEstimate != 432100 {
		t.Errorf("ModelEstimate: got %v", eval.ModelEstimate)
	}
}

func TestEvaluateImputesModes(t *testing.T) {
	model := &fakeModel{
		estimate: 1,
		names:    []string{"Quartos", "Banheiros", "Garagem", "Ano de Construção", "Subúrbio_W", "Subúrbio_X", "Subúrbio_Y"},
	}
	e := NewEvaluator(sampleTable(), model, newTestLogger())

	if _, err := e.Evaluate(EvaluateCriteria{Suburb: "X", MinRooms: 3, MinBathrooms: 2}); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	want := []float64{3, 2, 1, 2000, 0, 1, 0}
	if !reflect.DeepEqual(model.got, want) {
		t.Errorf("features: got %v, want %v", model.got, want)
	}
}

func TestEvaluateUsesSuppliedOptionals(t *testing.T) {
	model := &fakeModel{estimate: 1}
	e := NewEvaluator(sampleTable(), model, newTestLogger())
	garage, year := 4, 1950

	if _, err := e.Evaluate(EvaluateCriteria{Suburb: "Z", MinRooms: 1, MinBathrooms: 1, MinGarage: &garage, MinYear: &year}); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	// No declared feature list: the encoded order is used.
	want := []float64{1, 1, 4, 1950, 1}
	if !reflect.DeepEqual(model.got, want) {
		t.Errorf("features: got %v, want %v", model.got, want)
	}
}

func TestEvaluateModelFailure(t *testing.T) {
	e := NewEvaluator(sampleTable(), &fakeModel{err: errModelBroken}, newTestLogger())

	eval, err := e.Evaluate(EvaluateCriteria{Suburb: "X", MinRooms: 1, MinBathrooms: 1})
	if eval != nil {
		t.Error("no partial result expected on model failure")
	}
	var ae *ArtifactError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ArtifactError, got %v", err)
	}
	if !errors.Is(err, errModelBroken) {
		t.Errorf("expected wrapped model error, got %v", err)
	}
}

func TestEvaluateRejectsNonFinitePrediction(t *testing.T) {
	e := NewEvaluator(sampleTable(), &fakeModel{estimate: math.NaN()}, newTestLogger())
	_, err := e.Evaluate(EvaluateCriteria{Suburb: "X", MinRooms: 1, MinBathrooms: 1})
	var ae *ArtifactError
	if !errors.As(err, &ae) {
		t.Errorf("expected ArtifactError, got %v", err)
	}
}

func TestEvaluateWithoutModel(t *testing.T) {
	e := NewEvaluator(sampleTable(), nil, newTestLogger())
	_, err := e.Evaluate(EvaluateCriteria{Suburb: "X", MinRooms: 1, MinBathrooms: 1})
	var ae *ArtifactError
	if !errors.As(err, &ae) {
		t.Errorf("expected ArtifactError, got %v", err)
	}
}

func TestEvaluateValidation(t *testing.T) {
	e := NewEvaluator(sampleTable(), &fakeModel{estimate: 1}, newTestLogger())
	over := 31
	early := 1899

	tests := []struct {
		name     string
		criteria EvaluateCriteria
		field    string
	}{
		{"unknown suburb", EvaluateCriteria{Suburb: "Atlantis", MinRooms: 1, MinBathrooms: 1}, FieldSuburb},
		{"rooms too high", EvaluateCriteria{Suburb: "X", MinRooms: 31, MinBathrooms: 1}, FieldMinRooms},
		{"bathrooms negative", EvaluateCriteria{Suburb: "X", MinRooms: 1, MinBathrooms: -1}, FieldMinBathrooms},
		{"garage too high", EvaluateCriteria{Suburb: "X", MinRooms: 1, MinBathrooms: 1, MinGarage: &over}, FieldMinGarage},
		{"year too early", EvaluateCriteria{Suburb: "X", MinRooms: 1, MinBathrooms: 1, MinYear: &early}, FieldMinYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Evaluate(tt.criteria)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field: got %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestEvaluateFormCriteria(t *testing.T) {
	c, err := EvaluateForm{Suburb: " X ", MinRooms: "3", MinBathrooms: "2", MinYear: "2001"}.Criteria()
	if err != nil {
		t.Fatalf("Criteria: %v", err)
	}
	if c.Suburb != "X" || c.MinGarage != nil || c.MinYear == nil || *c.MinYear != 2001 {
		t.Errorf("Criteria: got %+v", c)
	}

	_, err = EvaluateForm{Suburb: "X", MinRooms: "3", MinBathrooms: "2", MinYear: "2026"}.Criteria()
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != FieldMinYear {
		t.Errorf("expected year ValidationError, got %v", err)
	}

	_, err = EvaluateForm{MinRooms: "3", MinBathrooms: "2"}.Criteria()
	if !errors.As(err, &ve) || ve.Field != FieldSuburb {
		t.Errorf("expected suburb ValidationError, got %v", err)
	}
}

func TestMeanPrice(t *testing.T) {
	if MeanPrice(nil) != nil {
		t.Error("mean of empty set should be nil")
	}
	listings := sampleListings()
	var total float64
	for _, l := range listings {
		total += l.Price
	}
	got := MeanPrice(listings)
	if got == nil || *got != total/float64(len(listings)) {
		t.Errorf("MeanPrice: got %v", got)
	}
}
