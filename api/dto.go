package api

import (
	"bytes"
	"encoding/json"

	"listing-advisor/models"
	"listing-advisor/services"
)

// FormValue is one form input. It accepts a JSON string, number or null and
// keeps the raw text, so a bad value fails validation on its own field
// instead of failing the whole body.
type FormValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
	default:
		*v = FormValue(data)
	}
	return nil
}

// RecommendRequest is the body of POST /api/v1/recommend.
type RecommendRequest struct {
	MaxPrice  FormValue `json:"max_price"`
	MinRooms  FormValue `json:"rooms"`
	MinGarage FormValue `json:"garage"`
}

func (r RecommendRequest) form() services.RecommendForm {
	return services.RecommendForm{
		MaxPrice:  string(r.MaxPrice),
		MinRooms:  string(r.MinRooms),
		MinGarage: string(r.MinGarage),
	}
}

// EvaluateRequest is the body of POST /api/v1/evaluate. Garage and year are
// optional.
type EvaluateRequest struct {
	Suburb       FormValue `json:"suburb"`
	MinRooms     FormValue `json:"rooms"`
	MinBathrooms FormValue `json:"bathrooms"`
	MinGarage    FormValue `json:"garage,omitempty"`
	MinYear      FormValue `json:"year_built,omitempty"`
}

func (r EvaluateRequest) form() services.EvaluateForm {
	return services.EvaluateForm{
		Suburb:       string(r.Suburb),
		MinRooms:     string(r.MinRooms),
		MinBathrooms: string(r.MinBathrooms),
		MinGarage:    string(r.MinGarage),
		MinYear:      string(r.MinYear),
	}
}

// ErrorResponse is the body of every 4xx/5xx reply. Field names the
// offending input for validation errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ListingDTO is the compact form of a listing used in result lists.
type ListingDTO struct {
	ID        int      `json:"id"`
	Suburb    string   `json:"suburb"`
	Address   string   `json:"address,omitempty"`
	Price     float64  `json:"price"`
	PriceText string   `json:"price_text"`
	Rooms     *int     `json:"rooms,omitempty"`
	Garage    *int     `json:"garage,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func toListingDTO(l *models.Listing) ListingDTO {
	return ListingDTO{
		ID:        l.ID,
		Suburb:    l.Suburb,
		Address:   l.Address,
		Price:     l.Price,
		PriceText: services.FormatCurrency(l.Price),
		Rooms:     l.Rooms,
		Garage:    l.Garage,
		Bathrooms: l.Bathrooms,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

func toListingDTOs(listings []*models.Listing) []ListingDTO {
	out := make([]ListingDTO, len(listings))
	for i, l := range listings {
		out[i] = toListingDTO(l)
	}
	return out
}

// ListingResponse is the reply of GET /api/v1/listings/{id}.
type ListingResponse struct {
	Selection string                `json:"selection"`
	Listing   ListingDTO            `json:"listing"`
	Details   []services.DetailLine `json:"details"`
	OnMap     bool                  `json:"on_map"`
}

// RecommendResponse is the reply of POST /api/v1/recommend. Found is false
// when no listing qualifies.
type RecommendResponse struct {
	Found      bool         `json:"found"`
	Message    string       `json:"message,omitempty"`
	Best       *ListingDTO  `json:"best,omitempty"`
	Peers      []ListingDTO `json:"peers,omitempty"`
	Candidates int          `json:"candidates"`
}

// EvaluateResponse is the reply of POST /api/v1/evaluate. MeanPrice is null
// when there are no comparables.
type EvaluateResponse struct {
	Suburb          string       `json:"suburb"`
	ComparableCount int          `json:"comparable_count"`
	Comparables     []ListingDTO `json:"comparables"`
	MeanPrice       *float64     `json:"mean_price"`
	MeanPriceText   string       `json:"mean_price_text"`
	Estimate        float64      `json:"estimate"`
	EstimateText    string       `json:"estimate_text"`
}

func toEvaluateResponse(e *models.Evaluation) EvaluateResponse {
	return EvaluateResponse{
		Suburb:          e.Suburb,
		ComparableCount: e.ComparableCount(),
		Comparables:     toListingDTOs(e.Comparables),
		MeanPrice:       e.MeanComparablePrice,
		MeanPriceText:   services.FormatOptionalCurrency(e.MeanComparablePrice),
		Estimate:        e.ModelEstimate,
		EstimateText:    services.FormatCurrency(e.ModelEstimate),
	}
}

// SuburbsResponse lists the suburbs valid for evaluation.
type SuburbsResponse struct {
	Suburbs []string `json:"suburbs"`
}

// StatusResponse is the health check reply.
type StatusResponse struct {
	Status string `json:"status"`
}
