package services

import (
	"math"
	"strconv"
	"strings"
)

// Field names used in validation errors.
const (
	FieldMaxPrice     = "max_price"
	FieldMinRooms     = "rooms"
	FieldMinBathrooms = "bathrooms"
	FieldMinGarage    = "garage"
	FieldMinYear      = "year_built"
	FieldSuburb       = "suburb"
)

// Accepted input ranges.
const (
	MinCount = 0
	MaxCount = 30
	MinYear  = 1900
	MaxYear  = 2025
)

func parseRequiredInt(field, raw string, min, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid(field, "is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(field, "must be an integer between %d and %d", min, max)
	}
	return n, checkRange(field, n, min, max)
}

func parseOptionalInt(field, raw string, min, max int) (*int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	n, err := parseRequiredInt(field, raw, min, max)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseNonNegative(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid(field, "is required")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid(field, "must be a number")
	}
	if f < 0 {
		return 0, invalid(field, "must not be negative")
	}
	return f, nil
}

func checkRange(field string, n, min, max int) error {
	if n < min || n > max {
		return invalid(field, "must be an integer between %d and %d", min, max)
	}
	return nil
}
