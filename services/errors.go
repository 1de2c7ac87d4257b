package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch reports a well-formed query whose result set is empty.
	ErrNoMatch = errors.New("no listing found within the requested price and requirements")
	// ErrNotFound reports a selection that does not resolve to a listing.
	ErrNotFound = errors.New("select a valid listing")
)

// ValidationError is a user input problem attributed to a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ArtifactError wraps a failure of the regression model: loading it or
// obtaining a prediction.
type ArtifactError struct {
	Op  string
	Err error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("price model %s: %v", e.Op, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}
