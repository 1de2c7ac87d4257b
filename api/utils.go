package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"listing-advisor/services"
)

// WriteJSONError sends {"error": message} with the given status.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON sends payload as JSON.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// writeServiceError maps a decision error onto a status code.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	var ae *services.ArtifactError
	switch {
	case errors.As(err, &ve):
		RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: ve.Error(), Field: ve.Field})
	case errors.Is(err, services.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &ae):
		WriteJSONError(w, http.StatusBadGateway, ae.Error())
	default:
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}
