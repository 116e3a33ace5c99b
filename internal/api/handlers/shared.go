package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/traderisk/trade-risk-backend/internal/apperrors"
	"github.com/traderisk/trade-risk-backend/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondError maps a service error to an HTTP status and sends it as a
// JSON error body.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidAccountID),
		errors.Is(err, apperrors.ErrInvalidPercentage),
		errors.Is(err, apperrors.ErrInvalidDate),
		errors.Is(err, apperrors.ErrNegativeAmount),
		errors.Is(err, apperrors.ErrMissingFile),
		errors.Is(err, apperrors.ErrInvalidCSVFormat),
		errors.Is(err, validation.ErrInvalidAccountID),
		errors.Is(err, validation.ErrInvalidNumber),
		errors.Is(err, validation.ErrInvalidDate):
		status = http.StatusBadRequest
	}

	respondJSON(w, status, map[string]string{"error": err.Error()})
}
