package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lfreire/tokendex/internal/domain"
)

// WriteJSON writes a JSON response with the given status code and data.
// Sets Content-Type to application/json before writing the status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Write error intentionally ignored in response helper
}

// errorResponse is the standard error response format.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standard error response with the given status
// code, error code, and human-readable message.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// WriteDomainError maps domain errors to HTTP status codes and writes
// the standard error response.
func WriteDomainError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		WriteError(w, http.StatusBadRequest, "invalid_request", vErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		WriteError(w, http.StatusForbidden, err.Error(), "Only the exchange owner may perform this operation")
	case errors.Is(err, domain.ErrUnknownInstrument):
		WriteError(w, http.StatusNotFound, err.Error(), "Instrument is not registered")
	case errors.Is(err, domain.ErrOrderNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), "Order does not exist")
	case errors.Is(err, domain.ErrInstrumentExists):
		WriteError(w, http.StatusConflict, err.Error(), "Instrument is already registered")
	case errors.Is(err, domain.ErrInsufficientBalance):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), "Balance does not cover the operation")
	case errors.Is(err, domain.ErrEmptyBook):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), "No resting orders on the opposite side")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "Unexpected error")
	}
}

// ParseJSON decodes the request body as JSON into v.
// It validates that the Content-Type header is application/json and
// returns an error for missing/incorrect content type or malformed JSON.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	return nil
}
