package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"mindtrack/internal/domain/errs"
)

// StatusCode maps an error kind to its HTTP status
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated), errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrInvalidRange),
		errors.Is(err, errs.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrAlreadyAuthenticated),
		errors.Is(err, errs.ErrSessionBusy):
		return http.StatusConflict
	case errors.Is(err, errs.ErrNetworkFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an ErrorResponse. Internal errors never leak their text.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	msg := errs.Message(err)
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	WriteJSON(w, status, ErrorResponse{Error: msg, Code: errs.Code(err)})
}
