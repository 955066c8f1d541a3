package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/newsdesk/internal/domain"
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, message)
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// bind decodes and validates the request body into dst. It writes the
// error response itself and reports whether the handler may continue.
func bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := readJSON(r, dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return false
	}

	if err := validateStruct(dst); err != nil {
		writeValidationError(w, err)
		return false
	}
	return true
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verr *validationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "Validation failed.",
			"fields": verr.Fields,
		})
		return
	}
	slog.Error("validate request", "error", err)
	writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

// writeServiceError maps a service error onto a status code. Unexpected
// errors are logged under op and hidden from the client.
func writeServiceError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, domain.ErrDuplicateLogin):
		writeError(w, http.StatusBadRequest, "A user with that login already exists.")
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "A user with that email already exists.")
	case errors.Is(err, domain.ErrDuplicateTag):
		writeError(w, http.StatusBadRequest, "A tag with that name already exists.")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusBadRequest, "The change conflicts with an existing record.")
	case errors.Is(err, domain.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, "A referenced record does not exist.")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeUnauthorized(w, "Not authenticated.")
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
	}
}
