package api

import (
	"encoding/json"
	"net/http"

	"hermes/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusForError maps domain errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errors.ErrSessionNotFound), errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrMissingCredentials),
		errors.Is(err, errors.ErrInvalidInput),
		errors.Is(err, errors.ErrUnknownStage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
