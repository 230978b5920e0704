package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/walkline/queue-service/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500 with a generic message.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrState),
		errors.Is(err, domain.ErrAlreadyInQueue),
		errors.Is(err, domain.ErrNotInQueue):
		status = http.StatusConflict
	default:
		log.Printf("Unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
