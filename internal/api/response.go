package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/marketpos/backend/internal/allocation"
	"github.com/marketpos/backend/internal/service"
	"github.com/marketpos/backend/internal/storage"
)

// GenericResponse is the envelope every endpoint answers with.
type GenericResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(GenericResponse{Success: true, Data: data}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(GenericResponse{Success: true, Message: message}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondError maps domain errors onto status codes and renders the
// failure envelope. Internal errors are logged but not leaked.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var verr *allocation.ValidationError
	var perr *allocation.InsufficientPoolError
	switch {
	case errors.As(err, &verr), errors.Is(err, service.ErrInvalid):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.As(err, &perr), errors.Is(err, allocation.ErrNoPools):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	default:
		slog.Error("Request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(GenericResponse{Success: false, Message: message}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("malformed JSON body: %w", service.ErrInvalid)
	}
	return nil
}
