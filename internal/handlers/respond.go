package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/imsosorrybutiloveyou/Girok/internal/services"
)

// requestTimeout bounds the storage round-trips a handler makes.
const requestTimeout = 5 * time.Second

func withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

// failErr maps a service error onto a status code and a JSON error body.
func failErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateUsername):
		fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrWrongPassword):
		fail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrUnknownUser), errors.Is(err, services.ErrNotFound):
		fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		fail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrImageTooLarge):
		fail(w, http.StatusRequestEntityTooLarge, err.Error())
	default:
		fail(w, http.StatusInternalServerError, "internal error")
	}
}
