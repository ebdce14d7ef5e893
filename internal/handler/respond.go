package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain sentinel errors to HTTP statuses. Unknown
// errors are logged and reported as a generic 500 so internals never leak.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrHabitNotFound),
		errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, repository.ErrPomodoroNotFound),
		errors.Is(err, repository.ErrFitnessLogNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrRelationNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrVerificationFailed):
		respondError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrGoalAlreadyCompleted),
		errors.Is(err, service.ErrPomodoroRunning):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrHabitNameRequired),
		errors.Is(err, service.ErrInvalidFrequency),
		errors.Is(err, service.ErrGoalTitleRequired),
		errors.Is(err, service.ErrTaskTitleRequired),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrActivityTypeRequired):
		respondError(w, http.StatusBadRequest, err.Error())

	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a JSON request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
