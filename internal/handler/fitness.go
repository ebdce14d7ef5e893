package handler

import (
	"net/http"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/service"
)

type FitnessHandler struct {
	fitnessService *service.FitnessService
}

func NewFitnessHandler(fitnessService *service.FitnessService) *FitnessHandler {
	return &FitnessHandler{
		fitnessService: fitnessService,
	}
}

func (h *FitnessHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		ActivityType string                 `json:"activityType"`
		Value        float64                `json:"value"`
		Metadata     *model.FitnessMetadata `json:"metadata"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	log, err := h.fitnessService.Log(user.ID, req.ActivityType, req.Value, req.Metadata)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, log)
}

// List returns the caller's logs, optionally filtered by ?type=running.
func (h *FitnessHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	activityType := r.URL.Query().Get("type")

	logs, err := h.fitnessService.Logs(user.ID, activityType, queryInt(r, "limit", 0))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, logs)
}

func (h *FitnessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.fitnessService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
