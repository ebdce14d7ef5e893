package handler

import (
	"net/http"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/service"
)

type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// List returns the caller's own activity history, newest first.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	activities, err := h.activityService.Activities(user.ID, queryInt(r, "limit", 0))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, activities)
}

// Feed returns the caller's activities merged with those of everyone they
// follow, newest first.
func (h *ActivityHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	activities, err := h.activityService.Feed(user.ID, queryInt(r, "limit", 0))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, activities)
}
