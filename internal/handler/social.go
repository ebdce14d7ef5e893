package handler

import (
	"net/http"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/service"
)

type SocialHandler struct {
	relationService *service.RelationService
}

func NewSocialHandler(relationService *service.RelationService) *SocialHandler {
	return &SocialHandler{
		relationService: relationService,
	}
}

func (h *SocialHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	relation, err := h.relationService.Follow(user.ID, r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, relation)
}

func (h *SocialHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.relationService.Unfollow(user.ID, r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *SocialHandler) Followers(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	users, err := h.relationService.Followers(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

func (h *SocialHandler) Following(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	users, err := h.relationService.Following(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}
