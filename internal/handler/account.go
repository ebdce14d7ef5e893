package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/service"
)

const maxAvatarSize = 5 << 20 // 5 MB

type AccountHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewAccountHandler(userService *service.UserService, authService *service.AuthService) *AccountHandler {
	return &AccountHandler{
		userService: userService,
		authService: authService,
	}
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	respondJSON(w, http.StatusOK, user)
}

func (h *AccountHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.userService.UpdateName(user.ID, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *AccountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)

	err := r.ParseMultipartForm(maxAvatarSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "avatar must be a multipart upload of at most 5MB")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing avatar file")
		return
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Error("failed to close avatar file", "error", closeErr)
		}
	}()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(w, http.StatusBadRequest, "avatar must be an image")
		return
	}

	updated, err := h.userService.UploadAvatar(r.Context(), user.ID, file, contentType)
	if err != nil {
		slog.Error("avatar upload failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to store avatar")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *AccountHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	updated, err := h.userService.DeleteAvatar(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// Delete removes the account and everything hanging off it, then ends the
// current session.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.Delete(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	err = h.authService.SignOut(h.authService.SessionToken(r))
	if err != nil {
		slog.Warn("failed to delete session after account deletion", "error", err, "user_id", user.ID)
	}
	h.authService.ClearSessionCookie(w)

	slog.Info("account deleted", "user_id", user.ID)
	respondJSON(w, http.StatusNoContent, nil)
}
