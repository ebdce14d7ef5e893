package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/momentumhq/momentum/internal/config"
	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/service"
	"github.com/momentumhq/momentum/internal/validation"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

type AuthHandler struct {
	authService       *service.AuthService
	googleOAuthConfig *oauth2.Config
	githubOAuthConfig *oauth2.Config
	isProduction      bool
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		isProduction: cfg.IsProduction(),
		googleOAuthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.AppURL + "/auth/google/callback",
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		githubOAuthConfig: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.AppURL + "/auth/github/callback",
			Scopes:       []string{"user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.SignUp(req.Name, req.Email, req.Password)
	if err != nil {
		var validationErr *validation.Error
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &validationErr):
			respondError(w, http.StatusBadRequest, validationErr.Message)
		default:
			slog.Error("sign up failed", "error", err, "email", req.Email)
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	slog.Info("user signed up", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, user, err := h.authService.SignIn(req.Email, req.Password, requestIP(r), r.UserAgent())
	if err != nil {
		var validationErr *validation.Error
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &validationErr):
			respondError(w, http.StatusBadRequest, validationErr.Message)
		case errors.Is(err, service.ErrInvalidCredentials):
			slog.Warn("sign in failed", "email", req.Email)
			respondError(w, http.StatusUnauthorized, err.Error())
		default:
			slog.Error("sign in failed", "error", err, "email", req.Email)
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.authService.SetSessionCookie(w, session.Token, session.ExpiresAt)

	slog.Info("user signed in", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusOK, map[string]any{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
		"user":      user,
	})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token := h.authService.SessionToken(r)

	err := h.authService.SignOut(token)
	if err != nil {
		slog.Error("sign out failed", "error", err)
	}

	h.authService.ClearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// SignInEntry is the guard's redirect target. There is no server-rendered
// page; API clients get a pointer at the credential endpoint.
func (h *AuthHandler) SignInEntry(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "authenticate with POST /signin or GET /auth/google, GET /auth/github",
	})
}

// VerifyEmailLink handles the link sent by email:
// GET /verify-email?email=...&code=...
func (h *AuthHandler) VerifyEmailLink(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	code := r.URL.Query().Get("code")

	user, err := h.authService.VerifyEmail(email, code)
	if err != nil {
		if errors.Is(err, service.ErrVerificationFailed) {
			slog.Warn("email verification failed", "email", email)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("email verification failed", "error", err, "email", email)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("email verified", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.VerifyEmail(req.Email, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrVerificationFailed) {
			slog.Warn("email verification failed", "email", req.Email)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("email verification failed", "error", err, "email", req.Email)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("email verified", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusOK, user)
}

// ResendVerification issues a fresh code for the signed-in user's email.
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if user.EmailVerified {
		respondError(w, http.StatusConflict, "email already verified")
		return
	}

	err := h.authService.SendVerificationEmail(user)
	if err != nil {
		slog.Error("failed to resend verification", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "verification sent"})
}

// GoogleAuth redirects to the Google consent screen with a CSRF state cookie.
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	h.setStateCookie(w, state)

	url := h.googleOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code, ok := h.validateCallback(w, r)
	if !ok {
		return
	}

	token, err := h.googleOAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		slog.Error("google oauth token exchange failed", "error", err)
		respondError(w, http.StatusBadGateway, "oauth authentication failed")
		return
	}

	client := h.googleOAuthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		slog.Error("failed to get google user info", "error", err)
		respondError(w, http.StatusBadGateway, "oauth authentication failed")
		return
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	var userInfo struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	err = json.NewDecoder(resp.Body).Decode(&userInfo)
	if err != nil {
		slog.Error("failed to decode google user info", "error", err)
		respondError(w, http.StatusBadGateway, "oauth authentication failed")
		return
	}

	h.finishOAuth(w, r, model.ProviderGoogle, userInfo.ID, userInfo.Email, userInfo.Name, token)
}

// GitHubAuth redirects to the GitHub consent screen with a CSRF state cookie.
func (h *AuthHandler) GitHubAuth(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	h.setStateCookie(w, state)

	url := h.githubOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) GitHubCallback(w http.ResponseWriter, r *http.Request) {
	code, ok := h.validateCallback(w, r)
	if !ok {
		return
	}

	token, err := h.githubOAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		slog.Error("github oauth token exchange failed", "error", err)
		respondError(w, http.StatusBadGateway, "oauth authentication failed")
		return
	}

	client := h.githubOAuthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		slog.Error("failed to get github user info", "error", err)
		respondError(w, http.StatusBadGateway, "oauth authentication failed")
		return
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	var userInfo struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Login string `json:"login"`
	}
	err = json.NewDecoder(resp.Body).Decode(&userInfo)
	if err != nil {
		slog.Error("failed to decode github user info", "error", err)
		respondError(w, http.StatusBadGateway, "oauth authentication failed")
		return
	}

	// GitHub omits the email from /user when it is private
	if userInfo.Email == "" {
		userInfo.Email, err = h.githubPrimaryEmail(client)
		if err != nil {
			slog.Error("failed to get github primary email", "error", err)
			respondError(w, http.StatusBadGateway, "oauth authentication failed")
			return
		}
	}

	name := userInfo.Name
	if name == "" {
		name = userInfo.Login
	}

	h.finishOAuth(w, r, model.ProviderGitHub, strconv.FormatInt(userInfo.ID, 10), userInfo.Email, name, token)
}

func (h *AuthHandler) githubPrimaryEmail(client *http.Client) (string, error) {
	resp, err := client.Get("https://api.github.com/user/emails")
	if err != nil {
		return "", err
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	err = json.NewDecoder(resp.Body).Decode(&emails)
	if err != nil {
		return "", err
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}

	return "", errors.New("no verified primary email")
}

func (h *AuthHandler) finishOAuth(w http.ResponseWriter, r *http.Request, providerID, providerAccountID, email, name string, token *oauth2.Token) {
	if email == "" {
		respondError(w, http.StatusBadGateway, "oauth provider returned no email")
		return
	}

	tokens := &model.Account{}
	if token.AccessToken != "" {
		tokens.AccessToken = &token.AccessToken
	}
	if token.RefreshToken != "" {
		tokens.RefreshToken = &token.RefreshToken
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		tokens.AccessTokenExpiresAt = &expiry
	}
	if idToken, ok := token.Extra("id_token").(string); ok && idToken != "" {
		tokens.IDToken = &idToken
	}

	session, user, err := h.authService.OAuthSignIn(providerID, providerAccountID, email, name, tokens, requestIP(r), r.UserAgent())
	if err != nil {
		slog.Error("oauth sign in failed", "error", err, "provider", providerID, "email", email)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.authService.SetSessionCookie(w, session.Token, session.ExpiresAt)

	slog.Info("user signed in with oauth", "user_id", user.ID, "provider", providerID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})
}

// validateCallback checks the CSRF state and extracts the authorization code.
func (h *AuthHandler) validateCallback(w http.ResponseWriter, r *http.Request) (string, bool) {
	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie("oauth_state")
	if err != nil || cookie.Value != state || state == "" {
		slog.Warn("oauth state validation failed", "error", err)
		respondError(w, http.StatusBadRequest, "oauth state mismatch")
		return "", false
	}

	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.Warn("oauth callback missing code")
		respondError(w, http.StatusBadRequest, "missing authorization code")
		return "", false
	}

	return code, true
}

func generateOAuthState() string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(b)
}

func requestIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			return strings.TrimSpace(forwarded[:i])
		}
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
