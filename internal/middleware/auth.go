package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/service"
)

// SignInPath is where unauthenticated callers of protected routes are sent.
const SignInPath = "/signin"

// Session resolves the request's session token through the auth gateway and,
// when valid, adds session + user to the request context. Exactly one gateway
// call per request; any failure leaves the request unauthenticated.
func Session(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, user, err := authService.Session(r)
			if err != nil {
				// Store failure, not a bad credential. Log and continue
				// unauthenticated; RequireAuth will redirect.
				slog.Error("session resolution failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if session == nil || user == nil {
				// Absent, unknown or expired token. Drop a stale cookie if the
				// client sent one.
				if authService.SessionToken(r) != "" {
					authService.ClearSessionCookie(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithSession(r.Context(), session)
			ctx = ctxkeys.WithUser(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth is the single enforcement point for protected routes: no
// authenticated user in context means a redirect to the sign-in entry point,
// never an error response. The context user id is the only trusted caller
// identity.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			// API clients get the redirect target in the body instead of an
			// HTML redirect they cannot follow.
			if wantsJSON(r) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"authentication required","signin":"` + SignInPath + `"}`))
				return
			}
			http.Redirect(w, r, SignInPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireGuest keeps authenticated users off the sign-in/sign-up endpoints.
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
