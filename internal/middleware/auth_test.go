package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/db/testdb"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *service.AuthService {
	t.Helper()

	database := testdb.New(t)
	emailService := service.NewEmailService("", "noreply@example.com", "http://localhost:8090", "Momentum", true)

	return service.NewAuthService(
		repository.NewUserRepository(database),
		repository.NewAccountRepository(database),
		repository.NewSessionRepository(database),
		repository.NewVerificationRepository(database),
		emailService,
		false,
		168*time.Hour,
		24*time.Hour,
		24*time.Hour,
	)
}

// An unauthenticated request to a protected route is redirected to sign-in,
// not answered with an error page.
func TestRequireAuthRedirectsToSignIn(t *testing.T) {
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/api/habits", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, SignInPath, w.Header().Get("Location"))
}

func TestRequireAuthJSONClientsGet401(t *testing.T) {
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	r := httptest.NewRequest("GET", "/api/habits", nil)
	r.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), SignInPath)
}

func TestRequireAuthPassesAuthenticatedUser(t *testing.T) {
	called := false
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	r := httptest.NewRequest("GET", "/api/habits", nil)
	ctx := ctxkeys.WithUser(r.Context(), &model.User{ID: "u1"})

	w := httptest.NewRecorder()
	handler(w, r.WithContext(ctx))

	assert.True(t, called)
}

func TestSessionMiddlewarePopulatesContext(t *testing.T) {
	authService := newAuthService(t)

	_, err := authService.SignUp("Ada", "ada@example.com", "Str0ngPass!")
	require.NoError(t, err)
	session, user, err := authService.SignIn("ada@example.com", "Str0ngPass!", "", "")
	require.NoError(t, err)

	var gotUser *model.User
	var gotSession *model.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = ctxkeys.User(r.Context())
		gotSession = ctxkeys.Session(r.Context())
	})

	r := httptest.NewRequest("GET", "/api/me", nil)
	r.Header.Set("Authorization", "Bearer "+session.Token)

	Session(authService)(next).ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, gotUser)
	assert.Equal(t, user.ID, gotUser.ID)
	require.NotNil(t, gotSession)
	assert.Equal(t, session.ID, gotSession.ID)
}

// A bad cookie is dropped and the request continues unauthenticated.
func TestSessionMiddlewareClearsStaleCookie(t *testing.T) {
	authService := newAuthService(t)

	var gotUser *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = ctxkeys.User(r.Context())
	})

	r := httptest.NewRequest("GET", "/api/me", nil)
	r.AddCookie(&http.Cookie{Name: "session_token", Value: "stale-token"})

	w := httptest.NewRecorder()
	Session(authService)(next).ServeHTTP(w, r)

	assert.Nil(t, gotUser)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}
