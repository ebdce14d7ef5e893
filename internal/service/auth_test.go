package service

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/momentumhq/momentum/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Str0ngPass!"

func TestSignUpAndSignIn(t *testing.T) {
	authService, _ := newTestAuthService(t)

	user, err := authService.SignUp("Ada", "ada@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.False(t, user.EmailVerified)

	session, signedIn, err := authService.SignIn("ada@example.com", testPassword, "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), session.ExpiresAt, time.Minute)
}

func TestSignUpNormalizesEmail(t *testing.T) {
	authService, _ := newTestAuthService(t)

	user, err := authService.SignUp("Ada", "  Ada@Example.COM ", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, _, err = authService.SignIn("ADA@example.com", testPassword, "", "")
	require.NoError(t, err)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	authService, _ := newTestAuthService(t)

	_, err := authService.SignUp("Ada", "ada@example.com", testPassword)
	require.NoError(t, err)

	_, err = authService.SignUp("Other Ada", "ada@example.com", testPassword)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSignUpRejectsWeakPassword(t *testing.T) {
	authService, _ := newTestAuthService(t)

	for _, tt := range []struct {
		name     string
		password string
	}{
		{"under 8 chars", "short1!"},
		{"no uppercase", "alllowercase1!"},
		{"no lowercase", "ALLUPPERCASE1!"},
		{"no digit", "NoDigitsHere!"},
		{"no special character", "NoSpecial123"},
		{"over 20 chars", "Th1sPasswordIsWayTooLong!"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.SignUp("Ada", "ada@example.com", tt.password)

			var validationErr *validation.Error
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "password", validationErr.Field)
		})
	}
}

// A weak password is rejected before the store is consulted, with the same
// field-specific message sign-up gives, not the generic credential error.
func TestSignInRejectsWeakPassword(t *testing.T) {
	authService, _ := newTestAuthService(t)

	_, err := authService.SignUp("Ada", "ada@example.com", testPassword)
	require.NoError(t, err)

	_, _, err = authService.SignIn("ada@example.com", "short1!", "", "")

	var validationErr *validation.Error
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "password", validationErr.Field)
	assert.Contains(t, validationErr.Message, "at least 8 characters")
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// Every credential failure looks identical to the caller: wrong password,
// unknown email and passwordless account all return the same error.
func TestSignInGenericFailure(t *testing.T) {
	authService, _ := newTestAuthService(t)

	_, err := authService.SignUp("Ada", "ada@example.com", testPassword)
	require.NoError(t, err)

	_, _, err = authService.SignIn("ada@example.com", "WrongPass1!", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.SignIn("nobody@example.com", testPassword, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionResolution(t *testing.T) {
	authService, _ := newTestAuthService(t)

	_, err := authService.SignUp("Ada", "ada@example.com", testPassword)
	require.NoError(t, err)
	created, user, err := authService.SignIn("ada@example.com", testPassword, "", "")
	require.NoError(t, err)

	// Bearer header
	r := httptest.NewRequest("GET", "/api/me", nil)
	r.Header.Set("Authorization", "Bearer "+created.Token)

	session, resolved, err := authService.Session(r)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, user.ID, resolved.ID)

	// No token at all
	session, resolved, err = authService.Session(httptest.NewRequest("GET", "/api/me", nil))
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Nil(t, resolved)

	// Unknown token
	r = httptest.NewRequest("GET", "/api/me", nil)
	r.Header.Set("Authorization", "Bearer deadbeef")
	session, resolved, err = authService.Session(r)
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Nil(t, resolved)
}

func TestSessionExpiredIsNotSignedIn(t *testing.T) {
	authService, database := newTestAuthService(t)

	_, err := authService.SignUp("Ada", "ada@example.com", testPassword)
	require.NoError(t, err)
	created, _, err := authService.SignIn("ada@example.com", testPassword, "", "")
	require.NoError(t, err)

	_, err = database.Exec(`UPDATE sessions SET expires_at = $1 WHERE id = $2`,
		time.Now().Add(-time.Hour), created.ID)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/me", nil)
	r.Header.Set("Authorization", "Bearer "+created.Token)

	session, user, err := authService.Session(r)
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Nil(t, user)
}

// A session used more than a day after its last touch gets a fresh 7-day
// window; one used sooner is left alone.
func TestSessionSlidingRenewal(t *testing.T) {
	authService, database := newTestAuthService(t)

	_, err := authService.SignUp("Ada", "ada@example.com", testPassword)
	require.NoError(t, err)
	created, _, err := authService.SignIn("ada@example.com", testPassword, "", "")
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/me", nil)
	r.Header.Set("Authorization", "Bearer "+created.Token)

	// Fresh session: no renewal
	session, _, err := authService.Session(r)
	require.NoError(t, err)
	assert.WithinDuration(t, created.ExpiresAt, session.ExpiresAt, time.Second)

	// Age the session past the renewal threshold
	staleUpdate := time.Now().Add(-48 * time.Hour)
	_, err = database.Exec(`UPDATE sessions SET updated_at = $1 WHERE id = $2`, staleUpdate, created.ID)
	require.NoError(t, err)

	session, _, err = authService.Session(r)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), session.ExpiresAt, time.Minute)
	assert.True(t, session.ExpiresAt.After(created.ExpiresAt))
}

func TestSignOutInvalidatesSession(t *testing.T) {
	authService, _ := newTestAuthService(t)

	_, err := authService.SignUp("Ada", "ada@example.com", testPassword)
	require.NoError(t, err)
	created, _, err := authService.SignIn("ada@example.com", testPassword, "", "")
	require.NoError(t, err)

	err = authService.SignOut(created.Token)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/me", nil)
	r.Header.Set("Authorization", "Bearer "+created.Token)

	session, user, err := authService.Session(r)
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Nil(t, user)
}

func TestVerifyEmailConsumesCode(t *testing.T) {
	authService, database := newTestAuthService(t)

	user, err := authService.SignUp("Ada", "ada@example.com", testPassword)
	require.NoError(t, err)
	require.False(t, user.EmailVerified)

	var code string
	err = database.Get(&code, `SELECT value FROM verifications WHERE identifier = $1`, user.Email)
	require.NoError(t, err)

	verified, err := authService.VerifyEmail(user.Email, code)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)

	// Codes are single use
	_, err = authService.VerifyEmail(user.Email, code)
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyEmailWrongCode(t *testing.T) {
	authService, _ := newTestAuthService(t)

	user, err := authService.SignUp("Ada", "ada@example.com", testPassword)
	require.NoError(t, err)

	_, err = authService.VerifyEmail(user.Email, "not-the-code")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}
