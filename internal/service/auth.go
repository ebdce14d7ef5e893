package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrNameRequired       = errors.New("name is required")
	ErrVerificationFailed = errors.New("invalid or expired verification code")
)

const sessionCookieName = "session_token"

// AuthService is the authentication gateway: it owns credential verification,
// session issuance and expiry, and email verification. Sessions are database
// rows keyed by an opaque bearer token; there is no signed token format.
type AuthService struct {
	userRepository         repository.UserRepository
	accountRepository      repository.AccountRepository
	sessionRepository      repository.SessionRepository
	verificationRepository repository.VerificationRepository
	emailService           *EmailService
	isProduction           bool
	sessionExpiry          time.Duration // lifetime of a session from issuance or renewal
	sessionUpdateAge       time.Duration // minimum age before a use renews the session
	verificationExpiry     time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	accountRepository repository.AccountRepository,
	sessionRepository repository.SessionRepository,
	verificationRepository repository.VerificationRepository,
	emailService *EmailService,
	isProduction bool,
	sessionExpiry time.Duration,
	sessionUpdateAge time.Duration,
	verificationExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:         userRepository,
		accountRepository:      accountRepository,
		sessionRepository:      sessionRepository,
		verificationRepository: verificationRepository,
		emailService:           emailService,
		isProduction:           isProduction,
		sessionExpiry:          sessionExpiry,
		sessionUpdateAge:       sessionUpdateAge,
		verificationExpiry:     verificationExpiry,
	}
}

// SignUp creates a user with a credential account and sends a verification
// email. Inputs are validated before any store access.
func (s *AuthService) SignUp(name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" {
		return nil, ErrNameRequired
	}

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, err.Error())
	}

	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:            uuid.New().String(),
		Name:          name,
		Email:         email,
		EmailVerified: false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	account := &model.Account{
		ID:         uuid.New().String(),
		AccountID:  user.ID,
		ProviderID: model.ProviderCredential,
		UserID:     user.ID,
		Password:   &hash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.accountRepository.Create(account)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential account: %w", err)
	}

	err = s.SendVerificationEmail(user)
	if err != nil {
		// Sign-up stands; the user can request another code
		slog.Warn("failed to send verification email", "error", err, "user_id", user.ID)
	}

	return user, nil
}

// SignIn verifies a credential pair and issues a session. Credential shape is
// checked before any store access; past that point every failure returns the
// same ErrInvalidCredentials so callers cannot probe which field was wrong.
func (s *AuthService) SignIn(email, password, ipAddress, userAgent string) (*model.Session, *model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidEmail, err.Error())
	}

	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	account, err := s.accountRepository.ByUserAndProvider(user.ID, model.ProviderCredential)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !account.HasPassword() {
		return nil, nil, ErrInvalidCredentials
	}

	err = s.ComparePassword(password, *account.Password)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(user.ID, ipAddress, userAgent)
	if err != nil {
		return nil, nil, err
	}

	return session, user, nil
}

// Session resolves the bearer token carried by the request. It returns
// (nil, nil, nil) when the token is absent, unknown or expired; callers treat
// that as "not signed in", never as an error. A session used more than
// sessionUpdateAge after its last update is renewed for a full sessionExpiry
// from now (sliding window).
func (s *AuthService) Session(r *http.Request) (*model.Session, *model.User, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, nil, nil
	}

	session, err := s.sessionRepository.ByToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	if session.IsExpired() {
		return nil, nil, nil
	}

	now := time.Now()
	if now.Sub(session.UpdatedAt) > s.sessionUpdateAge {
		expiresAt := now.Add(s.sessionExpiry)
		err = s.sessionRepository.Extend(session.ID, expiresAt, now)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to renew session: %w", err)
		}
		session.ExpiresAt = expiresAt
		session.UpdatedAt = now
	}

	user, err := s.userRepository.ByID(session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to get session user: %w", err)
	}

	return session, user, nil
}

// SignOut invalidates the session row immediately.
func (s *AuthService) SignOut(token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepository.DeleteByToken(token)
}

// SendVerificationEmail issues a fresh verification code for the user's email,
// replacing any outstanding one.
func (s *AuthService) SendVerificationEmail(user *model.User) error {
	err := s.verificationRepository.DeleteByIdentifier(user.Email)
	if err != nil {
		slog.Warn("failed to delete old verifications", "error", err, "identifier", user.Email)
	}

	code, err := s.GenerateToken()
	if err != nil {
		return err
	}

	now := time.Now()
	verification := &model.Verification{
		ID:         uuid.New().String(),
		Identifier: user.Email,
		Value:      code,
		ExpiresAt:  now.Add(s.verificationExpiry),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.verificationRepository.Create(verification)
	if err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}

	return s.emailService.SendVerificationEmail(user.Email, code)
}

// VerifyEmail consumes a verification code and marks the user verified.
func (s *AuthService) VerifyEmail(email, code string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	_, err := s.verificationRepository.Consume(email, code)
	if err != nil {
		if errors.Is(err, repository.ErrVerificationNotFound) {
			return nil, ErrVerificationFailed
		}
		return nil, fmt.Errorf("failed to consume verification: %w", err)
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.EmailVerified = true
	user.UpdatedAt = time.Now()

	err = s.userRepository.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// OAuthSignIn signs in (or signs up) a user through an OAuth provider and
// issues a session. The provider has already verified the email.
func (s *AuthService) OAuthSignIn(providerID, providerAccountID, email, name string, tokens *model.Account, ipAddress, userAgent string) (*model.Session, *model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	now := time.Now()

	var user *model.User

	account, err := s.accountRepository.ByProviderAccount(providerID, providerAccountID)
	switch {
	case err == nil:
		user, err = s.userRepository.ByID(account.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get user for account: %w", err)
		}

		account.AccessToken = tokens.AccessToken
		account.RefreshToken = tokens.RefreshToken
		account.IDToken = tokens.IDToken
		account.AccessTokenExpiresAt = tokens.AccessTokenExpiresAt
		account.RefreshTokenExpiresAt = tokens.RefreshTokenExpiresAt
		account.Scope = tokens.Scope
		account.UpdatedAt = now
		err = s.accountRepository.Update(account)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to update account tokens: %w", err)
		}

	case errors.Is(err, repository.ErrAccountNotFound):
		user, err = s.userRepository.ByEmail(email)
		if errors.Is(err, repository.ErrUserNotFound) {
			user = &model.User{
				ID:            uuid.New().String(),
				Name:          name,
				Email:         email,
				EmailVerified: true,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			err = s.userRepository.Create(user)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve oauth user: %w", err)
		}

		account = &model.Account{
			ID:                    uuid.New().String(),
			AccountID:             providerAccountID,
			ProviderID:            providerID,
			UserID:                user.ID,
			AccessToken:           tokens.AccessToken,
			RefreshToken:          tokens.RefreshToken,
			IDToken:               tokens.IDToken,
			AccessTokenExpiresAt:  tokens.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: tokens.RefreshTokenExpiresAt,
			Scope:                 tokens.Scope,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		err = s.accountRepository.Create(account)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create oauth account: %w", err)
		}

	default:
		return nil, nil, fmt.Errorf("failed to look up oauth account: %w", err)
	}

	session, err := s.createSession(user.ID, ipAddress, userAgent)
	if err != nil {
		return nil, nil, err
	}

	return session, user, nil
}

func (s *AuthService) createSession(userID, ipAddress, userAgent string) (*model.Session, error) {
	token, err := s.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &model.Session{
		ID:        uuid.New().String(),
		ExpiresAt: now.Add(s.sessionExpiry),
		Token:     token,
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}

	err = s.sessionRepository.Create(session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionToken extracts the raw bearer token from a request without resolving
// it.
func (s *AuthService) SessionToken(r *http.Request) string {
	return bearerToken(r)
}

// bearerToken reads the session token from the session cookie or an
// Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}

	return ""
}
