// Package services holds the core operations behind the transport layer:
// registration, login, identity resolution and voting. Services never touch
// gin or cookies; identity always arrives as an explicit session token.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"burrow/internal/auth"
	"burrow/internal/models"
	"burrow/internal/store"
)

// Credential length floors. The original rule is "longer than 2 characters".
const (
	MinUsernameLength = 3
	MinPasswordLength = 3
)

// DefaultSessionTTL keeps users logged in until they explicitly log out.
const DefaultSessionTTL = 10 * 365 * 24 * time.Hour

// dummyHash is verified when the username does not exist so that login takes
// the same time either way. It is a well-formed argon2id digest that matches
// no password.
const dummyHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// credentialsMessage is shared by the missing-user and wrong-password paths.
// Field and message must be identical in both so a caller cannot probe which
// usernames exist.
const credentialsMessage = "incorrect username or password"

// FieldError tags a business-rule violation with the input field it concerns.
// Validation failures are data the caller renders, not error values.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AuthResult is the outcome of Register and Login: either User and Token are
// set, or Errors is non-empty. Never both.
type AuthResult struct {
	User   *models.User `json:"user,omitempty"`
	Token  string       `json:"-"`
	Errors []FieldError `json:"errors,omitempty"`
}

func (r *AuthResult) Failed() bool { return len(r.Errors) > 0 }

func fieldErr(field, message string) *AuthResult {
	return &AuthResult{Errors: []FieldError{{Field: field, Message: message}}}
}

type AuthService struct {
	users      store.UserStore
	sessions   store.SessionStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewAuthService(users store.UserStore, sessions store.SessionStore, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     slog.Default().With("service", "auth"),
	}
}

// Register validates the credentials, stores the new user and logs them in.
// A duplicate username comes back as a field error, converted from the
// store's conflict signal; only infrastructure faults return as error.
func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	if len(username) < MinUsernameLength {
		return fieldErr("username", "username must be at least 3 characters"), nil
	}
	if len(password) < MinPasswordLength {
		return fieldErr("password", "password must be at least 3 characters"), nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Password: hash,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return fieldErr("username", "username already taken"), nil
		}
		return nil, err
	}

	token, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return &AuthResult{User: &user, Token: token}, nil
}

// Login authenticates a user and creates a session. The missing-user and
// wrong-password paths return the identical field error and both run a full
// hash verification.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	targetHash := dummyHash
	if user != nil {
		targetHash = user.Password
	}

	valid, err := auth.CheckPasswordHash(password, targetHash)
	if err != nil {
		if user == nil {
			// Parse error against the dummy digest: treat as plain mismatch.
			return fieldErr("username", credentialsMessage), nil
		}
		return nil, fmt.Errorf("verify password for %q: %w", username, err)
	}
	if user == nil || !valid {
		return fieldErr("username", credentialsMessage), nil
	}

	token, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Me resolves a session token to its user. An absent, expired or orphaned
// session is (nil, nil): being logged out is not an error.
func (s *AuthService) Me(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	userID, ok, err := s.sessions.Read(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Logout destroys the session. Logging out twice succeeds twice; only an
// unreachable store reports failure.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}
