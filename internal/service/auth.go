package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/repository"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/utils"
)

const minPasswordLen = 8

// AuthService handles registration, login and opaque bearer sessions.
// Tokens live in the user_sessions table; a token stops validating the
// moment its row is deactivated or expires.
type AuthService struct {
	users      *repository.UserRepo
	sessions   *repository.SessionRepo
	iterations int
	sessionTTL time.Duration
}

func NewAuthService(users *repository.UserRepo, sessions *repository.SessionRepo, iterations, ttlDays int) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		iterations: iterations,
		sessionTTL: time.Duration(ttlDays) * 24 * time.Hour,
	}
}

// Register creates a user with a PBKDF2 password hash and opens a session
// for it, so a fresh account can call the API without a separate login.
// Email must be unique; duplicates come back as a conflict.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string, role model.Role) (string, model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" {
		return "", model.User{}, errInvalid("full_name is required")
	}
	if !strings.Contains(email, "@") {
		return "", model.User{}, errInvalid("email is not valid")
	}
	if len(password) < minPasswordLen {
		return "", model.User{}, errInvalid("password must be at least %d characters", minPasswordLen)
	}

	hash, salt, err := utils.HashPassword(password, s.iterations)
	if err != nil {
		return "", model.User{}, err
	}
	u := model.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         role,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return "", model.User{}, errConflict("email already registered")
		}
		return "", model.User{}, err
	}
	token, err := s.openSession(ctx, u.ID)
	if err != nil {
		return "", model.User{}, err
	}
	u.PasswordHash = nil
	u.PasswordSalt = nil
	return token, u, nil
}

// Login verifies the password and opens a new session. The caller gets an
// opaque token valid for the configured TTL.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.User{}, errUnauthorized("invalid email or password")
		}
		return "", model.User{}, err
	}
	if !utils.VerifyPassword(password, u.PasswordHash, u.PasswordSalt, s.iterations) {
		return "", model.User{}, errUnauthorized("invalid email or password")
	}

	token, err := s.openSession(ctx, u.ID)
	if err != nil {
		return "", model.User{}, err
	}
	u.PasswordHash = nil
	u.PasswordSalt = nil
	return token, u, nil
}

// openSession issues a fresh opaque token and stores the session row.
func (s *AuthService) openSession(ctx context.Context, userID uint64) (string, error) {
	token, err := utils.NewSessionToken()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	sess := model.UserSession{
		UserID:       userID,
		Token:        token,
		CreatedAtUtc: now,
		ExpiresAtUtc: now.Add(s.sessionTTL),
		IsActive:     true,
	}
	if err := s.sessions.Create(ctx, &sess); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken resolves a bearer token to its user. Unknown, expired and
// deactivated tokens all fail the same way.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, errUnauthorized("missing token")
	}
	u, err := s.sessions.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errUnauthorized("invalid or expired token")
		}
		return model.User{}, err
	}
	return u, nil
}

// Logout deactivates the session. Deactivating an unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Deactivate(ctx, token)
}
