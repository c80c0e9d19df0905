package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// SessionRepo persists and validates opaque bearer sessions. Tokens are
// stored verbatim: they carry 24 bytes of entropy and the row itself is the
// single source of truth for validity.
type SessionRepo struct{ DB *sql.DB }

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts an active session row for a user.
func (r *SessionRepo) Create(ctx context.Context, s *model.UserSession) error {
	const q = `INSERT INTO user_sessions (user_id, token, created_at_utc, expires_at_utc, is_active)
	           VALUES (?, ?, ?, ?, TRUE)`
	res, err := r.DB.ExecContext(ctx, q, s.UserID, s.Token, s.CreatedAtUtc.UTC(), s.ExpiresAtUtc.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.IsActive = true
	return nil
}

// Validate resolves a token to its user. It returns sql.ErrNoRows when the
// token is unknown, inactive, or past its expiry; a token must never
// validate after logout or expiry.
func (r *SessionRepo) Validate(ctx context.Context, token string) (model.User, error) {
	const q = `SELECT u.id, u.full_name, u.email, u.password_hash, u.password_salt, u.role, u.created_at,
	                  s.expires_at_utc, s.is_active
	           FROM user_sessions s
	           JOIN users u ON u.id = s.user_id
	           WHERE s.token = ? LIMIT 1`
	var u model.User
	var role string
	var expires time.Time
	var active bool
	err := r.DB.QueryRowContext(ctx, q, token).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.PasswordSalt, &role, &u.CreatedAt,
		&expires, &active)
	if err != nil {
		return model.User{}, err
	}
	if !active || !time.Now().UTC().Before(expires) {
		return model.User{}, sql.ErrNoRows
	}
	u.Role = model.Role(role)
	return u, nil
}

// Deactivate marks a session inactive. Unknown tokens are a no-op so logout
// stays idempotent.
func (r *SessionRepo) Deactivate(ctx context.Context, token string) error {
	const q = `UPDATE user_sessions SET is_active = FALSE WHERE token = ?`
	_, err := r.DB.ExecContext(ctx, q, token)
	return err
}
