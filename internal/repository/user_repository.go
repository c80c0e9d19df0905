package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// ErrEmailExists is returned when registering with an email that is already
// taken.
var ErrEmailExists = errors.New("email already exists")

// UserRepo provides persistence for application users.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a pre-derived password hash and salt, returning
// the generated id.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	const q = `INSERT INTO users (full_name, email, password_hash, password_salt, role) VALUES (?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, q, u.FullName, u.Email, u.PasswordHash, u.PasswordSalt, string(u.Role))
	if err != nil {
		if isDupKey(err, "uq_users_email") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT id, full_name, email, password_hash, password_salt, role, created_at
	           FROM users WHERE email = ? LIMIT 1`
	var u model.User
	var role string
	err := r.DB.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.PasswordSalt, &role, &u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.Role = model.Role(role)
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	const q = `SELECT id, full_name, email, password_hash, password_salt, role, created_at
	           FROM users WHERE id = ? LIMIT 1`
	var u model.User
	var role string
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.PasswordSalt, &role, &u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.Role = model.Role(role)
	return u, nil
}
