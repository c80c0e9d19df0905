package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// ErrCrewNotFound is returned when a crew member lookup yields no rows.
var ErrCrewNotFound = errors.New("crew member not found")

// CrewRepo provides persistence for crew members.
type CrewRepo struct {
	db *sql.DB
}

// NewCrewRepo constructs a CrewRepo with the given DB handle.
func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{db: db} }

// Create inserts a crew member.
func (r *CrewRepo) Create(ctx context.Context, c *model.CrewMember) error {
	const q = `INSERT INTO crew_members (full_name, role, license_no) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.FullName, string(c.Role), c.LicenseNo)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID fetches a crew member by id.
func (r *CrewRepo) GetByID(ctx context.Context, id uint64) (model.CrewMember, error) {
	const q = `SELECT id, full_name, role, license_no FROM crew_members WHERE id = ? LIMIT 1`
	var c model.CrewMember
	var role string
	var license sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.FullName, &role, &license)
	if err == sql.ErrNoRows {
		return model.CrewMember{}, ErrCrewNotFound
	}
	if err != nil {
		return model.CrewMember{}, err
	}
	c.Role = model.CrewRole(role)
	if license.Valid {
		s := license.String
		c.LicenseNo = &s
	}
	return c, nil
}
