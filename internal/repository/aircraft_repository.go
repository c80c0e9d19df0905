package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// ErrAircraftNotFound is returned when an aircraft lookup yields no rows.
var ErrAircraftNotFound = errors.New("aircraft not found")

// AircraftRepo provides persistence for aircraft.
type AircraftRepo struct {
	db *sql.DB
}

// NewAircraftRepo constructs an AircraftRepo with the given DB handle.
func NewAircraftRepo(db *sql.DB) *AircraftRepo { return &AircraftRepo{db: db} }

// Create inserts an aircraft. A duplicate tail number is reported as
// ErrConflict. Capacity bounds are validated by the admin service.
func (r *AircraftRepo) Create(ctx context.Context, a *model.Aircraft) error {
	a.TailNumber = strings.ToUpper(strings.TrimSpace(a.TailNumber))
	const q = `INSERT INTO aircraft (tail_number, model, capacity) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.TailNumber, a.Model, a.Capacity)
	if err != nil {
		if isDupKey(err, "uq_aircraft_tail") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByTail fetches an aircraft by tail number.
func (r *AircraftRepo) GetByTail(ctx context.Context, tail string) (model.Aircraft, error) {
	tail = strings.ToUpper(strings.TrimSpace(tail))
	const q = `SELECT id, tail_number, model, capacity, created_at
	           FROM aircraft WHERE tail_number = ? LIMIT 1`
	var a model.Aircraft
	err := r.db.QueryRowContext(ctx, q, tail).Scan(
		&a.ID, &a.TailNumber, &a.Model, &a.Capacity, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Aircraft{}, ErrAircraftNotFound
	}
	return a, err
}
