package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// ErrAirportNotFound is returned when an airport lookup yields no rows.
var ErrAirportNotFound = errors.New("airport not found")

// AirportRepo provides persistence for airports.
type AirportRepo struct {
	db *sql.DB
}

// NewAirportRepo constructs an AirportRepo with the given DB handle.
func NewAirportRepo(db *sql.DB) *AirportRepo { return &AirportRepo{db: db} }

// Create inserts an airport. The IATA code is stored upper case. A duplicate
// code is reported as ErrConflict.
func (r *AirportRepo) Create(ctx context.Context, a *model.Airport) error {
	a.IATA = strings.ToUpper(strings.TrimSpace(a.IATA))
	const q = `INSERT INTO airports (iata, name, city, country, timezone) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.IATA, a.Name, a.City, a.Country, a.Timezone)
	if err != nil {
		if isDupKey(err, "uq_airports_iata") {
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

// GetByIATA fetches an airport by its code. Lookup is case-insensitive.
func (r *AirportRepo) GetByIATA(ctx context.Context, iata string) (model.Airport, error) {
	iata = strings.ToUpper(strings.TrimSpace(iata))
	const q = `SELECT id, iata, name, city, country, timezone, created_at
	           FROM airports WHERE iata = ? LIMIT 1`
	var a model.Airport
	err := r.db.QueryRowContext(ctx, q, iata).Scan(
		&a.ID, &a.IATA, &a.Name, &a.City, &a.Country, &a.Timezone, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Airport{}, ErrAirportNotFound
	}
	return a, err
}

// List returns all airports ordered by code.
func (r *AirportRepo) List(ctx context.Context) ([]model.Airport, error) {
	const q = `SELECT id, iata, name, city, country, timezone, created_at
	           FROM airports ORDER BY iata`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Airport, 0)
	for rows.Next() {
		var a model.Airport
		if err := rows.Scan(&a.ID, &a.IATA, &a.Name, &a.City, &a.Country, &a.Timezone, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
