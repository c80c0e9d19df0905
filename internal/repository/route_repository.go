package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// ErrRouteNotFound is returned when no route connects the requested airports.
var ErrRouteNotFound = errors.New("route not found")

// RouteRepo provides persistence for routes between airports.
type RouteRepo struct {
	db *sql.DB
}

// NewRouteRepo constructs a RouteRepo with the given DB handle.
func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// Create inserts a route. Callers resolve airport IDs beforehand and reject
// origin == destination; the database only enforces the foreign keys.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
	const q = `INSERT INTO routes (origin_airport_id, dest_airport_id, distance_km) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rt.OriginAirportID, rt.DestAirportID, rt.DistanceKm)
	if err != nil {
		if isDupKey(err, "uq_routes_pair") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return nil
}

// IATAPair returns the origin and destination codes of a route.
func (r *RouteRepo) IATAPair(ctx context.Context, routeID uint64) (origin, dest string, err error) {
	const q = `SELECT o.iata, d.iata
	           FROM routes r
	           JOIN airports o ON o.id = r.origin_airport_id
	           JOIN airports d ON d.id = r.dest_airport_id
	           WHERE r.id = ?`
	err = r.db.QueryRowContext(ctx, q, routeID).Scan(&origin, &dest)
	if err == sql.ErrNoRows {
		return "", "", ErrRouteNotFound
	}
	return origin, dest, err
}

// GetByIATAPair resolves a route by the origin and destination codes in one
// query. Both codes must match existing airports.
func (r *RouteRepo) GetByIATAPair(ctx context.Context, originIATA, destIATA string) (model.Route, error) {
	const q = `SELECT r.id, r.origin_airport_id, r.dest_airport_id, r.distance_km, r.created_at
	           FROM routes r
	           JOIN airports o ON o.id = r.origin_airport_id
	           JOIN airports d ON d.id = r.dest_airport_id
	           WHERE o.iata = UPPER(?) AND d.iata = UPPER(?)
	           LIMIT 1`
	var rt model.Route
	err := r.db.QueryRowContext(ctx, q, originIATA, destIATA).Scan(
		&rt.ID, &rt.OriginAirportID, &rt.DestAirportID, &rt.DistanceKm, &rt.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Route{}, ErrRouteNotFound
	}
	return rt, err
}
