package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// ErrFlightNotFound is returned when a flight lookup yields no rows.
var ErrFlightNotFound = errors.New("flight not found")

// FlightRepo provides persistence for flights and crew assignments.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo constructs a FlightRepo with the given DB handle.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// Create inserts a flight. A duplicate (flight_number, departure_utc) pair is
// reported as ErrConflict.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
	const q = `INSERT INTO flights (flight_number, route_id, aircraft_id, departure_utc, arrival_utc, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		f.FlightNumber, f.RouteID, f.AircraftID, f.DepartureUtc.UTC(), f.ArrivalUtc.UTC(), string(f.Status))
	if err != nil {
		if isDupKey(err, "uq_flights_number_departure") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// GetByID fetches a flight by id.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (model.Flight, error) {
	const q = `SELECT id, flight_number, route_id, aircraft_id, departure_utc, arrival_utc, actual_arrival_utc, status
	           FROM flights WHERE id = ? LIMIT 1`
	var f model.Flight
	var actual sql.NullTime
	var status string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&f.ID, &f.FlightNumber, &f.RouteID, &f.AircraftID,
		&f.DepartureUtc, &f.ArrivalUtc, &actual, &status)
	if err == sql.ErrNoRows {
		return model.Flight{}, ErrFlightNotFound
	}
	if err != nil {
		return model.Flight{}, err
	}
	if actual.Valid {
		t := actual.Time.UTC()
		f.ActualArrivalUtc = &t
	}
	f.Status = model.FlightStatus(status)
	return f, nil
}

// SetStatus updates a flight's lifecycle state. When the flight lands the
// actual arrival is recorded as well; passing nil leaves it untouched.
func (r *FlightRepo) SetStatus(ctx context.Context, id uint64, status model.FlightStatus, actualArrival *time.Time) error {
	var res sql.Result
	var err error
	if actualArrival != nil {
		const q = `UPDATE flights SET status = ?, actual_arrival_utc = ? WHERE id = ?`
		res, err = r.db.ExecContext(ctx, q, string(status), actualArrival.UTC(), id)
	} else {
		const q = `UPDATE flights SET status = ? WHERE id = ?`
		res, err = r.db.ExecContext(ctx, q, string(status), id)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFlightNotFound
	}
	return nil
}

// AssignCrew links a crew member to a flight with an optional on-flight role
// label. Assigning the same pair twice is reported as ErrConflict.
func (r *FlightRepo) AssignCrew(ctx context.Context, fc model.FlightCrew) error {
	const q = `INSERT INTO flight_crew (flight_id, crew_id, role_on_flight) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, fc.FlightID, fc.CrewID, fc.RoleOnFlight)
	if isDupKey(err, "") {
		return ErrConflict
	}
	return err
}
