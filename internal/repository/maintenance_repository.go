package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// ErrMaintenanceNotFound is returned when a maintenance task lookup yields no
// rows.
var ErrMaintenanceNotFound = errors.New("maintenance task not found")

// MaintenanceRepo provides persistence for aircraft maintenance tasks.
type MaintenanceRepo struct {
	db *sql.DB
}

// NewMaintenanceRepo constructs a MaintenanceRepo with the given DB handle.
func NewMaintenanceRepo(db *sql.DB) *MaintenanceRepo { return &MaintenanceRepo{db: db} }

// Schedule inserts an open maintenance task for an aircraft.
func (r *MaintenanceRepo) Schedule(ctx context.Context, m *model.AircraftMaintenance) error {
	const q = `INSERT INTO aircraft_maintenance (aircraft_id, work_type, notes, scheduled_utc, grounds_aircraft)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.AircraftID, m.WorkType, m.Notes, m.ScheduledUtc.UTC(), m.GroundsAircraft)
	if err != nil {
		if isFKViolation(err) {
			return ErrAircraftNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Complete stamps a task's completion time. Completing an unknown or already
// completed task returns ErrMaintenanceNotFound.
func (r *MaintenanceRepo) Complete(ctx context.Context, taskID uint64, completedUtc time.Time) error {
	const q = `UPDATE aircraft_maintenance SET completed_utc = ? WHERE id = ? AND completed_utc IS NULL`
	res, err := r.db.ExecContext(ctx, q, completedUtc.UTC(), taskID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMaintenanceNotFound
	}
	return nil
}

// OpenForTail lists a tail number's open tasks, soonest scheduled first.
func (r *MaintenanceRepo) OpenForTail(ctx context.Context, tail string) ([]model.AircraftMaintenance, error) {
	const q = `SELECT m.id, m.aircraft_id, m.work_type, m.notes, m.scheduled_utc, m.completed_utc, m.grounds_aircraft
	           FROM aircraft_maintenance m
	           JOIN aircraft a ON a.id = m.aircraft_id
	           WHERE a.tail_number = UPPER(?) AND m.completed_utc IS NULL
	           ORDER BY m.scheduled_utc`
	rows, err := r.db.QueryContext(ctx, q, tail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.AircraftMaintenance, 0)
	for rows.Next() {
		var m model.AircraftMaintenance
		var notes sql.NullString
		var completed sql.NullTime
		if err := rows.Scan(&m.ID, &m.AircraftID, &m.WorkType, &notes, &m.ScheduledUtc, &completed, &m.GroundsAircraft); err != nil {
			return nil, err
		}
		if notes.Valid {
			s := notes.String
			m.Notes = &s
		}
		if completed.Valid {
			t := completed.Time.UTC()
			m.CompletedUtc = &t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
