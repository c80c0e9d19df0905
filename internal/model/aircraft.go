package model

import "time"

// Aircraft is a row in the `aircraft` table. Capacity bounds the seat label
// space for every flight operated by the airframe; labels run S001..S999 so
// capacities above 999 are rejected at creation time.
type Aircraft struct {
	ID         uint64    // aircraft.id
	TailNumber string    // aircraft.tail_number (unique)
	Model      string    // aircraft.model
	Capacity   uint32    // aircraft.capacity (1..999)
	CreatedAt  time.Time // aircraft.created_at
}

// AircraftMaintenance is a row in the `aircraft_maintenance` table. A task
// with a null CompletedUtc is still open. GroundsAircraft marks work that
// takes the airframe out of service while open.
type AircraftMaintenance struct {
	ID              uint64     // aircraft_maintenance.id
	AircraftID      uint64     // aircraft_maintenance.aircraft_id
	WorkType        string     // aircraft_maintenance.work_type (A-check, C-check, ...)
	Notes           *string    // aircraft_maintenance.notes (nullable)
	ScheduledUtc    time.Time  // aircraft_maintenance.scheduled_utc
	CompletedUtc    *time.Time // aircraft_maintenance.completed_utc (null = open)
	GroundsAircraft bool       // aircraft_maintenance.grounds_aircraft
}
