package model

import "time"

// Flight is a row in the `flights` table. (FlightNumber, DepartureUtc) is
// unique: the same number may fly on different days but never twice at the
// same departure instant.
//
// ArrivalUtc is the scheduled arrival. ActualArrivalUtc is recorded when the
// flight lands and stays null until then; on-time reporting only counts
// flights with a recorded actual arrival.
type Flight struct {
	ID               uint64       // flights.id
	FlightNumber     string       // flights.flight_number
	RouteID          uint64       // flights.route_id
	AircraftID       uint64       // flights.aircraft_id
	DepartureUtc     time.Time    // flights.departure_utc
	ArrivalUtc       time.Time    // flights.arrival_utc (scheduled)
	ActualArrivalUtc *time.Time   // flights.actual_arrival_utc (nullable)
	Status           FlightStatus // flights.status
}

// CrewMember is a row in the `crew_members` table.
type CrewMember struct {
	ID        uint64   // crew_members.id
	FullName  string   // crew_members.full_name
	Role      CrewRole // crew_members.role
	LicenseNo *string  // crew_members.license_no (nullable)
}

// FlightCrew links a crew member to a flight. (FlightID, CrewID) is the
// composite primary key; RoleOnFlight is a free label such as "Captain".
type FlightCrew struct {
	FlightID     uint64  // flight_crew.flight_id
	CrewID       uint64  // flight_crew.crew_id
	RoleOnFlight *string // flight_crew.role_on_flight (nullable)
}
