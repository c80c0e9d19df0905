// Package model defines the entity records stored in the database and the
// closed enumerations used across the service layer. Roles, flight states and
// booking states are typed strings rather than free-form values so that
// comparisons cannot silently drift.
package model

import "strings"

// Role is the access level of an application user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleAgent Role = "AGENT"
	RoleGuest Role = "GUEST"
)

// ParseRole normalizes a raw role string. Unknown values fall back to GUEST,
// mirroring registration behaviour where the role field is optional.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleAgent:
		return RoleAgent
	default:
		return RoleGuest
	}
}

// FlightStatus is the lifecycle state of a flight.
type FlightStatus string

const (
	FlightScheduled FlightStatus = "SCHEDULED"
	FlightDeparted  FlightStatus = "DEPARTED"
	FlightLanded    FlightStatus = "LANDED"
	FlightCanceled  FlightStatus = "CANCELED"
)

// ParseFlightStatus returns the matching status and whether the input was valid.
func ParseFlightStatus(s string) (FlightStatus, bool) {
	switch FlightStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case FlightScheduled:
		return FlightScheduled, true
	case FlightDeparted:
		return FlightDeparted, true
	case FlightLanded:
		return FlightLanded, true
	case FlightCanceled:
		return FlightCanceled, true
	}
	return "", false
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCanceled  BookingStatus = "CANCELED"
)

// CrewRole is the certified function of a crew member.
type CrewRole string

const (
	CrewPilot           CrewRole = "PILOT"
	CrewCoPilot         CrewRole = "COPILOT"
	CrewFlightAttendant CrewRole = "FLIGHT_ATTENDANT"
)

// ParseCrewRole returns the matching crew role and whether the input was valid.
func ParseCrewRole(s string) (CrewRole, bool) {
	switch CrewRole(strings.ToUpper(strings.TrimSpace(s))) {
	case CrewPilot:
		return CrewPilot, true
	case CrewCoPilot:
		return CrewCoPilot, true
	case CrewFlightAttendant:
		return CrewFlightAttendant, true
	}
	return "", false
}
