package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/repository"
)

// AdminService covers the fleet and schedule mutations reserved for the
// ADMIN role: airports, routes, aircraft, flights, crew and maintenance.
type AdminService struct {
	airports    *repository.AirportRepo
	routes      *repository.RouteRepo
	aircraft    *repository.AircraftRepo
	flights     *repository.FlightRepo
	crew        *repository.CrewRepo
	maintenance *repository.MaintenanceRepo
}

func NewAdminService(airports *repository.AirportRepo, routes *repository.RouteRepo,
	aircraft *repository.AircraftRepo, flights *repository.FlightRepo,
	crew *repository.CrewRepo, maintenance *repository.MaintenanceRepo) *AdminService {
	return &AdminService{
		airports:    airports,
		routes:      routes,
		aircraft:    aircraft,
		flights:     flights,
		crew:        crew,
		maintenance: maintenance,
	}
}

func isIATA(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// CreateAirport validates and stores a new airport.
func (s *AdminService) CreateAirport(ctx context.Context, iata, name, city, country, timezone string) (model.Airport, error) {
	iata = strings.ToUpper(strings.TrimSpace(iata))
	if !isIATA(iata) {
		return model.Airport{}, errInvalid("iata must be exactly 3 letters")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Airport{}, errInvalid("name is required")
	}
	a := model.Airport{
		IATA:     iata,
		Name:     name,
		City:     strings.TrimSpace(city),
		Country:  strings.TrimSpace(country),
		Timezone: strings.TrimSpace(timezone),
	}
	if err := s.airports.Create(ctx, &a); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return model.Airport{}, errConflict("airport " + iata + " already exists")
		}
		return model.Airport{}, err
	}
	return a, nil
}

// CreateRoute connects two existing airports. A route never loops back to
// its own origin.
func (s *AdminService) CreateRoute(ctx context.Context, originIATA, destIATA string, distanceKm uint32) (model.Route, error) {
	originIATA = strings.ToUpper(strings.TrimSpace(originIATA))
	destIATA = strings.ToUpper(strings.TrimSpace(destIATA))
	if !isIATA(originIATA) || !isIATA(destIATA) {
		return model.Route{}, errInvalid("origin and dest must be 3-letter IATA codes")
	}
	if originIATA == destIATA {
		return model.Route{}, errInvalid("origin and dest must differ")
	}
	if distanceKm == 0 {
		return model.Route{}, errInvalid("distance_km must be positive")
	}
	origin, err := s.airports.GetByIATA(ctx, originIATA)
	if err != nil {
		if errors.Is(err, repository.ErrAirportNotFound) {
			return model.Route{}, errNotFound("origin airport " + originIATA + " not found")
		}
		return model.Route{}, err
	}
	dest, err := s.airports.GetByIATA(ctx, destIATA)
	if err != nil {
		if errors.Is(err, repository.ErrAirportNotFound) {
			return model.Route{}, errNotFound("dest airport " + destIATA + " not found")
		}
		return model.Route{}, err
	}
	rt := model.Route{OriginAirportID: origin.ID, DestAirportID: dest.ID, DistanceKm: distanceKm}
	if err := s.routes.Create(ctx, &rt); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return model.Route{}, errConflict("route " + originIATA + "-" + destIATA + " already exists")
		}
		return model.Route{}, err
	}
	return rt, nil
}

// CreateAircraft registers an airframe. Capacity is capped at 999 because
// seat labels only go up to S999.
func (s *AdminService) CreateAircraft(ctx context.Context, tail, aircraftModel string, capacity uint32) (model.Aircraft, error) {
	tail = strings.ToUpper(strings.TrimSpace(tail))
	if tail == "" {
		return model.Aircraft{}, errInvalid("tail_number is required")
	}
	if capacity < 1 || capacity > 999 {
		return model.Aircraft{}, errInvalid("capacity must be between 1 and 999")
	}
	a := model.Aircraft{TailNumber: tail, Model: strings.TrimSpace(aircraftModel), Capacity: capacity}
	if err := s.aircraft.Create(ctx, &a); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return model.Aircraft{}, errConflict("aircraft " + tail + " already exists")
		}
		return model.Aircraft{}, err
	}
	return a, nil
}

// CreateFlight schedules a flight on an existing route and aircraft.
func (s *AdminService) CreateFlight(ctx context.Context, number, originIATA, destIATA, tail string, departureUtc, arrivalUtc time.Time) (model.Flight, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return model.Flight{}, errInvalid("flight_number is required")
	}
	if !arrivalUtc.After(departureUtc) {
		return model.Flight{}, errInvalid("arrival_utc must be after departure_utc")
	}
	rt, err := s.routes.GetByIATAPair(ctx, originIATA, destIATA)
	if err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return model.Flight{}, errNotFound("no route from " + strings.ToUpper(originIATA) + " to " + strings.ToUpper(destIATA))
		}
		return model.Flight{}, err
	}
	ac, err := s.aircraft.GetByTail(ctx, tail)
	if err != nil {
		if errors.Is(err, repository.ErrAircraftNotFound) {
			return model.Flight{}, errNotFound("aircraft " + strings.ToUpper(tail) + " not found")
		}
		return model.Flight{}, err
	}
	f := model.Flight{
		FlightNumber: number,
		RouteID:      rt.ID,
		AircraftID:   ac.ID,
		DepartureUtc: departureUtc.UTC(),
		ArrivalUtc:   arrivalUtc.UTC(),
		Status:       model.FlightScheduled,
	}
	if err := s.flights.Create(ctx, &f); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return model.Flight{}, errConflict("flight " + number + " already scheduled at that departure")
		}
		return model.Flight{}, err
	}
	return f, nil
}

// SetFlightStatus transitions a flight. Marking a flight LANDED records the
// actual arrival, defaulting to now when the caller omits it.
func (s *AdminService) SetFlightStatus(ctx context.Context, flightID uint64, rawStatus string, actualArrival *time.Time) error {
	status, ok := model.ParseFlightStatus(rawStatus)
	if !ok {
		return errInvalid("unknown flight status %q", rawStatus)
	}
	if status == model.FlightLanded && actualArrival == nil {
		now := time.Now().UTC()
		actualArrival = &now
	}
	if status != model.FlightLanded {
		actualArrival = nil
	}
	if err := s.flights.SetStatus(ctx, flightID, status, actualArrival); err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return errNotFound("flight not found")
		}
		return err
	}
	return nil
}

// CreateCrew registers a crew member.
func (s *AdminService) CreateCrew(ctx context.Context, fullName, rawRole string, licenseNo *string) (model.CrewMember, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return model.CrewMember{}, errInvalid("full_name is required")
	}
	role, ok := model.ParseCrewRole(rawRole)
	if !ok {
		return model.CrewMember{}, errInvalid("unknown crew role %q", rawRole)
	}
	c := model.CrewMember{FullName: fullName, Role: role, LicenseNo: licenseNo}
	if err := s.crew.Create(ctx, &c); err != nil {
		return model.CrewMember{}, err
	}
	return c, nil
}

// AssignCrew puts a crew member on a flight. Double assignment is a
// conflict; the conflict report catches overlapping duty windows later.
func (s *AdminService) AssignCrew(ctx context.Context, flightID, crewID uint64, roleOnFlight *string) error {
	if _, err := s.flights.GetByID(ctx, flightID); err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return errNotFound("flight not found")
		}
		return err
	}
	if _, err := s.crew.GetByID(ctx, crewID); err != nil {
		if errors.Is(err, repository.ErrCrewNotFound) {
			return errNotFound("crew member not found")
		}
		return err
	}
	fc := model.FlightCrew{FlightID: flightID, CrewID: crewID, RoleOnFlight: roleOnFlight}
	if err := s.flights.AssignCrew(ctx, fc); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errConflict("crew member already assigned to this flight")
		}
		return err
	}
	return nil
}

// ScheduleMaintenance opens a maintenance task against an aircraft tail.
func (s *AdminService) ScheduleMaintenance(ctx context.Context, tail, workType string, notes *string, scheduledUtc time.Time, grounds bool) (model.AircraftMaintenance, error) {
	workType = strings.TrimSpace(workType)
	if workType == "" {
		return model.AircraftMaintenance{}, errInvalid("work_type is required")
	}
	ac, err := s.aircraft.GetByTail(ctx, tail)
	if err != nil {
		if errors.Is(err, repository.ErrAircraftNotFound) {
			return model.AircraftMaintenance{}, errNotFound("aircraft " + strings.ToUpper(tail) + " not found")
		}
		return model.AircraftMaintenance{}, err
	}
	m := model.AircraftMaintenance{
		AircraftID:      ac.ID,
		WorkType:        workType,
		Notes:           notes,
		ScheduledUtc:    scheduledUtc.UTC(),
		GroundsAircraft: grounds,
	}
	if err := s.maintenance.Schedule(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrAircraftNotFound) {
			return model.AircraftMaintenance{}, errNotFound("aircraft not found")
		}
		return model.AircraftMaintenance{}, err
	}
	return m, nil
}

// CompleteMaintenance closes an open task. Completing an already-closed or
// unknown task is a not-found.
func (s *AdminService) CompleteMaintenance(ctx context.Context, taskID uint64) error {
	if err := s.maintenance.Complete(ctx, taskID, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrMaintenanceNotFound) {
			return errNotFound("open maintenance task not found")
		}
		return err
	}
	return nil
}
