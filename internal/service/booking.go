package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/queue"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/repository"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/utils"
)

// TokenValidator resolves a bearer token to its user. AuthService is the
// production implementation.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (model.User, error)
}

// BookingStore is the slice of BookingRepo the booking flow needs.
type BookingStore interface {
	SeatMap(ctx context.Context, flightID uint64) (int, map[string]struct{}, error)
	MinFareCents(ctx context.Context, flightID uint64) (int64, error)
	CreateBooking(ctx context.Context, passengerID, flightID uint64, seats []string, fareCents int64, newRef func() string) (*model.Booking, error)
	ByPassport(ctx context.Context, passport string) ([]repository.BookingDetail, error)
}

// PassengerStore upserts passengers by passport.
type PassengerStore interface {
	GetOrCreate(ctx context.Context, p *model.Passenger) error
}

// FlightStore reads flight headers for booking validation.
type FlightStore interface {
	GetByID(ctx context.Context, id uint64) (model.Flight, error)
}

// RouteResolver maps a route id to its IATA pair for the confirmation event.
type RouteResolver interface {
	IATAPair(ctx context.Context, routeID uint64) (origin, dest string, err error)
}

// EventPublisher emits the confirmation event after a booking commits.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// BookingService implements the booking flow: token check, passenger
// upsert, seat allocation, fare resolution and the transactional insert.
type BookingService struct {
	tokens        TokenValidator
	bookings      BookingStore
	passengers    PassengerStore
	flights       FlightStore
	routes        RouteResolver
	events        EventPublisher // nil disables publishing
	fallbackCents int64
	newRef        func() string
}

// NewBookingService wires the flow. events may be nil when no broker is
// configured.
func NewBookingService(tokens TokenValidator, bookings BookingStore, passengers PassengerStore,
	flights FlightStore, routes RouteResolver, events EventPublisher, fallbackCents int64) *BookingService {
	return &BookingService{
		tokens:        tokens,
		bookings:      bookings,
		passengers:    passengers,
		flights:       flights,
		routes:        routes,
		events:        events,
		fallbackCents: fallbackCents,
		newRef:        utils.NewBookingRef,
	}
}

// PassengerInput identifies the travelling passenger. Passport is the
// upsert key; name and DOB fill the row on first sight.
type PassengerInput struct {
	FullName    string  `json:"full_name"`
	PassportNo  string  `json:"passport_no"`
	Nationality *string `json:"nationality,omitempty"`
	DOB         string  `json:"dob"` // YYYY-MM-DD
}

// BookRequest asks for N seats on one flight. FareOverrideCents, when set,
// wins over the min-sold-fare lookup.
type BookRequest struct {
	FlightID          uint64         `json:"flight_id"`
	Passenger         PassengerInput `json:"passenger"`
	Seats             int            `json:"seats"`
	FareOverrideCents *int64         `json:"fare_override_cents,omitempty"`
}

// BookResponse is the confirmed booking returned to the caller.
type BookResponse struct {
	BookingID   uint64    `json:"booking_id"`
	BookingRef  string    `json:"booking_ref"`
	PassengerID uint64    `json:"passenger_id"`
	FlightID    uint64    `json:"flight_id"`
	Seats       []string  `json:"seats"`
	FareCents   int64     `json:"fare_cents"`
	TotalCents  int64     `json:"total_cents"`
	BookingDate time.Time `json:"booking_date"`
}

// Book runs the full booking flow for a bearer token holder. Seats are
// assigned lowest-label-first from whatever is free; callers cannot pick
// seats. Concurrent bookings racing for the same label surface as a seat
// conflict after the database rejects the duplicate.
func (s *BookingService) Book(ctx context.Context, token string, req BookRequest) (*BookResponse, error) {
	if _, err := s.tokens.ValidateToken(ctx, token); err != nil {
		return nil, err
	}

	p, err := s.validateBookRequest(req)
	if err != nil {
		return nil, err
	}

	fl, err := s.flights.GetByID(ctx, req.FlightID)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return nil, errNotFound("flight not found")
		}
		return nil, err
	}
	if fl.Status != model.FlightScheduled {
		return nil, errConflict("flight is not open for booking")
	}

	if err := s.passengers.GetOrCreate(ctx, &p); err != nil {
		return nil, err
	}

	capacity, taken, err := s.bookings.SeatMap(ctx, req.FlightID)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return nil, errNotFound("flight not found")
		}
		return nil, err
	}
	remaining := capacity - len(taken)
	if remaining < req.Seats {
		return nil, errSoldOut(remaining)
	}

	seats := allocateSeats(capacity, taken, req.Seats)

	fare, err := s.resolveFare(ctx, req.FlightID, req.FareOverrideCents)
	if err != nil {
		return nil, err
	}

	b, err := s.bookings.CreateBooking(ctx, p.ID, req.FlightID, seats, fare, s.newRef)
	if err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return nil, errSeatConflict("seat was taken by a concurrent booking, retry")
		}
		return nil, err
	}

	s.publishConfirmed(ctx, b, p, fl, seats, fare)

	return &BookResponse{
		BookingID:   b.ID,
		BookingRef:  b.BookingRef,
		PassengerID: p.ID,
		FlightID:    req.FlightID,
		Seats:       seats,
		FareCents:   fare,
		TotalCents:  fare * int64(len(seats)),
		BookingDate: b.BookingDate,
	}, nil
}

// ByPassport lists a passenger's bookings, newest first. Any valid token
// may look up any passport; agents book on behalf of walk-in passengers.
func (s *BookingService) ByPassport(ctx context.Context, token, passport string) ([]repository.BookingDetail, error) {
	if _, err := s.tokens.ValidateToken(ctx, token); err != nil {
		return nil, err
	}
	passport = strings.TrimSpace(passport)
	if passport == "" {
		return nil, errInvalid("passport is required")
	}
	return s.bookings.ByPassport(ctx, passport)
}

func (s *BookingService) validateBookRequest(req BookRequest) (model.Passenger, error) {
	if req.FlightID == 0 {
		return model.Passenger{}, errInvalid("flight_id is required")
	}
	if req.Seats < 1 {
		return model.Passenger{}, errInvalid("seats must be at least 1")
	}
	name := strings.TrimSpace(req.Passenger.FullName)
	passport := strings.ToUpper(strings.TrimSpace(req.Passenger.PassportNo))
	if name == "" || passport == "" {
		return model.Passenger{}, errInvalid("passenger full_name and passport_no are required")
	}
	dob, err := time.Parse("2006-01-02", req.Passenger.DOB)
	if err != nil {
		return model.Passenger{}, errInvalid("passenger dob must be YYYY-MM-DD")
	}
	if !dob.Before(time.Now().UTC()) {
		return model.Passenger{}, errInvalid("passenger dob must be in the past")
	}
	if req.FareOverrideCents != nil && *req.FareOverrideCents <= 0 {
		return model.Passenger{}, errInvalid("fare_override_cents must be positive")
	}
	return model.Passenger{
		FullName:    name,
		PassportNo:  passport,
		Nationality: req.Passenger.Nationality,
		DOB:         dob,
	}, nil
}

// allocateSeats picks the count lowest free labels scanning S001 upward.
func allocateSeats(capacity int, taken map[string]struct{}, count int) []string {
	out := make([]string, 0, count)
	for n := 1; n <= capacity && len(out) < count; n++ {
		label := utils.SeatLabel(n)
		if _, ok := taken[label]; ok {
			continue
		}
		out = append(out, label)
	}
	return out
}

// resolveFare applies the pricing chain: explicit override, then the lowest
// fare already sold on the flight, then the configured fallback.
func (s *BookingService) resolveFare(ctx context.Context, flightID uint64, override *int64) (int64, error) {
	if override != nil {
		return *override, nil
	}
	min, err := s.bookings.MinFareCents(ctx, flightID)
	if err != nil {
		return 0, err
	}
	if min > 0 {
		return min, nil
	}
	return s.fallbackCents, nil
}

func (s *BookingService) publishConfirmed(ctx context.Context, b *model.Booking, p model.Passenger, fl model.Flight, seats []string, fare int64) {
	if s.events == nil {
		return
	}
	origin, dest, err := s.routes.IATAPair(ctx, fl.RouteID)
	if err != nil {
		log.Printf("booking: resolve route for event failed: %v", err)
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:     b.ID,
		BookingRef:    b.BookingRef,
		PassengerName: p.FullName,
		PassportNo:    p.PassportNo,
		FlightNumber:  fl.FlightNumber,
		OriginIATA:    origin,
		DestIATA:      dest,
		DepartureUtc:  fl.DepartureUtc,
		Seats:         seats,
		FareCents:     fare,
		TotalCents:    fare * int64(len(seats)),
		ConfirmedAt:   time.Now().UTC(),
	}
	// Publish failures are logged by the publisher and never fail a booking.
	_ = s.events.PublishBookingConfirmed(ctx, ev)
}
