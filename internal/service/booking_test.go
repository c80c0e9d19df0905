package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/queue"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/repository"
)

// ----- fakes -----

type fakeTokens struct {
	user model.User
	err  error
}

func (f *fakeTokens) ValidateToken(ctx context.Context, token string) (model.User, error) {
	if f.err != nil {
		return model.User{}, f.err
	}
	return f.user, nil
}

type fakeBookingStore struct {
	capacity  int
	taken     map[string]struct{}
	minFare   int64
	createErr error

	gotSeats []string
	gotFare  int64
	nextID   uint64
}

func (f *fakeBookingStore) SeatMap(ctx context.Context, flightID uint64) (int, map[string]struct{}, error) {
	if f.capacity == 0 {
		return 0, nil, repository.ErrFlightNotFound
	}
	return f.capacity, f.taken, nil
}

func (f *fakeBookingStore) MinFareCents(ctx context.Context, flightID uint64) (int64, error) {
	return f.minFare, nil
}

func (f *fakeBookingStore) CreateBooking(ctx context.Context, passengerID, flightID uint64, seats []string, fareCents int64, newRef func() string) (*model.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.gotSeats = seats
	f.gotFare = fareCents
	f.nextID++
	b := &model.Booking{
		ID:          f.nextID,
		PassengerID: passengerID,
		BookingRef:  newRef(),
		BookingDate: time.Now().UTC(),
		Status:      model.BookingConfirmed,
	}
	for _, s := range seats {
		b.Tickets = append(b.Tickets, model.Ticket{BookingID: b.ID, FlightID: flightID, SeatNumber: s, FareCents: fareCents})
	}
	return b, nil
}

func (f *fakeBookingStore) ByPassport(ctx context.Context, passport string) ([]repository.BookingDetail, error) {
	return nil, nil
}

type fakePassengers struct {
	created []model.Passenger
}

func (f *fakePassengers) GetOrCreate(ctx context.Context, p *model.Passenger) error {
	// Same passport keeps a single identity.
	for _, existing := range f.created {
		if existing.PassportNo == p.PassportNo {
			p.ID = existing.ID
			return nil
		}
	}
	p.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, *p)
	return nil
}

type fakeFlights struct {
	flight model.Flight
	err    error
}

func (f *fakeFlights) GetByID(ctx context.Context, id uint64) (model.Flight, error) {
	if f.err != nil {
		return model.Flight{}, f.err
	}
	return f.flight, nil
}

type fakeRoutes struct{}

func (fakeRoutes) IATAPair(ctx context.Context, routeID uint64) (string, string, error) {
	return "MCT", "DXB", nil
}

type fakePublisher struct {
	events []queue.BookingConfirmedEvent
}

func (f *fakePublisher) PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error {
	f.events = append(f.events, ev)
	return nil
}

// ----- helpers -----

func scheduledFlight() model.Flight {
	dep := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	return model.Flight{
		ID:           7,
		FlightNumber: "FM101",
		RouteID:      3,
		AircraftID:   2,
		DepartureUtc: dep,
		ArrivalUtc:   dep.Add(90 * time.Minute),
		Status:       model.FlightScheduled,
	}
}

func validRequest(seats int) BookRequest {
	return BookRequest{
		FlightID: 7,
		Seats:    seats,
		Passenger: PassengerInput{
			FullName:   "Salim Al-Harthy",
			PassportNo: "p1234567",
			DOB:        "1990-04-12",
		},
	}
}

func newTestService(store *fakeBookingStore, flights *fakeFlights, pub *fakePublisher) (*BookingService, *fakePassengers) {
	pax := &fakePassengers{}
	var events EventPublisher
	if pub != nil {
		events = pub
	}
	svc := NewBookingService(&fakeTokens{user: model.User{ID: 1, Role: model.RoleGuest}},
		store, pax, flights, fakeRoutes{}, events, 9900)
	return svc, pax
}

// ----- tests -----

func TestBookAllocatesLowestFreeSeats(t *testing.T) {
	store := &fakeBookingStore{capacity: 5, taken: map[string]struct{}{"S002": {}}}
	pub := &fakePublisher{}
	svc, pax := newTestService(store, &fakeFlights{flight: scheduledFlight()}, pub)

	resp, err := svc.Book(context.Background(), "tok", validRequest(2))
	require.NoError(t, err)

	assert.Equal(t, []string{"S001", "S003"}, resp.Seats)
	assert.Equal(t, int64(9900), resp.FareCents, "fallback fare applies when nothing sold yet")
	assert.Equal(t, int64(19800), resp.TotalCents)
	assert.Regexp(t, `^B[0-9A-F]{8}$`, resp.BookingRef)

	require.Len(t, pax.created, 1)
	assert.Equal(t, "P1234567", pax.created[0].PassportNo, "passport stored upper case")

	require.Len(t, pub.events, 1)
	assert.Equal(t, "FM101", pub.events[0].FlightNumber)
	assert.Equal(t, "MCT", pub.events[0].OriginIATA)
	assert.Equal(t, int64(19800), pub.events[0].TotalCents)
}

func TestBookSoldOut(t *testing.T) {
	t.Run("full flight", func(t *testing.T) {
		store := &fakeBookingStore{capacity: 2, taken: map[string]struct{}{"S001": {}, "S002": {}}}
		svc, _ := newTestService(store, &fakeFlights{flight: scheduledFlight()}, nil)

		_, err := svc.Book(context.Background(), "tok", validRequest(1))
		var se *Error
		require.ErrorAs(t, err, &se)
		assert.Equal(t, KindSoldOut, se.Kind)
		assert.Equal(t, 0, se.SeatsRemaining)
	})

	t.Run("not enough left", func(t *testing.T) {
		store := &fakeBookingStore{capacity: 3, taken: map[string]struct{}{"S002": {}}}
		svc, _ := newTestService(store, &fakeFlights{flight: scheduledFlight()}, nil)

		_, err := svc.Book(context.Background(), "tok", validRequest(3))
		var se *Error
		require.ErrorAs(t, err, &se)
		assert.Equal(t, KindSoldOut, se.Kind)
		assert.Equal(t, 2, se.SeatsRemaining)
	})
}

func TestBookFareChain(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		store := &fakeBookingStore{capacity: 5, taken: map[string]struct{}{}, minFare: 12000}
		svc, _ := newTestService(store, &fakeFlights{flight: scheduledFlight()}, nil)

		req := validRequest(1)
		override := int64(15500)
		req.FareOverrideCents = &override

		resp, err := svc.Book(context.Background(), "tok", req)
		require.NoError(t, err)
		assert.Equal(t, int64(15500), resp.FareCents)
	})

	t.Run("min sold fare", func(t *testing.T) {
		store := &fakeBookingStore{capacity: 5, taken: map[string]struct{}{"S001": {}}, minFare: 12000}
		svc, _ := newTestService(store, &fakeFlights{flight: scheduledFlight()}, nil)

		resp, err := svc.Book(context.Background(), "tok", validRequest(1))
		require.NoError(t, err)
		assert.Equal(t, int64(12000), resp.FareCents)
	})
}

func TestBookSeatConflict(t *testing.T) {
	store := &fakeBookingStore{capacity: 5, taken: map[string]struct{}{}, createErr: repository.ErrSeatTaken}
	svc, _ := newTestService(store, &fakeFlights{flight: scheduledFlight()}, nil)

	_, err := svc.Book(context.Background(), "tok", validRequest(1))
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindSeatConflict, se.Kind)
}

func TestBookRejectsBadToken(t *testing.T) {
	svc := NewBookingService(&fakeTokens{err: errUnauthorized("invalid or expired token")},
		&fakeBookingStore{capacity: 5}, &fakePassengers{}, &fakeFlights{flight: scheduledFlight()},
		fakeRoutes{}, nil, 9900)

	_, err := svc.Book(context.Background(), "bad", validRequest(1))
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindUnauthorized, se.Kind)
}

func TestBookFlightStates(t *testing.T) {
	t.Run("unknown flight", func(t *testing.T) {
		svc, _ := newTestService(&fakeBookingStore{capacity: 5},
			&fakeFlights{err: repository.ErrFlightNotFound}, nil)

		_, err := svc.Book(context.Background(), "tok", validRequest(1))
		var se *Error
		require.ErrorAs(t, err, &se)
		assert.Equal(t, KindNotFound, se.Kind)
	})

	t.Run("departed flight", func(t *testing.T) {
		fl := scheduledFlight()
		fl.Status = model.FlightDeparted
		svc, _ := newTestService(&fakeBookingStore{capacity: 5, taken: map[string]struct{}{}},
			&fakeFlights{flight: fl}, nil)

		_, err := svc.Book(context.Background(), "tok", validRequest(1))
		var se *Error
		require.ErrorAs(t, err, &se)
		assert.Equal(t, KindConflict, se.Kind)
	})
}

func TestBookValidation(t *testing.T) {
	svc, _ := newTestService(&fakeBookingStore{capacity: 5, taken: map[string]struct{}{}},
		&fakeFlights{flight: scheduledFlight()}, nil)

	cases := []struct {
		name   string
		mutate func(*BookRequest)
	}{
		{"zero seats", func(r *BookRequest) { r.Seats = 0 }},
		{"missing flight", func(r *BookRequest) { r.FlightID = 0 }},
		{"missing passport", func(r *BookRequest) { r.Passenger.PassportNo = " " }},
		{"bad dob format", func(r *BookRequest) { r.Passenger.DOB = "12-04-1990" }},
		{"future dob", func(r *BookRequest) { r.Passenger.DOB = "2100-01-01" }},
		{"non-positive override", func(r *BookRequest) { z := int64(0); r.FareOverrideCents = &z }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(1)
			tc.mutate(&req)
			_, err := svc.Book(context.Background(), "tok", req)
			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, KindInvalidRequest, se.Kind)
		})
	}
}

func TestBookRepeatPassengerKeepsIdentity(t *testing.T) {
	store := &fakeBookingStore{capacity: 10, taken: map[string]struct{}{}}
	svc, pax := newTestService(store, &fakeFlights{flight: scheduledFlight()}, nil)

	first, err := svc.Book(context.Background(), "tok", validRequest(1))
	require.NoError(t, err)
	second, err := svc.Book(context.Background(), "tok", validRequest(1))
	require.NoError(t, err)

	assert.Equal(t, first.PassengerID, second.PassengerID)
	assert.Len(t, pax.created, 1)
}

func TestAllocateSeatsFillsGaps(t *testing.T) {
	taken := map[string]struct{}{"S001": {}, "S003": {}, "S004": {}}
	got := allocateSeats(6, taken, 3)
	assert.Equal(t, []string{"S002", "S005", "S006"}, got)
}

func TestByPassportRequiresValue(t *testing.T) {
	svc, _ := newTestService(&fakeBookingStore{capacity: 5}, &fakeFlights{flight: scheduledFlight()}, nil)

	_, err := svc.ByPassport(context.Background(), "tok", "   ")
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindInvalidRequest, se.Kind)
}

func TestErrSoldOutUnwrap(t *testing.T) {
	err := errSoldOut(3)
	assert.False(t, errors.Is(err, repository.ErrSeatTaken))
	assert.Equal(t, "not enough seats: 3 remaining", err.Error())
}
