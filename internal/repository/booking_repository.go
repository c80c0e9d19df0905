package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// BookingRepo provides the persistence side of the booking flow: seat maps,
// fare lookups, the transactional booking+tickets insert and passenger-facing
// reads. Seat uniqueness is not checked in Go; the unique
// (flight_id, seat_number) index is the authority and a duplicate-key
// rejection is surfaced as ErrSeatTaken.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// refAttempts bounds booking-reference regeneration on collisions. With an
// 8-hex-character reference space a second collision in a row is already
// vanishingly unlikely.
const refAttempts = 5

// SeatMap returns the aircraft capacity for a flight and the set of seat
// labels already sold on it. ErrFlightNotFound is returned for an unknown
// flight id.
func (r *BookingRepo) SeatMap(ctx context.Context, flightID uint64) (int, map[string]struct{}, error) {
	const capQ = `SELECT a.capacity
	              FROM flights f
	              JOIN aircraft a ON a.id = f.aircraft_id
	              WHERE f.id = ?`
	var capacity int
	if err := r.db.QueryRowContext(ctx, capQ, flightID).Scan(&capacity); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil, ErrFlightNotFound
		}
		return 0, nil, err
	}
	const seatQ = `SELECT seat_number FROM tickets WHERE flight_id = ?`
	rows, err := r.db.QueryContext(ctx, seatQ, flightID)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()
	taken := make(map[string]struct{})
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return 0, nil, err
		}
		taken[strings.ToUpper(s)] = struct{}{}
	}
	return capacity, taken, rows.Err()
}

// MinFareCents returns the lowest fare sold on a flight, or 0 when the
// flight has no tickets yet.
func (r *BookingRepo) MinFareCents(ctx context.Context, flightID uint64) (int64, error) {
	const q = `SELECT COALESCE(MIN(fare_cents), 0) FROM tickets WHERE flight_id = ?`
	var fare int64
	err := r.db.QueryRowContext(ctx, q, flightID).Scan(&fare)
	return fare, err
}

// CreateBooking persists a confirmed booking and one ticket per seat in a
// single transaction. newRef supplies booking references; on a reference
// collision the insert is retried with a fresh reference up to refAttempts
// times. A duplicate seat (a concurrent booking committed first) rolls the
// transaction back and returns ErrSeatTaken.
func (r *BookingRepo) CreateBooking(ctx context.Context, passengerID, flightID uint64, seats []string, fareCents int64, newRef func() string) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b := &model.Booking{
		PassengerID: passengerID,
		Status:      model.BookingConfirmed,
	}
	for attempt := 0; ; attempt++ {
		b.BookingRef = newRef()
		err = r.insertBookingTx(ctx, tx, b)
		if err == nil {
			break
		}
		if err == errRefTaken && attempt < refAttempts-1 {
			continue
		}
		return nil, err
	}

	if err := r.insertTicketsTx(ctx, tx, b, flightID, seats, fareCents); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

func (r *BookingRepo) insertBookingTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (passenger_id, booking_ref, status) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.PassengerID, b.BookingRef, string(b.Status))
	if err != nil {
		if isDupKey(err, "uq_bookings_ref") {
			return errRefTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the row to pick up the booking_date default.
	const sel = `SELECT booking_date FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.BookingDate)
}

func (r *BookingRepo) insertTicketsTx(ctx context.Context, tx *sql.Tx, b *model.Booking, flightID uint64, seats []string, fareCents int64) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO tickets (booking_id, flight_id, seat_number, fare_cents, checked_in) VALUES `
	args := make([]interface{}, 0, len(seats)*5)
	for i, seat := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, b.ID, flightID, seat, fareCents, false)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isDupKey(err, "uq_tickets_flight_seat") {
			return ErrSeatTaken
		}
		return err
	}
	// Read the generated ticket ids back in seat order.
	const sel = `SELECT id, booking_id, flight_id, seat_number, fare_cents, checked_in
	             FROM tickets WHERE booking_id = ? ORDER BY seat_number`
	rows, err := tx.QueryContext(ctx, sel, b.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	b.Tickets = b.Tickets[:0]
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.BookingID, &t.FlightID, &t.SeatNumber, &t.FareCents, &t.CheckedIn); err != nil {
			return err
		}
		b.Tickets = append(b.Tickets, t)
	}
	return rows.Err()
}

// BookingDetail is a flat, read-only projection of a booking with its ticket
// legs and flight/route context. It is assembled from id-based joins rather
// than navigated object graphs.
type BookingDetail struct {
	ID            uint64          `json:"id"`
	BookingRef    string          `json:"booking_ref"`
	BookingDate   time.Time       `json:"booking_date"`
	Status        string          `json:"status"`
	PassengerName string          `json:"passenger_name"`
	PassportNo    string          `json:"passport_no"`
	Tickets       []BookingTicket `json:"tickets"`
}

// BookingTicket is one leg inside a BookingDetail.
type BookingTicket struct {
	TicketID     uint64    `json:"ticket_id"`
	FlightID     uint64    `json:"flight_id"`
	FlightNumber string    `json:"flight_number"`
	OriginIATA   string    `json:"origin_iata"`
	DestIATA     string    `json:"dest_iata"`
	DepartureUtc time.Time `json:"departure_utc"`
	ArrivalUtc   time.Time `json:"arrival_utc"`
	SeatNumber   string    `json:"seat_number"`
	FareCents    int64     `json:"fare_cents"`
	CheckedIn    bool      `json:"checked_in"`
}

// ByPassport returns all bookings for a passport, newest first, each with its
// tickets and flight/route detail. An unknown passport yields an empty slice.
func (r *BookingRepo) ByPassport(ctx context.Context, passport string) ([]BookingDetail, error) {
	passport = strings.ToUpper(strings.TrimSpace(passport))
	const q = `SELECT b.id, b.booking_ref, b.booking_date, b.status, p.full_name, p.passport_no
	           FROM bookings b
	           JOIN passengers p ON p.id = b.passenger_id
	           WHERE p.passport_no = ?
	           ORDER BY b.booking_date DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, passport)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.BookingRef, &d.BookingDate, &d.Status, &d.PassengerName, &d.PassportNo); err != nil {
			return nil, err
		}
		d.Tickets = []BookingTicket{}
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	// Fetch ticket legs for all bookings in one query.
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	legQ := `SELECT t.booking_id, t.id, t.flight_id, f.flight_number,
	                o.iata, d.iata, f.departure_utc, f.arrival_utc,
	                t.seat_number, t.fare_cents, t.checked_in
	         FROM tickets t
	         JOIN flights f  ON f.id = t.flight_id
	         JOIN routes r   ON r.id = f.route_id
	         JOIN airports o ON o.id = r.origin_airport_id
	         JOIN airports d ON d.id = r.dest_airport_id
	         WHERE t.booking_id IN (` + strings.Join(placeholders, ",") + `)
	         ORDER BY t.booking_id, f.departure_utc, t.seat_number`
	trows, err := r.db.QueryContext(ctx, legQ, ids...)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var bid uint64
		var t BookingTicket
		if err := trows.Scan(&bid, &t.TicketID, &t.FlightID, &t.FlightNumber,
			&t.OriginIATA, &t.DestIATA, &t.DepartureUtc, &t.ArrivalUtc,
			&t.SeatNumber, &t.FareCents, &t.CheckedIn); err != nil {
			return nil, err
		}
		if idx, ok := index[bid]; ok {
			details[idx].Tickets = append(details[idx].Tickets, t)
		}
	}
	return details, trows.Err()
}
