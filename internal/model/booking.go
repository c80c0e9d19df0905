package model

import "time"

// Passenger is a row in the `passengers` table. PassportNo is unique; the
// booking flow upserts passengers by passport so repeat travellers keep a
// single identity.
type Passenger struct {
	ID          uint64    // passengers.id
	FullName    string    // passengers.full_name
	PassportNo  string    // passengers.passport_no (unique)
	Nationality *string   // passengers.nationality (nullable, 3-letter code)
	DOB         time.Time // passengers.dob
}

// Booking is a row in the `bookings` table. BookingRef is the human-facing
// PNR: "B" followed by eight upper-case hex characters, globally unique.
// A booking owns one or more tickets; deleting the booking cascades to them.
type Booking struct {
	ID          uint64        // bookings.id
	PassengerID uint64        // bookings.passenger_id
	BookingRef  string        // bookings.booking_ref (unique)
	BookingDate time.Time     // bookings.booking_date
	Status      BookingStatus // bookings.status
	Tickets     []Ticket      // populated on create and detail reads
}

// Ticket is a row in the `tickets` table. (FlightID, SeatNumber) is unique —
// the store-level seat allocation invariant. FareCents keeps money in integer
// cents so fare sums never accumulate float drift.
type Ticket struct {
	ID         uint64 // tickets.id
	BookingID  uint64 // tickets.booking_id
	FlightID   uint64 // tickets.flight_id
	SeatNumber string // tickets.seat_number (S001..S999)
	FareCents  int64  // tickets.fare_cents
	CheckedIn  bool   // tickets.checked_in
}

// Baggage is a row in the `baggage` table. Weight is stored in grams so that
// threshold comparisons stay exact. Rows cascade-delete with their ticket.
type Baggage struct {
	ID        uint64 // baggage.id
	TicketID  uint64 // baggage.ticket_id
	WeightG   int64  // baggage.weight_g (grams)
	TagNumber string // baggage.tag_number
}
