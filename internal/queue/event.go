// Package queue publishes and consumes booking events over RabbitMQ.
package queue

import "time"

// QueueBookingConfirmed is the durable queue that confirmation events are
// published to and consumed from.
const QueueBookingConfirmed = "booking.confirmed"

// BookingConfirmedEvent is emitted after a booking commits. Consumers use
// it for notification fan-out and the booking audit log.
type BookingConfirmedEvent struct {
	BookingID     uint64    `json:"booking_id"`
	BookingRef    string    `json:"booking_ref"`
	PassengerName string    `json:"passenger_name"`
	PassportNo    string    `json:"passport_no"`
	FlightNumber  string    `json:"flight_number"`
	OriginIATA    string    `json:"origin_iata"`
	DestIATA      string    `json:"dest_iata"`
	DepartureUtc  time.Time `json:"departure_utc"`
	Seats         []string  `json:"seats"`
	FareCents     int64     `json:"fare_cents"`
	TotalCents    int64     `json:"total_cents"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}
