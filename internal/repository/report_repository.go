package repository

import (
	"context"
	"database/sql"
	"time"
)

// ReportRepo runs the read-only aggregate queries behind the reporting
// endpoints. Queries that need non-trivial pairing or windowing return flat
// rows; the service layer finishes the computation.
type ReportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// ManifestRow is one flight on a daily departure manifest.
type ManifestRow struct {
	FlightID     uint64    `json:"flight_id"`
	FlightNumber string    `json:"flight_number"`
	OriginIATA   string    `json:"origin_iata"`
	DestIATA     string    `json:"dest_iata"`
	DepartureUtc time.Time `json:"departure_utc"`
	ArrivalUtc   time.Time `json:"arrival_utc"`
	TicketsSold  int       `json:"tickets_sold"`
	CheckedIn    int       `json:"checked_in"`
}

// DailyManifest lists flights departing on the given UTC day with ticket
// counts, ordered by departure.
func (r *ReportRepo) DailyManifest(ctx context.Context, day time.Time) ([]ManifestRow, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	const q = `SELECT f.id, f.flight_number, o.iata, d.iata, f.departure_utc, f.arrival_utc,
		       COUNT(t.id), COALESCE(SUM(t.checked_in), 0)
		FROM flights f
		JOIN routes r   ON r.id = f.route_id
		JOIN airports o ON o.id = r.origin_airport_id
		JOIN airports d ON d.id = r.dest_airport_id
		LEFT JOIN tickets t ON t.flight_id = f.id
		WHERE f.departure_utc >= ? AND f.departure_utc < ?
		GROUP BY f.id, f.flight_number, o.iata, d.iata, f.departure_utc, f.arrival_utc
		ORDER BY f.departure_utc ASC`
	rows, err := r.db.QueryContext(ctx, q, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ManifestRow, 0)
	for rows.Next() {
		var m ManifestRow
		if err := rows.Scan(&m.FlightID, &m.FlightNumber, &m.OriginIATA, &m.DestIATA,
			&m.DepartureUtc, &m.ArrivalUtc, &m.TicketsSold, &m.CheckedIn); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RouteRevenueRow aggregates revenue per origin/destination pair.
type RouteRevenueRow struct {
	OriginIATA   string `json:"origin_iata"`
	DestIATA     string `json:"dest_iata"`
	Flights      int    `json:"flights"`
	Tickets      int    `json:"tickets"`
	RevenueCents int64  `json:"revenue_cents"`
}

// TopRoutesByRevenue returns the top N routes by ticket revenue over the
// departure window [fromUtc, toUtc].
func (r *ReportRepo) TopRoutesByRevenue(ctx context.Context, fromUtc, toUtc time.Time, topN int) ([]RouteRevenueRow, error) {
	const q = `SELECT o.iata, d.iata, COUNT(DISTINCT f.id), COUNT(t.id), COALESCE(SUM(t.fare_cents), 0)
		FROM flights f
		JOIN routes r   ON r.id = f.route_id
		JOIN airports o ON o.id = r.origin_airport_id
		JOIN airports d ON d.id = r.dest_airport_id
		LEFT JOIN tickets t ON t.flight_id = f.id
		WHERE f.departure_utc >= ? AND f.departure_utc <= ?
		GROUP BY o.iata, d.iata
		ORDER BY COALESCE(SUM(t.fare_cents), 0) DESC, o.iata ASC, d.iata ASC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, fromUtc.UTC(), toUtc.UTC(), topN)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RouteRevenueRow, 0, topN)
	for rows.Next() {
		var rr RouteRevenueRow
		if err := rows.Scan(&rr.OriginIATA, &rr.DestIATA, &rr.Flights, &rr.Tickets, &rr.RevenueCents); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// OccupancyRow carries the raw capacity and sold counts for one flight.
// The service computes occupancy percent and applies the threshold.
type OccupancyRow struct {
	FlightID     uint64
	FlightNumber string
	OriginIATA   string
	DestIATA     string
	DepartureUtc time.Time
	Capacity     int
	SeatsSold    int
}

func (r *ReportRepo) OccupancyRows(ctx context.Context, fromUtc, toUtc time.Time) ([]OccupancyRow, error) {
	const q = `SELECT f.id, f.flight_number, o.iata, d.iata, f.departure_utc, a.capacity, COUNT(t.id)
		FROM flights f
		JOIN routes r   ON r.id = f.route_id
		JOIN airports o ON o.id = r.origin_airport_id
		JOIN airports d ON d.id = r.dest_airport_id
		JOIN aircraft a ON a.id = f.aircraft_id
		LEFT JOIN tickets t ON t.flight_id = f.id
		WHERE f.departure_utc >= ? AND f.departure_utc <= ?
		GROUP BY f.id, f.flight_number, o.iata, d.iata, f.departure_utc, a.capacity
		ORDER BY f.departure_utc ASC`
	rows, err := r.db.QueryContext(ctx, q, fromUtc.UTC(), toUtc.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]OccupancyRow, 0)
	for rows.Next() {
		var o OccupancyRow
		if err := rows.Scan(&o.FlightID, &o.FlightNumber, &o.OriginIATA, &o.DestIATA,
			&o.DepartureUtc, &o.Capacity, &o.SeatsSold); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// OnTimeRow holds scheduled versus recorded arrival for one flight.
type OnTimeRow struct {
	FlightID         uint64
	FlightNumber     string
	OriginIATA       string
	DestIATA         string
	ScheduledArrival time.Time
	ActualArrival    *time.Time
}

// OnTimeRows returns flights in the window with their recorded arrival, if
// any. Canceled flights are excluded.
func (r *ReportRepo) OnTimeRows(ctx context.Context, fromUtc, toUtc time.Time) ([]OnTimeRow, error) {
	const q = `SELECT f.id, f.flight_number, o.iata, d.iata, f.arrival_utc, f.actual_arrival_utc
		FROM flights f
		JOIN routes r   ON r.id = f.route_id
		JOIN airports o ON o.id = r.origin_airport_id
		JOIN airports d ON d.id = r.dest_airport_id
		WHERE f.departure_utc >= ? AND f.departure_utc <= ? AND f.status <> 'CANCELED'
		ORDER BY f.departure_utc ASC`
	rows, err := r.db.QueryContext(ctx, q, fromUtc.UTC(), toUtc.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]OnTimeRow, 0)
	for rows.Next() {
		var o OnTimeRow
		var actual sql.NullTime
		if err := rows.Scan(&o.FlightID, &o.FlightNumber, &o.OriginIATA, &o.DestIATA,
			&o.ScheduledArrival, &actual); err != nil {
			return nil, err
		}
		if actual.Valid {
			t := actual.Time
			o.ActualArrival = &t
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// CrewFlightRow is one crew-to-flight assignment with the flight's window.
type CrewFlightRow struct {
	CrewID       uint64
	CrewName     string
	FlightID     uint64
	FlightNumber string
	DepartureUtc time.Time
	ArrivalUtc   time.Time
}

// CrewAssignments returns crew assignments for flights departing inside
// [fromUtc, toUtc], ordered by crew then departure, so the service can scan
// for overlapping windows.
func (r *ReportRepo) CrewAssignments(ctx context.Context, fromUtc, toUtc time.Time) ([]CrewFlightRow, error) {
	const q = `SELECT c.id, c.full_name, f.id, f.flight_number, f.departure_utc, f.arrival_utc
		FROM flight_crew fc
		JOIN crew_members c ON c.id = fc.crew_id
		JOIN flights f      ON f.id = fc.flight_id
		WHERE f.status <> 'CANCELED'
		  AND f.departure_utc >= ? AND f.departure_utc <= ?
		ORDER BY c.id ASC, f.departure_utc ASC`
	rows, err := r.db.QueryContext(ctx, q, fromUtc, toUtc)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CrewFlightRow, 0)
	for rows.Next() {
		var c CrewFlightRow
		if err := rows.Scan(&c.CrewID, &c.CrewName, &c.FlightID, &c.FlightNumber,
			&c.DepartureUtc, &c.ArrivalUtc); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FrequentFlierRow aggregates flown segments per passenger.
type FrequentFlierRow struct {
	PassengerID uint64 `json:"passenger_id"`
	FullName    string `json:"full_name"`
	PassportNo  string `json:"passport_no"`
	Flights     int    `json:"flights"`
	DistanceKm  int64  `json:"distance_km"`
}

// FrequentFliers ranks passengers by segment count or total route distance.
func (r *ReportRepo) FrequentFliers(ctx context.Context, topN int, byDistance bool) ([]FrequentFlierRow, error) {
	order := "COUNT(t.id) DESC"
	if byDistance {
		order = "COALESCE(SUM(r.distance_km), 0) DESC"
	}
	q := `SELECT p.id, p.full_name, p.passport_no, COUNT(t.id), COALESCE(SUM(r.distance_km), 0)
		FROM passengers p
		JOIN bookings b ON b.passenger_id = p.id AND b.status <> 'CANCELED'
		JOIN tickets t  ON t.booking_id = b.id
		JOIN flights f  ON f.id = t.flight_id
		JOIN routes r   ON r.id = f.route_id
		GROUP BY p.id, p.full_name, p.passport_no
		ORDER BY ` + order + `, p.id ASC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, topN)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]FrequentFlierRow, 0, topN)
	for rows.Next() {
		var ff FrequentFlierRow
		if err := rows.Scan(&ff.PassengerID, &ff.FullName, &ff.PassportNo, &ff.Flights, &ff.DistanceKm); err != nil {
			return nil, err
		}
		out = append(out, ff)
	}
	return out, rows.Err()
}

// AircraftUsageRow carries per-aircraft activity since the last completed
// maintenance. LastCompletedUtc is nil when the aircraft has never had a
// completed maintenance record.
type AircraftUsageRow struct {
	AircraftID       uint64
	TailNumber       string
	Model            string
	Flights          int
	DistanceKm       int64
	LastCompletedUtc *time.Time
}

// AircraftUsage counts flights and route distance flown since each
// aircraft's most recent completed maintenance.
func (r *ReportRepo) AircraftUsage(ctx context.Context) ([]AircraftUsageRow, error) {
	const q = `SELECT a.id, a.tail_number, a.model,
		       COUNT(f.id), COALESCE(SUM(rt.distance_km), 0),
		       (SELECT MAX(m.completed_utc) FROM aircraft_maintenance m
		        WHERE m.aircraft_id = a.id AND m.completed_utc IS NOT NULL)
		FROM aircraft a
		LEFT JOIN flights f ON f.aircraft_id = a.id
		     AND f.status <> 'CANCELED'
		     AND f.departure_utc > COALESCE(
		        (SELECT MAX(m2.completed_utc) FROM aircraft_maintenance m2
		         WHERE m2.aircraft_id = a.id AND m2.completed_utc IS NOT NULL),
		        '1970-01-01')
		LEFT JOIN routes rt ON rt.id = f.route_id
		GROUP BY a.id, a.tail_number, a.model
		ORDER BY a.id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AircraftUsageRow, 0)
	for rows.Next() {
		var u AircraftUsageRow
		var last sql.NullTime
		if err := rows.Scan(&u.AircraftID, &u.TailNumber, &u.Model, &u.Flights, &u.DistanceKm, &last); err != nil {
			return nil, err
		}
		if last.Valid {
			t := last.Time
			u.LastCompletedUtc = &t
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// OverweightBagRow is one bag above the weight threshold.
type OverweightBagRow struct {
	BookingRef    string `json:"booking_ref"`
	PassengerName string `json:"passenger_name"`
	FlightNumber  string `json:"flight_number"`
	TagNumber     string `json:"tag_number"`
	WeightG       int64  `json:"weight_g"`
}

func (r *ReportRepo) OverweightBags(ctx context.Context, thresholdG int64) ([]OverweightBagRow, error) {
	const q = `SELECT b.booking_ref, p.full_name, f.flight_number, g.tag_number, g.weight_g
		FROM baggage g
		JOIN tickets t  ON t.id = g.ticket_id
		JOIN bookings b ON b.id = t.booking_id
		JOIN passengers p ON p.id = b.passenger_id
		JOIN flights f  ON f.id = t.flight_id
		WHERE g.weight_g > ?
		ORDER BY g.weight_g DESC`
	rows, err := r.db.QueryContext(ctx, q, thresholdG)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]OverweightBagRow, 0)
	for rows.Next() {
		var b OverweightBagRow
		if err := rows.Scan(&b.BookingRef, &b.PassengerName, &b.FlightNumber, &b.TagNumber, &b.WeightG); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// BaggageTotalRow sums bag weight per ticket.
type BaggageTotalRow struct {
	BookingRef    string `json:"booking_ref"`
	PassengerName string `json:"passenger_name"`
	FlightNumber  string `json:"flight_number"`
	SeatNumber    string `json:"seat_number"`
	Bags          int    `json:"bags"`
	TotalWeightG  int64  `json:"total_weight_g"`
}

// BaggageTotals returns tickets whose combined bag weight exceeds the limit.
func (r *ReportRepo) BaggageTotals(ctx context.Context, limitG int64) ([]BaggageTotalRow, error) {
	const q = `SELECT b.booking_ref, p.full_name, f.flight_number, t.seat_number,
		       COUNT(g.id), COALESCE(SUM(g.weight_g), 0)
		FROM tickets t
		JOIN bookings b ON b.id = t.booking_id
		JOIN passengers p ON p.id = b.passenger_id
		JOIN flights f  ON f.id = t.flight_id
		JOIN baggage g  ON g.ticket_id = t.id
		GROUP BY t.id, b.booking_ref, p.full_name, f.flight_number, t.seat_number
		HAVING SUM(g.weight_g) > ?
		ORDER BY SUM(g.weight_g) DESC`
	rows, err := r.db.QueryContext(ctx, q, limitG)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BaggageTotalRow, 0)
	for rows.Next() {
		var b BaggageTotalRow
		if err := rows.Scan(&b.BookingRef, &b.PassengerName, &b.FlightNumber, &b.SeatNumber,
			&b.Bags, &b.TotalWeightG); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// DayRevenueRow is ticket revenue recognized on one booking day.
type DayRevenueRow struct {
	Day          time.Time
	RevenueCents int64
}

// DailyRevenue sums ticket revenue by booking date for the last daysBack
// days, oldest first. Days with no sales are absent from the result.
func (r *ReportRepo) DailyRevenue(ctx context.Context, daysBack int) ([]DayRevenueRow, error) {
	since := time.Now().UTC().AddDate(0, 0, -daysBack)
	const q = `SELECT DATE(b.booking_date), COALESCE(SUM(t.fare_cents), 0)
		FROM bookings b
		JOIN tickets t ON t.booking_id = b.id
		WHERE b.status <> 'CANCELED' AND b.booking_date >= ?
		GROUP BY DATE(b.booking_date)
		ORDER BY DATE(b.booking_date) ASC`
	rows, err := r.db.QueryContext(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]DayRevenueRow, 0, daysBack)
	for rows.Next() {
		var d DayRevenueRow
		if err := rows.Scan(&d.Day, &d.RevenueCents); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DayCountRow is the number of tickets on flights departing on one day.
type DayCountRow struct {
	Day     time.Time
	Tickets int
}

// TicketsPerDay counts tickets by flight departure date over [fromUtc,
// toUtc], oldest first. Feeds the demand forecast.
func (r *ReportRepo) TicketsPerDay(ctx context.Context, fromUtc, toUtc time.Time) ([]DayCountRow, error) {
	const q = `SELECT DATE(f.departure_utc), COUNT(t.id)
		FROM flights f
		JOIN tickets t ON t.flight_id = f.id
		WHERE f.departure_utc >= ? AND f.departure_utc <= ?
		GROUP BY DATE(f.departure_utc)
		ORDER BY DATE(f.departure_utc) ASC`
	rows, err := r.db.QueryContext(ctx, q, fromUtc.UTC(), toUtc.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]DayCountRow, 0)
	for rows.Next() {
		var d DayCountRow
		if err := rows.Scan(&d.Day, &d.Tickets); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ConnectionLegRow is one flight leg inside a booking, ordered so that legs
// of the same booking are adjacent and sorted by departure.
type ConnectionLegRow struct {
	BookingID     uint64
	BookingRef    string
	PassengerName string
	FlightNumber  string
	OriginIATA    string
	DestIATA      string
	DepartureUtc  time.Time
	ArrivalUtc    time.Time
}

func (r *ReportRepo) ConnectionLegs(ctx context.Context) ([]ConnectionLegRow, error) {
	const q = `SELECT b.id, b.booking_ref, p.full_name, f.flight_number,
		       o.iata, d.iata, f.departure_utc, f.arrival_utc
		FROM bookings b
		JOIN passengers p ON p.id = b.passenger_id
		JOIN tickets t  ON t.booking_id = b.id
		JOIN flights f  ON f.id = t.flight_id
		JOIN routes r   ON r.id = f.route_id
		JOIN airports o ON o.id = r.origin_airport_id
		JOIN airports d ON d.id = r.dest_airport_id
		WHERE b.status <> 'CANCELED'
		ORDER BY b.id ASC, f.departure_utc ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ConnectionLegRow, 0)
	for rows.Next() {
		var c ConnectionLegRow
		if err := rows.Scan(&c.BookingID, &c.BookingRef, &c.PassengerName, &c.FlightNumber,
			&c.OriginIATA, &c.DestIATA, &c.DepartureUtc, &c.ArrivalUtc); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
