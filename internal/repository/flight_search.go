package repository

import (
	"context"
	"strings"
	"time"
)

// FlightSearchQuery defines the optional filters accepted by Search. Nil
// pointers mean "no bound"; IATA filters are exact-match codes.
type FlightSearchQuery struct {
	FromUtc      *time.Time
	ToUtc        *time.Time
	OriginIATA   string
	DestIATA     string
	MinFareCents *int64
	MaxFareCents *int64
}

// FlightSearchRow is one row of the flight search and paging reports.
// SeatsSold and MinFareCents are zero for flights with no tickets yet.
type FlightSearchRow struct {
	FlightID      uint64    `json:"flight_id"`
	FlightNumber  string    `json:"flight_number"`
	OriginIATA    string    `json:"origin_iata"`
	DestIATA      string    `json:"dest_iata"`
	DepartureUtc  time.Time `json:"departure_utc"`
	ArrivalUtc    time.Time `json:"arrival_utc"`
	AircraftModel string    `json:"aircraft_model"`
	Capacity      int       `json:"capacity"`
	SeatsSold     int       `json:"seats_sold"`
	MinFareCents  int64     `json:"min_fare_cents"`
}

// searchSelect joins flights with route, airports, aircraft and a
// pre-aggregated ticket summary. The LEFT JOIN keeps flights that have no
// tickets sold yet.
const searchSelect = `SELECT f.id, f.flight_number, o.iata, d.iata,
	       f.departure_utc, f.arrival_utc, a.model, a.capacity,
	       COALESCE(ta.seats_sold, 0), COALESCE(ta.min_fare, 0)
	FROM flights f
	JOIN routes r   ON r.id = f.route_id
	JOIN airports o ON o.id = r.origin_airport_id
	JOIN airports d ON d.id = r.dest_airport_id
	JOIN aircraft a ON a.id = f.aircraft_id
	LEFT JOIN (
	    SELECT flight_id, COUNT(*) AS seats_sold, MIN(fare_cents) AS min_fare
	    FROM tickets GROUP BY flight_id
	) ta ON ta.flight_id = f.id`

// Search returns flights matching the query, ordered by departure ascending.
func (r *FlightRepo) Search(ctx context.Context, q FlightSearchQuery) ([]FlightSearchRow, error) {
	where := []string{}
	args := []any{}
	if q.FromUtc != nil {
		where = append(where, "f.departure_utc >= ?")
		args = append(args, q.FromUtc.UTC())
	}
	if q.ToUtc != nil {
		where = append(where, "f.departure_utc <= ?")
		args = append(args, q.ToUtc.UTC())
	}
	if q.OriginIATA != "" {
		where = append(where, "o.iata = ?")
		args = append(args, strings.ToUpper(strings.TrimSpace(q.OriginIATA)))
	}
	if q.DestIATA != "" {
		where = append(where, "d.iata = ?")
		args = append(args, strings.ToUpper(strings.TrimSpace(q.DestIATA)))
	}
	if q.MinFareCents != nil {
		where = append(where, "COALESCE(ta.min_fare, 0) >= ?")
		args = append(args, *q.MinFareCents)
	}
	if q.MaxFareCents != nil {
		where = append(where, "COALESCE(ta.min_fare, 0) <= ?")
		args = append(args, *q.MaxFareCents)
	}
	sqlText := searchSelect
	if len(where) > 0 {
		sqlText += " WHERE " + strings.Join(where, " AND ")
	}
	sqlText += " ORDER BY f.departure_utc ASC, f.id ASC"

	rows, err := r.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]FlightSearchRow, 0)
	for rows.Next() {
		var d FlightSearchRow
		if err := rows.Scan(&d.FlightID, &d.FlightNumber, &d.OriginIATA, &d.DestIATA,
			&d.DepartureUtc, &d.ArrivalUtc, &d.AircraftModel, &d.Capacity,
			&d.SeatsSold, &d.MinFareCents); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Page returns one page of flights within an optional departure window plus
// the total row count for the window.
func (r *FlightRepo) Page(ctx context.Context, page, pageSize int, fromUtc, toUtc *time.Time) ([]FlightSearchRow, int64, error) {
	where := []string{}
	args := []any{}
	if fromUtc != nil {
		where = append(where, "f.departure_utc >= ?")
		args = append(args, fromUtc.UTC())
	}
	if toUtc != nil {
		where = append(where, "f.departure_utc <= ?")
		args = append(args, toUtc.UTC())
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM flights f WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := searchSelect + ` WHERE ` + cond + `
		ORDER BY f.departure_utc ASC, f.id ASC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), pageSize, (page-1)*pageSize)
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]FlightSearchRow, 0, pageSize)
	for rows.Next() {
		var d FlightSearchRow
		if err := rows.Scan(&d.FlightID, &d.FlightNumber, &d.OriginIATA, &d.DestIATA,
			&d.DepartureUtc, &d.ArrivalUtc, &d.AircraftModel, &d.Capacity,
			&d.SeatsSold, &d.MinFareCents); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}
