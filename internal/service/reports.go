package service

import (
	"context"
	"errors"
	"time"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/repository"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/utils"
)

// Reporting defaults. Handlers may override the thresholds via query
// parameters; these apply when the parameter is absent.
const (
	DefaultOccupancyPct       = 80
	DefaultOnTimeToleranceMin = 15
	DefaultOverweightG        = 23_000
	DefaultBaggageLimitG      = 30_000
	DefaultMaxLayoverHours    = 4
	DefaultMaintDistanceKm    = 50_000
	DefaultMaintOlderDays     = 180
	forecastLookbackDays      = 28
)

// ReportService runs the read-only analytics endpoints. The repositories
// deliver flat rows; the pairing, windowing and threshold logic lives here
// so it can be tested without a database.
type ReportService struct {
	reports  *repository.ReportRepo
	flights  *repository.FlightRepo
	bookings *repository.BookingRepo
}

func NewReportService(reports *repository.ReportRepo, flights *repository.FlightRepo, bookings *repository.BookingRepo) *ReportService {
	return &ReportService{reports: reports, flights: flights, bookings: bookings}
}

// SearchFlights lists flights matching the optional filters.
func (s *ReportService) SearchFlights(ctx context.Context, q repository.FlightSearchQuery) ([]repository.FlightSearchRow, error) {
	if q.FromUtc != nil && q.ToUtc != nil && q.ToUtc.Before(*q.FromUtc) {
		return nil, errInvalid("to must not be before from")
	}
	return s.flights.Search(ctx, q)
}

// PagedFlights is one page of the flight list.
type PagedFlights struct {
	Page     int                          `json:"page"`
	PageSize int                          `json:"page_size"`
	Total    int64                        `json:"total"`
	Items    []repository.FlightSearchRow `json:"items"`
}

func (s *ReportService) FlightsPage(ctx context.Context, page, pageSize int, fromUtc, toUtc *time.Time) (PagedFlights, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	items, total, err := s.flights.Page(ctx, page, pageSize, fromUtc, toUtc)
	if err != nil {
		return PagedFlights{}, err
	}
	return PagedFlights{Page: page, PageSize: pageSize, Total: total, Items: items}, nil
}

// AvailableSeats reports the free seat labels on a flight.
type AvailableSeats struct {
	FlightID  uint64   `json:"flight_id"`
	Capacity  int      `json:"capacity"`
	SeatsSold int      `json:"seats_sold"`
	Available []string `json:"available"`
}

func (s *ReportService) AvailableSeats(ctx context.Context, flightID uint64) (AvailableSeats, error) {
	capacity, taken, err := s.bookings.SeatMap(ctx, flightID)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return AvailableSeats{}, errNotFound("flight not found")
		}
		return AvailableSeats{}, err
	}
	free := make([]string, 0, capacity-len(taken))
	for n := 1; n <= capacity; n++ {
		label := utils.SeatLabel(n)
		if _, ok := taken[label]; !ok {
			free = append(free, label)
		}
	}
	return AvailableSeats{FlightID: flightID, Capacity: capacity, SeatsSold: len(taken), Available: free}, nil
}

func (s *ReportService) DailyManifest(ctx context.Context, day time.Time) ([]repository.ManifestRow, error) {
	return s.reports.DailyManifest(ctx, day)
}

func (s *ReportService) TopRoutes(ctx context.Context, fromUtc, toUtc time.Time, topN int) ([]repository.RouteRevenueRow, error) {
	if topN < 1 || topN > 100 {
		topN = 10
	}
	if toUtc.Before(fromUtc) {
		return nil, errInvalid("to must not be before from")
	}
	return s.reports.TopRoutesByRevenue(ctx, fromUtc, toUtc, topN)
}

// OccupancyReport is one flight at or above the occupancy threshold.
type OccupancyReport struct {
	FlightID     uint64    `json:"flight_id"`
	FlightNumber string    `json:"flight_number"`
	OriginIATA   string    `json:"origin_iata"`
	DestIATA     string    `json:"dest_iata"`
	DepartureUtc time.Time `json:"departure_utc"`
	Capacity     int       `json:"capacity"`
	SeatsSold    int       `json:"seats_sold"`
	OccupancyPct int       `json:"occupancy_pct"`
}

func (s *ReportService) HighOccupancy(ctx context.Context, fromUtc, toUtc time.Time, thresholdPct int) ([]OccupancyReport, error) {
	if thresholdPct < 1 || thresholdPct > 100 {
		thresholdPct = DefaultOccupancyPct
	}
	rows, err := s.reports.OccupancyRows(ctx, fromUtc, toUtc)
	if err != nil {
		return nil, err
	}
	return FilterHighOccupancy(rows, thresholdPct), nil
}

// occupancyPercent rounds to the nearest whole percent.
func occupancyPercent(capacity, sold int) int {
	if capacity <= 0 {
		return 0
	}
	return int((int64(sold)*100 + int64(capacity)/2) / int64(capacity))
}

// FilterHighOccupancy keeps flights whose occupancy meets the threshold.
func FilterHighOccupancy(rows []repository.OccupancyRow, thresholdPct int) []OccupancyReport {
	out := make([]OccupancyReport, 0)
	for _, r := range rows {
		pct := occupancyPercent(r.Capacity, r.SeatsSold)
		if pct < thresholdPct {
			continue
		}
		out = append(out, OccupancyReport{
			FlightID:     r.FlightID,
			FlightNumber: r.FlightNumber,
			OriginIATA:   r.OriginIATA,
			DestIATA:     r.DestIATA,
			DepartureUtc: r.DepartureUtc,
			Capacity:     r.Capacity,
			SeatsSold:    r.SeatsSold,
			OccupancyPct: pct,
		})
	}
	return out
}

// OnTimeSummary aggregates arrival punctuality per route. Flights without a
// recorded actual arrival count toward Flights but not toward Measured.
type OnTimeSummary struct {
	OriginIATA string `json:"origin_iata"`
	DestIATA   string `json:"dest_iata"`
	Flights    int    `json:"flights"`
	Measured   int    `json:"measured"`
	OnTime     int    `json:"on_time"`
	Late       int    `json:"late"`
	OnTimePct  int    `json:"on_time_pct"`
}

func (s *ReportService) OnTimePerformance(ctx context.Context, fromUtc, toUtc time.Time, toleranceMin int) ([]OnTimeSummary, error) {
	if toleranceMin < 0 {
		toleranceMin = DefaultOnTimeToleranceMin
	}
	rows, err := s.reports.OnTimeRows(ctx, fromUtc, toUtc)
	if err != nil {
		return nil, err
	}
	return SummarizeOnTime(rows, time.Duration(toleranceMin)*time.Minute), nil
}

// SummarizeOnTime buckets flights by route. A flight is on time when its
// recorded arrival is no later than scheduled arrival plus the tolerance.
func SummarizeOnTime(rows []repository.OnTimeRow, tolerance time.Duration) []OnTimeSummary {
	type key struct{ o, d string }
	order := make([]key, 0)
	acc := make(map[key]*OnTimeSummary)
	for _, r := range rows {
		k := key{r.OriginIATA, r.DestIATA}
		sum, ok := acc[k]
		if !ok {
			sum = &OnTimeSummary{OriginIATA: r.OriginIATA, DestIATA: r.DestIATA}
			acc[k] = sum
			order = append(order, k)
		}
		sum.Flights++
		if r.ActualArrival == nil {
			continue
		}
		sum.Measured++
		if !r.ActualArrival.After(r.ScheduledArrival.Add(tolerance)) {
			sum.OnTime++
		}
	}
	out := make([]OnTimeSummary, 0, len(order))
	for _, k := range order {
		sum := acc[k]
		sum.Late = sum.Measured - sum.OnTime
		if sum.Measured > 0 {
			sum.OnTimePct = int((int64(sum.OnTime)*100 + int64(sum.Measured)/2) / int64(sum.Measured))
		}
		out = append(out, *sum)
	}
	return out
}

// CrewConflict is one pair of overlapping flights assigned to one person.
type CrewConflict struct {
	CrewID        uint64    `json:"crew_id"`
	CrewName      string    `json:"crew_name"`
	FlightA       string    `json:"flight_a"`
	FlightB       string    `json:"flight_b"`
	DepartureAUtc time.Time `json:"departure_a_utc"`
	ArrivalAUtc   time.Time `json:"arrival_a_utc"`
	DepartureBUtc time.Time `json:"departure_b_utc"`
	ArrivalBUtc   time.Time `json:"arrival_b_utc"`
}

func (s *ReportService) CrewConflicts(ctx context.Context, fromUtc, toUtc time.Time) ([]CrewConflict, error) {
	if toUtc.Before(fromUtc) {
		return nil, errInvalid("to must not be before from")
	}
	rows, err := s.reports.CrewAssignments(ctx, fromUtc, toUtc)
	if err != nil {
		return nil, err
	}
	return FindCrewConflicts(rows), nil
}

// FindCrewConflicts reports every pair of flights whose airborne windows
// overlap for the same crew member. Input rows must be ordered by crew then
// departure, which the repository query guarantees.
func FindCrewConflicts(rows []repository.CrewFlightRow) []CrewConflict {
	out := make([]CrewConflict, 0)
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows) && rows[j].CrewID == rows[i].CrewID; j++ {
			a, b := rows[i], rows[j]
			if a.DepartureUtc.Before(b.ArrivalUtc) && b.DepartureUtc.Before(a.ArrivalUtc) {
				out = append(out, CrewConflict{
					CrewID:        a.CrewID,
					CrewName:      a.CrewName,
					FlightA:       a.FlightNumber,
					FlightB:       b.FlightNumber,
					DepartureAUtc: a.DepartureUtc,
					ArrivalAUtc:   a.ArrivalUtc,
					DepartureBUtc: b.DepartureUtc,
					ArrivalBUtc:   b.ArrivalUtc,
				})
			}
		}
	}
	return out
}

func (s *ReportService) FrequentFliers(ctx context.Context, topN int, byDistance bool) ([]repository.FrequentFlierRow, error) {
	if topN < 1 || topN > 100 {
		topN = 10
	}
	return s.reports.FrequentFliers(ctx, topN, byDistance)
}

// MaintenanceAlert flags an airframe that has flown too much since its last
// completed maintenance, or has never been maintained at all.
type MaintenanceAlert struct {
	AircraftID       uint64     `json:"aircraft_id"`
	TailNumber       string     `json:"tail_number"`
	Model            string     `json:"model"`
	Flights          int        `json:"flights_since_maintenance"`
	DistanceKm       int64      `json:"distance_km_since_maintenance"`
	LastCompletedUtc *time.Time `json:"last_completed_utc,omitempty"`
	Reason           string     `json:"reason"`
}

func (s *ReportService) MaintenanceAlerts(ctx context.Context, distanceKm int64, olderThanDays int) ([]MaintenanceAlert, error) {
	if distanceKm <= 0 {
		distanceKm = DefaultMaintDistanceKm
	}
	if olderThanDays <= 0 {
		olderThanDays = DefaultMaintOlderDays
	}
	rows, err := s.reports.AircraftUsage(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMaintenanceAlerts(rows, distanceKm, olderThanDays, time.Now().UTC()), nil
}

// BuildMaintenanceAlerts applies the alert predicate to usage rows. An
// airframe is flagged when it has flown more than distanceKm since its
// last completed maintenance, when that maintenance is older than
// olderThanDays, or when it has never been maintained at all.
func BuildMaintenanceAlerts(rows []repository.AircraftUsageRow, distanceKm int64, olderThanDays int, now time.Time) []MaintenanceAlert {
	cutoff := now.AddDate(0, 0, -olderThanDays)
	out := make([]MaintenanceAlert, 0)
	for _, r := range rows {
		var reason string
		switch {
		case r.DistanceKm > distanceKm:
			reason = "distance threshold exceeded"
		case r.LastCompletedUtc == nil:
			reason = "no completed maintenance on record"
		case r.LastCompletedUtc.Before(cutoff):
			reason = "maintenance overdue"
		default:
			continue
		}
		out = append(out, MaintenanceAlert{
			AircraftID:       r.AircraftID,
			TailNumber:       r.TailNumber,
			Model:            r.Model,
			Flights:          r.Flights,
			DistanceKm:       r.DistanceKm,
			LastCompletedUtc: r.LastCompletedUtc,
			Reason:           reason,
		})
	}
	return out
}

func (s *ReportService) OverweightBags(ctx context.Context, thresholdG int64) ([]repository.OverweightBagRow, error) {
	if thresholdG <= 0 {
		thresholdG = DefaultOverweightG
	}
	return s.reports.OverweightBags(ctx, thresholdG)
}

func (s *ReportService) BaggageAlerts(ctx context.Context, limitG int64) ([]repository.BaggageTotalRow, error) {
	if limitG <= 0 {
		limitG = DefaultBaggageLimitG
	}
	return s.reports.BaggageTotals(ctx, limitG)
}

// RevenueRunning is one day of revenue with the cumulative total so far.
type RevenueRunning struct {
	Day          string `json:"day"`
	RevenueCents int64  `json:"revenue_cents"`
	RunningCents int64  `json:"running_cents"`
}

func (s *ReportService) DailyRevenue(ctx context.Context, daysBack int) ([]RevenueRunning, error) {
	if daysBack < 1 || daysBack > 365 {
		daysBack = 30
	}
	rows, err := s.reports.DailyRevenue(ctx, daysBack)
	if err != nil {
		return nil, err
	}
	return AccumulateRevenue(rows), nil
}

// AccumulateRevenue adds a running total over day rows sorted oldest first.
func AccumulateRevenue(rows []repository.DayRevenueRow) []RevenueRunning {
	out := make([]RevenueRunning, 0, len(rows))
	var running int64
	for _, r := range rows {
		running += r.RevenueCents
		out = append(out, RevenueRunning{
			Day:          r.Day.Format("2006-01-02"),
			RevenueCents: r.RevenueCents,
			RunningCents: running,
		})
	}
	return out
}

// ForecastDay is the projected ticket demand for one future day.
type ForecastDay struct {
	Day      string `json:"day"`
	Weekday  string `json:"weekday"`
	Expected int    `json:"expected_tickets"`
}

// ForecastDemand projects ticket counts for the next `days` days starting
// at `from`, using the per-weekday average over the preceding four weeks.
func (s *ReportService) ForecastDemand(ctx context.Context, from time.Time, days int) ([]ForecastDay, error) {
	if days < 1 || days > 31 {
		days = 7
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	rows, err := s.reports.TicketsPerDay(ctx, from.AddDate(0, 0, -forecastLookbackDays), from.Add(-time.Second))
	if err != nil {
		return nil, err
	}
	return BuildForecast(rows, from, days), nil
}

// BuildForecast averages historical day counts per weekday and projects
// them forward. Weekdays absent from history forecast zero.
func BuildForecast(rows []repository.DayCountRow, from time.Time, days int) []ForecastDay {
	var sums, occurrences [7]int
	for _, r := range rows {
		wd := int(r.Day.Weekday())
		sums[wd] += r.Tickets
		occurrences[wd]++
	}
	out := make([]ForecastDay, 0, days)
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		wd := int(day.Weekday())
		expected := 0
		if occurrences[wd] > 0 {
			expected = (sums[wd] + occurrences[wd]/2) / occurrences[wd]
		}
		out = append(out, ForecastDay{
			Day:      day.Format("2006-01-02"),
			Weekday:  day.Weekday().String(),
			Expected: expected,
		})
	}
	return out
}

// Connection is a pair of booked legs that form a feasible transfer.
type Connection struct {
	BookingRef    string    `json:"booking_ref"`
	PassengerName string    `json:"passenger_name"`
	FirstFlight   string    `json:"first_flight"`
	SecondFlight  string    `json:"second_flight"`
	ViaIATA       string    `json:"via_iata"`
	ArriveUtc     time.Time `json:"arrive_utc"`
	DepartUtc     time.Time `json:"depart_utc"`
	LayoverMin    int       `json:"layover_min"`
}

func (s *ReportService) Connections(ctx context.Context, maxLayoverHours int) ([]Connection, error) {
	if maxLayoverHours < 1 {
		maxLayoverHours = DefaultMaxLayoverHours
	}
	legs, err := s.reports.ConnectionLegs(ctx)
	if err != nil {
		return nil, err
	}
	return FindConnections(legs, time.Duration(maxLayoverHours)*time.Hour), nil
}

// FindConnections pairs consecutive legs of one booking where the second
// leg departs from the first leg's destination within [0, maxLayover] of
// its arrival. Input rows must be ordered by booking then departure.
func FindConnections(legs []repository.ConnectionLegRow, maxLayover time.Duration) []Connection {
	out := make([]Connection, 0)
	for i := 0; i+1 < len(legs); i++ {
		a, b := legs[i], legs[i+1]
		if a.BookingID != b.BookingID {
			continue
		}
		if a.DestIATA != b.OriginIATA {
			continue
		}
		layover := b.DepartureUtc.Sub(a.ArrivalUtc)
		if layover < 0 || layover > maxLayover {
			continue
		}
		out = append(out, Connection{
			BookingRef:    a.BookingRef,
			PassengerName: a.PassengerName,
			FirstFlight:   a.FlightNumber,
			SecondFlight:  b.FlightNumber,
			ViaIATA:       a.DestIATA,
			ArriveUtc:     a.ArrivalUtc,
			DepartUtc:     b.DepartureUtc,
			LayoverMin:    int(layover / time.Minute),
		})
	}
	return out
}
