package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/repository"
)

func utc(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestOccupancyPercentRounding(t *testing.T) {
	assert.Equal(t, 0, occupancyPercent(0, 5), "zero capacity never divides")
	assert.Equal(t, 100, occupancyPercent(180, 180))
	assert.Equal(t, 50, occupancyPercent(2, 1))
	assert.Equal(t, 33, occupancyPercent(3, 1))
	assert.Equal(t, 67, occupancyPercent(3, 2), "rounds to nearest, not down")
}

func TestFilterHighOccupancy(t *testing.T) {
	rows := []repository.OccupancyRow{
		{FlightID: 1, FlightNumber: "FM101", Capacity: 100, SeatsSold: 85},
		{FlightID: 2, FlightNumber: "FM102", Capacity: 100, SeatsSold: 79},
		{FlightID: 3, FlightNumber: "FM103", Capacity: 100, SeatsSold: 80},
	}

	got := FilterHighOccupancy(rows, 80)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].FlightID)
	assert.Equal(t, 85, got[0].OccupancyPct)
	assert.Equal(t, uint64(3), got[1].FlightID, "threshold is inclusive")

	assert.Empty(t, FilterHighOccupancy(rows[:1], 90), "85 percent stays below a 90 percent threshold")
}

func TestSummarizeOnTime(t *testing.T) {
	sched := utc(2026, 8, 1, 12, 0)
	within := sched.Add(10 * time.Minute)
	late := sched.Add(20 * time.Minute)

	rows := []repository.OnTimeRow{
		{FlightID: 1, OriginIATA: "MCT", DestIATA: "DXB", ScheduledArrival: sched, ActualArrival: &within},
		{FlightID: 2, OriginIATA: "MCT", DestIATA: "DXB", ScheduledArrival: sched, ActualArrival: &late},
		{FlightID: 3, OriginIATA: "MCT", DestIATA: "DXB", ScheduledArrival: sched}, // not landed yet
		{FlightID: 4, OriginIATA: "DXB", DestIATA: "MCT", ScheduledArrival: sched, ActualArrival: &sched},
	}

	got := SummarizeOnTime(rows, 15*time.Minute)
	require.Len(t, got, 2)

	assert.Equal(t, "MCT", got[0].OriginIATA)
	assert.Equal(t, 3, got[0].Flights)
	assert.Equal(t, 2, got[0].Measured, "unrecorded arrivals are not measured")
	assert.Equal(t, 1, got[0].OnTime)
	assert.Equal(t, 1, got[0].Late)
	assert.Equal(t, 50, got[0].OnTimePct)

	assert.Equal(t, 1, got[1].OnTime, "exactly on schedule counts as on time")
	assert.Equal(t, 100, got[1].OnTimePct)
}

func TestFindCrewConflicts(t *testing.T) {
	rows := []repository.CrewFlightRow{
		{CrewID: 1, CrewName: "Aisha", FlightNumber: "FM101", DepartureUtc: utc(2026, 8, 1, 8, 0), ArrivalUtc: utc(2026, 8, 1, 10, 0)},
		{CrewID: 1, CrewName: "Aisha", FlightNumber: "FM102", DepartureUtc: utc(2026, 8, 1, 9, 30), ArrivalUtc: utc(2026, 8, 1, 11, 0)},
		{CrewID: 1, CrewName: "Aisha", FlightNumber: "FM103", DepartureUtc: utc(2026, 8, 1, 11, 0), ArrivalUtc: utc(2026, 8, 1, 13, 0)},
		{CrewID: 2, CrewName: "Omar", FlightNumber: "FM104", DepartureUtc: utc(2026, 8, 1, 9, 0), ArrivalUtc: utc(2026, 8, 1, 10, 30)},
	}

	got := FindCrewConflicts(rows)
	require.Len(t, got, 1, "back-to-back flights touching at 11:00 do not overlap")
	assert.Equal(t, uint64(1), got[0].CrewID)
	assert.Equal(t, "FM101", got[0].FlightA)
	assert.Equal(t, "FM102", got[0].FlightB)
}

func TestBuildMaintenanceAlerts(t *testing.T) {
	now := utc(2026, 8, 31, 0, 0)
	recent := utc(2026, 7, 1, 0, 0)  // 61 days before now
	ancient := utc(2025, 6, 1, 0, 0) // well past any threshold
	rows := []repository.AircraftUsageRow{
		{AircraftID: 1, TailNumber: "A4O-AA", Flights: 10, DistanceKm: 60_000, LastCompletedUtc: &recent},
		{AircraftID: 2, TailNumber: "A4O-BB", Flights: 250, DistanceKm: 10_000, LastCompletedUtc: &ancient},
		{AircraftID: 3, TailNumber: "A4O-CC", Flights: 5, DistanceKm: 2_000},
		{AircraftID: 4, TailNumber: "A4O-EE", Flights: 10, DistanceKm: 9_000, LastCompletedUtc: &recent},
	}

	got := BuildMaintenanceAlerts(rows, 50_000, 180, now)
	require.Len(t, got, 3)
	assert.Equal(t, "distance threshold exceeded", got[0].Reason)
	assert.Equal(t, "maintenance overdue", got[1].Reason)
	assert.Equal(t, "no completed maintenance on record", got[2].Reason)
	assert.Equal(t, uint64(3), got[2].AircraftID)
}

func TestCrewConflictsWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	svc := NewReportService(repository.NewReportRepo(db), nil, nil)

	from := utc(2026, 8, 1, 0, 0)
	to := utc(2026, 8, 31, 0, 0)

	t.Run("window reaches the query", func(t *testing.T) {
		dep := utc(2026, 8, 10, 8, 0)
		mock.ExpectQuery(`departure_utc >= \? AND f\.departure_utc <= \?`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "id", "flight_number", "departure_utc", "arrival_utc"}).
				AddRow(1, "Aisha", 10, "FM101", dep, dep.Add(2*time.Hour)).
				AddRow(1, "Aisha", 11, "FM102", dep.Add(90*time.Minute), dep.Add(3*time.Hour)))

		got, err := svc.CrewConflicts(context.Background(), from, to)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "FM101", got[0].FlightA)
		assert.Equal(t, "FM102", got[0].FlightB)
	})

	t.Run("inverted window rejected before querying", func(t *testing.T) {
		_, err := svc.CrewConflicts(context.Background(), to, from)
		var svcErr *Error
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, KindInvalidRequest, svcErr.Kind)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccumulateRevenue(t *testing.T) {
	rows := []repository.DayRevenueRow{
		{Day: utc(2026, 8, 1, 0, 0), RevenueCents: 10_000},
		{Day: utc(2026, 8, 2, 0, 0), RevenueCents: 5_000},
		{Day: utc(2026, 8, 4, 0, 0), RevenueCents: 2_500},
	}

	got := AccumulateRevenue(rows)
	require.Len(t, got, 3)
	assert.Equal(t, "2026-08-01", got[0].Day)
	assert.Equal(t, int64(10_000), got[0].RunningCents)
	assert.Equal(t, int64(15_000), got[1].RunningCents)
	assert.Equal(t, int64(17_500), got[2].RunningCents)
}

func TestBuildForecast(t *testing.T) {
	// Four prior Mondays averaging 25 tickets; one prior Tuesday with 10.
	rows := []repository.DayCountRow{
		{Day: utc(2026, 8, 3, 0, 0), Tickets: 20},  // Monday
		{Day: utc(2026, 8, 10, 0, 0), Tickets: 30}, // Monday
		{Day: utc(2026, 8, 17, 0, 0), Tickets: 20}, // Monday
		{Day: utc(2026, 8, 24, 0, 0), Tickets: 30}, // Monday
		{Day: utc(2026, 8, 25, 0, 0), Tickets: 10}, // Tuesday
	}
	from := utc(2026, 8, 31, 0, 0) // a Monday

	got := BuildForecast(rows, from, 3)
	require.Len(t, got, 3)

	assert.Equal(t, "2026-08-31", got[0].Day)
	assert.Equal(t, "Monday", got[0].Weekday)
	assert.Equal(t, 25, got[0].Expected)

	assert.Equal(t, "Tuesday", got[1].Weekday)
	assert.Equal(t, 10, got[1].Expected)

	assert.Equal(t, "Wednesday", got[2].Weekday)
	assert.Equal(t, 0, got[2].Expected, "no history forecasts zero")
}

func TestFindConnections(t *testing.T) {
	legs := []repository.ConnectionLegRow{
		// Booking 1: MCT->DXB then DXB->LHR with a 90 minute layover.
		{BookingID: 1, BookingRef: "B1A2B3C4", PassengerName: "Salim", FlightNumber: "FM101",
			OriginIATA: "MCT", DestIATA: "DXB",
			DepartureUtc: utc(2026, 8, 1, 8, 0), ArrivalUtc: utc(2026, 8, 1, 9, 0)},
		{BookingID: 1, BookingRef: "B1A2B3C4", PassengerName: "Salim", FlightNumber: "FM201",
			OriginIATA: "DXB", DestIATA: "LHR",
			DepartureUtc: utc(2026, 8, 1, 10, 30), ArrivalUtc: utc(2026, 8, 1, 17, 0)},
		// Booking 2: layover too long at 5 hours.
		{BookingID: 2, BookingRef: "BDEADBEE", PassengerName: "Maryam", FlightNumber: "FM101",
			OriginIATA: "MCT", DestIATA: "DXB",
			DepartureUtc: utc(2026, 8, 2, 8, 0), ArrivalUtc: utc(2026, 8, 2, 9, 0)},
		{BookingID: 2, BookingRef: "BDEADBEE", PassengerName: "Maryam", FlightNumber: "FM201",
			OriginIATA: "DXB", DestIATA: "LHR",
			DepartureUtc: utc(2026, 8, 2, 14, 0), ArrivalUtc: utc(2026, 8, 2, 20, 0)},
		// Booking 3: airports do not chain.
		{BookingID: 3, BookingRef: "BCAFEF00", PassengerName: "Yusuf", FlightNumber: "FM301",
			OriginIATA: "MCT", DestIATA: "AUH",
			DepartureUtc: utc(2026, 8, 3, 8, 0), ArrivalUtc: utc(2026, 8, 3, 9, 0)},
		{BookingID: 3, BookingRef: "BCAFEF00", PassengerName: "Yusuf", FlightNumber: "FM302",
			OriginIATA: "DXB", DestIATA: "LHR",
			DepartureUtc: utc(2026, 8, 3, 10, 0), ArrivalUtc: utc(2026, 8, 3, 16, 0)},
	}

	got := FindConnections(legs, 4*time.Hour)
	require.Len(t, got, 1)
	assert.Equal(t, "B1A2B3C4", got[0].BookingRef)
	assert.Equal(t, "DXB", got[0].ViaIATA)
	assert.Equal(t, 90, got[0].LayoverMin)
}
