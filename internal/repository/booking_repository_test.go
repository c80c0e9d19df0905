package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dupKeyErr(index string) error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'X' for key '" + index + "'"}
}

func TestSeatMap(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewBookingRepo(db)

	t.Run("capacity and taken seats", func(t *testing.T) {
		mock.ExpectQuery(`SELECT a\.capacity`).
			WithArgs(uint64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(5))
		mock.ExpectQuery(`SELECT seat_number FROM tickets`).
			WithArgs(uint64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("S001").AddRow("s003"))

		capacity, taken, err := repo.SeatMap(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 5, capacity)
		assert.Contains(t, taken, "S001")
		assert.Contains(t, taken, "S003", "labels are normalized upper case")
		assert.Len(t, taken, 2)
	})

	t.Run("unknown flight", func(t *testing.T) {
		mock.ExpectQuery(`SELECT a\.capacity`).
			WithArgs(uint64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}))

		_, _, err := repo.SeatMap(context.Background(), 99)
		assert.ErrorIs(t, err, ErrFlightNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMinFareCents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewBookingRepo(db)

	mock.ExpectQuery(`COALESCE\(MIN\(fare_cents\), 0\)`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"fare"}).AddRow(int64(12000)))

	fare, err := repo.MinFareCents(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), fare)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("happy path", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewBookingRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO bookings`).
			WithArgs(uint64(3), "BAAAAAAA1", "CONFIRMED").
			WillReturnResult(sqlmock.NewResult(11, 1))
		mock.ExpectQuery(`SELECT booking_date FROM bookings`).
			WithArgs(uint64(11)).
			WillReturnRows(sqlmock.NewRows([]string{"booking_date"}).AddRow(now))
		mock.ExpectExec(`INSERT INTO tickets`).
			WithArgs(uint64(11), uint64(7), "S001", int64(9900), false,
				uint64(11), uint64(7), "S002", int64(9900), false).
			WillReturnResult(sqlmock.NewResult(21, 2))
		mock.ExpectQuery(`FROM tickets WHERE booking_id = \?`).
			WithArgs(uint64(11)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "flight_id", "seat_number", "fare_cents", "checked_in"}).
				AddRow(21, 11, 7, "S001", 9900, false).
				AddRow(22, 11, 7, "S002", 9900, false))
		mock.ExpectCommit()

		b, err := repo.CreateBooking(context.Background(), 3, 7, []string{"S001", "S002"}, 9900,
			func() string { return "BAAAAAAA1" })
		require.NoError(t, err)
		assert.Equal(t, uint64(11), b.ID)
		assert.Equal(t, "BAAAAAAA1", b.BookingRef)
		assert.Equal(t, now, b.BookingDate)
		require.Len(t, b.Tickets, 2)
		assert.Equal(t, "S001", b.Tickets[0].SeatNumber)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reference collision retries with a fresh ref", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewBookingRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO bookings`).
			WithArgs(uint64(3), "BDUP00001", "CONFIRMED").
			WillReturnError(dupKeyErr("uq_bookings_ref"))
		mock.ExpectExec(`INSERT INTO bookings`).
			WithArgs(uint64(3), "BDUP00002", "CONFIRMED").
			WillReturnResult(sqlmock.NewResult(12, 1))
		mock.ExpectQuery(`SELECT booking_date FROM bookings`).
			WithArgs(uint64(12)).
			WillReturnRows(sqlmock.NewRows([]string{"booking_date"}).AddRow(now))
		mock.ExpectExec(`INSERT INTO tickets`).
			WithArgs(uint64(12), uint64(7), "S001", int64(9900), false).
			WillReturnResult(sqlmock.NewResult(31, 1))
		mock.ExpectQuery(`FROM tickets WHERE booking_id = \?`).
			WithArgs(uint64(12)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "flight_id", "seat_number", "fare_cents", "checked_in"}).
				AddRow(31, 12, 7, "S001", 9900, false))
		mock.ExpectCommit()

		refs := []string{"BDUP00001", "BDUP00002"}
		i := 0
		b, err := repo.CreateBooking(context.Background(), 3, 7, []string{"S001"}, 9900,
			func() string { r := refs[i]; i++; return r })
		require.NoError(t, err)
		assert.Equal(t, "BDUP00002", b.BookingRef)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("seat duplicate rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewBookingRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO bookings`).
			WithArgs(uint64(3), "BCAFE001", "CONFIRMED").
			WillReturnResult(sqlmock.NewResult(13, 1))
		mock.ExpectQuery(`SELECT booking_date FROM bookings`).
			WithArgs(uint64(13)).
			WillReturnRows(sqlmock.NewRows([]string{"booking_date"}).AddRow(now))
		mock.ExpectExec(`INSERT INTO tickets`).
			WithArgs(uint64(13), uint64(7), "S001", int64(9900), false).
			WillReturnError(dupKeyErr("uq_tickets_flight_seat"))
		mock.ExpectRollback()

		_, err = repo.CreateBooking(context.Background(), 3, 7, []string{"S001"}, 9900,
			func() string { return "BCAFE001" })
		assert.ErrorIs(t, err, ErrSeatTaken)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsDupKey(t *testing.T) {
	assert.True(t, isDupKey(dupKeyErr("uq_bookings_ref"), "uq_bookings_ref"))
	assert.False(t, isDupKey(dupKeyErr("uq_bookings_ref"), "uq_tickets_flight_seat"),
		"index name must match so a ref collision is never read as a seat conflict")
	assert.False(t, isDupKey(&mysql.MySQLError{Number: 1452, Message: "fk fails"}, "uq_bookings_ref"))
	assert.False(t, isDupKey(context.DeadlineExceeded, "uq_bookings_ref"))
}

func TestIsFKViolation(t *testing.T) {
	assert.True(t, isFKViolation(&mysql.MySQLError{Number: 1452, Message: "a foreign key constraint fails"}))
	assert.False(t, isFKViolation(dupKeyErr("uq_bookings_ref")))
	assert.False(t, isFKViolation(context.Canceled))
}
