package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrewAssignmentsWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewReportRepo(db)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	dep := time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC)
	arr := dep.Add(2 * time.Hour)

	mock.ExpectQuery(`departure_utc >= \? AND f\.departure_utc <= \?`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "id", "flight_number", "departure_utc", "arrival_utc"}).
			AddRow(1, "Aisha", 10, "FM101", dep, arr))

	rows, err := repo.CrewAssignments(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "FM101", rows[0].FlightNumber)
	assert.Equal(t, dep, rows[0].DepartureUtc)

	require.NoError(t, mock.ExpectationsWereMet())
}
