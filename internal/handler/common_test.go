package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/service"
)

func mapError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, writeServiceError(c, err))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestWriteServiceError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", &service.Error{Kind: service.KindUnauthorized, Msg: "nope"}, http.StatusUnauthorized},
		{"invalid", &service.Error{Kind: service.KindInvalidRequest, Msg: "bad"}, http.StatusBadRequest},
		{"not found", &service.Error{Kind: service.KindNotFound, Msg: "gone"}, http.StatusNotFound},
		{"conflict", &service.Error{Kind: service.KindConflict, Msg: "dup"}, http.StatusConflict},
		{"seat conflict", &service.Error{Kind: service.KindSeatConflict, Msg: "taken"}, http.StatusConflict},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := mapError(t, tc.err)
			assert.Equal(t, tc.want, code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestWriteServiceErrorSoldOutPayload(t *testing.T) {
	code, body := mapError(t, &service.Error{
		Kind:           service.KindSoldOut,
		Msg:            "not enough seats: 2 remaining",
		SeatsRemaining: 2,
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, float64(2), body["seats_remaining"])
}

func TestWriteServiceErrorHidesInternals(t *testing.T) {
	_, body := mapError(t, errors.New("dial tcp 10.0.0.5:3306: connection refused"))
	assert.Equal(t, "internal error", body["error"])
}

func TestQueryTime(t *testing.T) {
	e := echo.New()
	newCtx := func(qs string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/v1/flights?"+qs, nil)
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("absent", func(t *testing.T) {
		got, err := queryTime(newCtx(""), "from")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("date only", func(t *testing.T) {
		got, err := queryTime(newCtx("from=2026-08-01"), "from")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 2026, got.Year())
		assert.Equal(t, 0, got.Hour())
	})

	t.Run("rfc3339", func(t *testing.T) {
		got, err := queryTime(newCtx("from=2026-08-01T10:30:00Z"), "from")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 10, got.Hour())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := queryTime(newCtx("from=yesterday"), "from")
		assert.Error(t, err)
	})
}
