// Package handler contains the HTTP handlers. Handlers bind and decode the
// request, call into the service layer with a bounded context and translate
// service errors into status codes; no business rules live here.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/service"
)

// dbTimeout bounds every request-scoped database call.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// writeServiceError maps a service error kind to its HTTP status. Anything
// that is not a *service.Error is a 500; the message is not leaked.
func writeServiceError(c echo.Context, err error) error {
	var se *service.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case service.KindUnauthorized:
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": se.Msg})
		case service.KindInvalidRequest:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": se.Msg})
		case service.KindNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": se.Msg})
		case service.KindConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": se.Msg})
		case service.KindSoldOut:
			return c.JSON(http.StatusConflict, echo.Map{
				"error":           se.Msg,
				"seats_remaining": se.SeatsRemaining,
			})
		case service.KindSeatConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": se.Msg})
		}
	}
	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func paramID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func queryInt64(c echo.Context, name string, def int64) int64 {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// queryTime parses an RFC3339 or YYYY-MM-DD query parameter.
func queryTime(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t, nil
	}
	return nil, errors.New(name + " must be RFC3339 or YYYY-MM-DD")
}
