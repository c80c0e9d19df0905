package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/repository"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/service"
)

// ReportHandler serves the read-only analytics endpoints. All routes are
// GETs behind SessionAuth and fronted by the Redis response cache.
type ReportHandler struct {
	Reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// window reads the from/to query parameters with a default lookback window.
func window(c echo.Context, lookback time.Duration) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from, to := now.Add(-lookback), now
	if t, err := queryTime(c, "from"); err != nil {
		return from, to, err
	} else if t != nil {
		from = *t
	}
	if t, err := queryTime(c, "to"); err != nil {
		return from, to, err
	} else if t != nil {
		to = *t
	}
	return from, to, nil
}

// SearchFlights lists flights matching optional filters: from, to, origin,
// dest, min_fare_cents, max_fare_cents.
func (h *ReportHandler) SearchFlights(c echo.Context) error {
	var q repository.FlightSearchQuery
	var err error
	if q.FromUtc, err = queryTime(c, "from"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if q.ToUtc, err = queryTime(c, "to"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	q.OriginIATA = c.QueryParam("origin")
	q.DestIATA = c.QueryParam("dest")
	if v := queryInt64(c, "min_fare_cents", -1); v >= 0 {
		q.MinFareCents = &v
	}
	if v := queryInt64(c, "max_fare_cents", -1); v >= 0 {
		q.MaxFareCents = &v
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.SearchFlights(ctx, q)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Flights is the paged flight list: page, page_size, from, to.
func (h *ReportHandler) Flights(c echo.Context) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	page, err2 := h.Reports.FlightsPage(ctx, queryInt(c, "page", 1), queryInt(c, "page_size", 20), from, to)
	if err2 != nil {
		return writeServiceError(c, err2)
	}
	return c.JSON(http.StatusOK, page)
}

// AvailableSeats lists the free seat labels on one flight.
func (h *ReportHandler) AvailableSeats(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	seats, err := h.Reports.AvailableSeats(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, seats)
}

// DailyManifest lists departures for one UTC day (?day=YYYY-MM-DD,
// default today).
func (h *ReportHandler) DailyManifest(c echo.Context) error {
	day := time.Now().UTC()
	if t, err := queryTime(c, "day"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	} else if t != nil {
		day = *t
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.DailyManifest(ctx, day)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) TopRoutes(c echo.Context) error {
	from, to, err := window(c, 30*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.TopRoutes(ctx, from, to, queryInt(c, "top", 10))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) HighOccupancy(c echo.Context) error {
	from, to, err := window(c, 30*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.HighOccupancy(ctx, from, to, queryInt(c, "min_percent", service.DefaultOccupancyPct))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) OnTime(c echo.Context) error {
	from, to, err := window(c, 30*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.OnTimePerformance(ctx, from, to, queryInt(c, "tolerance_min", service.DefaultOnTimeToleranceMin))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) CrewConflicts(c echo.Context) error {
	from, to, err := window(c, 30*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.CrewConflicts(ctx, from, to)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// FrequentFliers ranks passengers by segments flown, or by distance with
// ?by=distance.
func (h *ReportHandler) FrequentFliers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.FrequentFliers(ctx, queryInt(c, "top", 10), c.QueryParam("by") == "distance")
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) MaintenanceAlerts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.MaintenanceAlerts(ctx,
		queryInt64(c, "distance_km", service.DefaultMaintDistanceKm),
		queryInt(c, "older_than_days", service.DefaultMaintOlderDays))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) OverweightBags(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.OverweightBags(ctx, queryInt64(c, "threshold_g", service.DefaultOverweightG))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) BaggageAlerts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.BaggageAlerts(ctx, queryInt64(c, "limit_g", service.DefaultBaggageLimitG))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) DailyRevenue(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.DailyRevenue(ctx, queryInt(c, "days", 30))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Forecast projects ticket demand for the next N days (?days=7,
// ?from=YYYY-MM-DD defaults to today).
func (h *ReportHandler) Forecast(c echo.Context) error {
	from := time.Now().UTC()
	if t, err := queryTime(c, "from"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	} else if t != nil {
		from = *t
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.ForecastDemand(ctx, from, queryInt(c, "days", 7))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) Connections(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.Connections(ctx, queryInt(c, "max_layover_hours", service.DefaultMaxLayoverHours))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
