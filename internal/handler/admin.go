package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/service"
)

// AdminHandler serves the fleet and schedule mutations. Every route in this
// group sits behind SessionAuth plus RequireRole(ADMIN).
type AdminHandler struct {
	Admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{Admin: admin}
}

// ----- DTOs -----

type airportReq struct {
	IATA     string `json:"iata"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

type routeReq struct {
	OriginIATA string `json:"origin_iata"`
	DestIATA   string `json:"dest_iata"`
	DistanceKm uint32 `json:"distance_km"`
}

type aircraftReq struct {
	TailNumber string `json:"tail_number"`
	Model      string `json:"model"`
	Capacity   uint32 `json:"capacity"`
}

type flightReq struct {
	FlightNumber string    `json:"flight_number"`
	OriginIATA   string    `json:"origin_iata"`
	DestIATA     string    `json:"dest_iata"`
	TailNumber   string    `json:"tail_number"`
	DepartureUtc time.Time `json:"departure_utc"`
	ArrivalUtc   time.Time `json:"arrival_utc"`
}

type statusReq struct {
	Status           string     `json:"status"`
	ActualArrivalUtc *time.Time `json:"actual_arrival_utc,omitempty"`
}

type crewReq struct {
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	LicenseNo *string `json:"license_no,omitempty"`
}

type assignCrewReq struct {
	CrewID       uint64  `json:"crew_id"`
	RoleOnFlight *string `json:"role_on_flight,omitempty"`
}

type maintenanceReq struct {
	TailNumber      string    `json:"tail_number"`
	WorkType        string    `json:"work_type"`
	Notes           *string   `json:"notes,omitempty"`
	ScheduledUtc    time.Time `json:"scheduled_utc"`
	GroundsAircraft bool      `json:"grounds_aircraft"`
}

func (h *AdminHandler) CreateAirport(c echo.Context) error {
	var req airportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Admin.CreateAirport(ctx, req.IATA, req.Name, req.City, req.Country, req.Timezone)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": a.ID, "iata": a.IATA})
}

func (h *AdminHandler) CreateRoute(c echo.Context) error {
	var req routeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rt, err := h.Admin.CreateRoute(ctx, req.OriginIATA, req.DestIATA, req.DistanceKm)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": rt.ID, "distance_km": rt.DistanceKm})
}

func (h *AdminHandler) CreateAircraft(c echo.Context) error {
	var req aircraftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Admin.CreateAircraft(ctx, req.TailNumber, req.Model, req.Capacity)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": a.ID, "tail_number": a.TailNumber, "capacity": a.Capacity})
}

func (h *AdminHandler) CreateFlight(c echo.Context) error {
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	f, err := h.Admin.CreateFlight(ctx, req.FlightNumber, req.OriginIATA, req.DestIATA,
		req.TailNumber, req.DepartureUtc, req.ArrivalUtc)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":            f.ID,
		"flight_number": f.FlightNumber,
		"departure_utc": f.DepartureUtc,
		"status":        f.Status,
	})
}

func (h *AdminHandler) SetFlightStatus(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Admin.SetFlightStatus(ctx, id, req.Status, req.ActualArrivalUtc); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"flight_id": id, "status": req.Status})
}

func (h *AdminHandler) CreateCrew(c echo.Context) error {
	var req crewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	cm, err := h.Admin.CreateCrew(ctx, req.FullName, req.Role, req.LicenseNo)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": cm.ID, "full_name": cm.FullName, "role": cm.Role})
}

func (h *AdminHandler) AssignCrew(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	var req assignCrewReq
	if err := c.Bind(&req); err != nil || req.CrewID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "crew_id required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Admin.AssignCrew(ctx, id, req.CrewID, req.RoleOnFlight); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"flight_id": id, "crew_id": req.CrewID})
}

func (h *AdminHandler) ScheduleMaintenance(c echo.Context) error {
	var req maintenanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Admin.ScheduleMaintenance(ctx, req.TailNumber, req.WorkType, req.Notes,
		req.ScheduledUtc, req.GroundsAircraft)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": m.ID, "aircraft_id": m.AircraftID, "work_type": m.WorkType})
}

func (h *AdminHandler) CompleteMaintenance(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Admin.CompleteMaintenance(ctx, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"task_id": id, "completed": true})
}
