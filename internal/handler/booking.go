package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/middleware"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/service"
)

// BookingHandler serves the booking and desk endpoints.
type BookingHandler struct {
	Bookings *service.BookingService
	Tickets  *service.TicketService
}

func NewBookingHandler(bookings *service.BookingService, tickets *service.TicketService) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Tickets: tickets}
}

// Book creates a booking for N seats on one flight. The service validates
// the bearer token itself so booking failures and auth failures share one
// error path.
func (h *BookingHandler) Book(c echo.Context) error {
	var req service.BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	resp, err := h.Bookings.Book(ctx, middleware.BearerToken(c), req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// ByPassport lists a passenger's bookings, newest first.
func (h *BookingHandler) ByPassport(c echo.Context) error {
	passport := c.QueryParam("passport")
	ctx, cancel := reqCtx(c)
	defer cancel()

	details, err := h.Bookings.ByPassport(ctx, middleware.BearerToken(c), passport)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

// CheckIn marks a ticket checked in. AGENT or ADMIN only, enforced by the
// route group.
func (h *BookingHandler) CheckIn(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Tickets.CheckIn(ctx, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ticket_id": id, "checked_in": true})
}

type baggageReq struct {
	WeightG   int64  `json:"weight_g"`
	TagNumber string `json:"tag_number"`
}

// AddBaggage registers one bag against a ticket.
func (h *BookingHandler) AddBaggage(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	var req baggageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	bg, err := h.Tickets.AddBaggage(ctx, id, req.WeightG, req.TagNumber)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"baggage_id": bg.ID,
		"ticket_id":  bg.TicketID,
		"weight_g":   bg.WeightG,
		"tag_number": bg.TagNumber,
	})
}
