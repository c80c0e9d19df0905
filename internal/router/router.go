// Package router wires the HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/config"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/handler"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/middleware"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// Deps carries everything the route table needs. rdb may be nil, which
// turns the cache and rate limiter into pass-throughs.
type Deps struct {
	Auth     *handler.AuthHandler
	Bookings *handler.BookingHandler
	Admin    *handler.AdminHandler
	Reports  *handler.ReportHandler
	Tokens   middleware.TokenValidator
	Rdb      *redis.Client
}

// Register sets up the full route table:
//
//	/healthz                     public liveness probe
//	/v1/auth/*                   register, login, logout, me
//	/v1/bookings                 booking flow (token checked by the service)
//	/v1/tickets/:id/*            agent desk ops (AGENT or ADMIN)
//	/v1/admin/*                  fleet and schedule mutations (ADMIN)
//	/v1/flights, /v1/reports/*   authenticated reports behind the cache
func Register(e *echo.Echo, d Deps) {
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Rdb))

	e.GET("/healthz", handler.Health)

	g := e.Group("/v1/auth")
	g.POST("/register", d.Auth.Register)
	g.POST("/login", d.Auth.Login)
	g.POST("/logout", d.Auth.Logout)
	g.GET("/me", d.Auth.Me)

	// Booking endpoints validate the bearer token inside the service so
	// that seat allocation and auth share a single error path.
	e.POST("/v1/bookings", d.Bookings.Book)
	e.GET("/v1/bookings", d.Bookings.ByPassport)

	desk := e.Group("/v1/tickets")
	desk.Use(middleware.SessionAuth(d.Tokens))
	desk.Use(middleware.RequireRole(model.RoleAgent, model.RoleAdmin))
	desk.POST("/:id/check-in", d.Bookings.CheckIn)
	desk.POST("/:id/baggage", d.Bookings.AddBaggage)

	admin := e.Group("/v1/admin")
	admin.Use(middleware.SessionAuth(d.Tokens))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/airports", d.Admin.CreateAirport)
	admin.POST("/routes", d.Admin.CreateRoute)
	admin.POST("/aircraft", d.Admin.CreateAircraft)
	admin.POST("/flights", d.Admin.CreateFlight)
	admin.PATCH("/flights/:id/status", d.Admin.SetFlightStatus)
	admin.POST("/crew", d.Admin.CreateCrew)
	admin.POST("/flights/:id/crew", d.Admin.AssignCrew)
	admin.POST("/maintenance", d.Admin.ScheduleMaintenance)
	admin.PATCH("/maintenance/:id/complete", d.Admin.CompleteMaintenance)

	reports := e.Group("/v1")
	reports.Use(middleware.SessionAuth(d.Tokens))
	reports.Use(middleware.NewRedisCache(config.LoadCacheConfig(), d.Rdb))
	reports.GET("/flights", d.Reports.Flights)
	reports.GET("/flights/search", d.Reports.SearchFlights)
	reports.GET("/flights/:id/seats", d.Reports.AvailableSeats)
	reports.GET("/reports/daily-manifest", d.Reports.DailyManifest)
	reports.GET("/reports/top-routes", d.Reports.TopRoutes)
	reports.GET("/reports/high-occupancy", d.Reports.HighOccupancy)
	reports.GET("/reports/on-time", d.Reports.OnTime)
	reports.GET("/reports/crew-conflicts", d.Reports.CrewConflicts)
	reports.GET("/reports/frequent-fliers", d.Reports.FrequentFliers)
	reports.GET("/reports/maintenance-alerts", d.Reports.MaintenanceAlerts)
	reports.GET("/reports/overweight-bags", d.Reports.OverweightBags)
	reports.GET("/reports/baggage-alerts", d.Reports.BaggageAlerts)
	reports.GET("/reports/daily-revenue", d.Reports.DailyRevenue)
	reports.GET("/reports/forecast", d.Reports.Forecast)
	reports.GET("/reports/connections", d.Reports.Connections)
}
