package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/config"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/database"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/handler"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/queue"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/repository"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/router"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: response cache and rate limiting disabled")
	}

	airports := repository.NewAirportRepo(db)
	routes := repository.NewRouteRepo(db)
	aircraft := repository.NewAircraftRepo(db)
	flights := repository.NewFlightRepo(db)
	crew := repository.NewCrewRepo(db)
	maintenance := repository.NewMaintenanceRepo(db)
	passengers := repository.NewPassengerRepo(db)
	bookings := repository.NewBookingRepo(db)
	tickets := repository.NewTicketRepo(db)
	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	reports := repository.NewReportRepo(db)

	auth := service.NewAuthService(users, sessions, cfg.PBKDF2Iterations, cfg.SessionTTLDays)
	booking := service.NewBookingService(auth, bookings, passengers, flights, routes,
		queue.NewPublisher(), cfg.FallbackFareCents)
	ticketing := service.NewTicketService(tickets)
	admin := service.NewAdminService(airports, routes, aircraft, flights, crew, maintenance)
	reporting := service.NewReportService(reports, flights, bookings)

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Auth:     handler.NewAuthHandler(auth),
		Bookings: handler.NewBookingHandler(booking, ticketing),
		Admin:    handler.NewAdminHandler(admin),
		Reports:  handler.NewReportHandler(reporting),
		Tokens:   auth,
		Rdb:      rdb,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
