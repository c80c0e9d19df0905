package model

import "time"

// Airport is a row in the `airports` table. The IATA code is the unique
// three-letter identifier used in every route and report key.
//
// Fields:
//  ID       – primary key identifier.
//  IATA     – unique 3-letter code, stored upper case.
//  Name     – full airport name.
//  City     – city served by the airport.
//  Country  – country the airport is located in.
//  Timezone – IANA timezone name (display only; all stored times are UTC).
type Airport struct {
	ID        uint64    // airports.id
	IATA      string    // airports.iata
	Name      string    // airports.name
	City      string    // airports.city
	Country   string    // airports.country
	Timezone  string    // airports.timezone
	CreatedAt time.Time // airports.created_at
}

// Route is a row in the `routes` table connecting two airports. Origin and
// destination must differ; the repository enforces this before insert.
type Route struct {
	ID              uint64    // routes.id
	OriginAirportID uint64    // routes.origin_airport_id
	DestAirportID   uint64    // routes.dest_airport_id
	DistanceKm      uint32    // routes.distance_km
	CreatedAt       time.Time // routes.created_at
}
