// Package repository implements the data access layer: one repo per entity,
// raw SQL against MySQL, and transaction-scoped variants carrying a Tx suffix.
// Sentinel errors defined here let handlers and services distinguish failure
// scenarios without inspecting driver errors themselves.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when an insert or update violates a uniqueness
// constraint other than the seat and booking-reference indexes, such as a
// duplicate IATA code, tail number or email.
var ErrConflict = errors.New("conflict")

// ErrSeatTaken is returned when inserting tickets trips the unique
// (flight_id, seat_number) index. It means a concurrent booking won the race
// for at least one requested seat; the caller may re-read the seat map and
// retry.
var ErrSeatTaken = errors.New("seat already taken")

// errRefTaken signals a booking-reference collision inside the booking
// transaction. It never escapes the repository: CreateBooking regenerates the
// reference and retries.
var errRefTaken = errors.New("booking reference already taken")

// isDupKey reports whether err is a MySQL duplicate-key rejection (1062).
// When key is non-empty the error message must also name that index, which
// distinguishes the seat index from the booking-reference index inside the
// same transaction.
func isDupKey(err error, key string) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != 1062 {
		return false
	}
	return key == "" || strings.Contains(me.Message, key)
}

// isFKViolation reports a MySQL foreign-key rejection (1452): the referenced
// parent row does not exist.
func isFKViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1452
}
