// Package service holds the business rules between the HTTP handlers and
// the repositories: authentication, seat allocation, admin validation and
// the reporting computations.
package service

import "fmt"

// Kind classifies a service failure so the HTTP layer can pick a status
// code without inspecting the message.
type Kind int

const (
	KindUnauthorized Kind = iota + 1
	KindInvalidRequest
	KindConflict
	KindNotFound
	KindSoldOut
	KindSeatConflict
)

// Error is the failure type returned by all service operations.
// SeatsRemaining is only meaningful for KindSoldOut.
type Error struct {
	Kind           Kind
	Msg            string
	SeatsRemaining int
}

func (e *Error) Error() string { return e.Msg }

func errUnauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

func errInvalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Msg: fmt.Sprintf(format, args...)}
}

func errConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

func errNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func errSoldOut(remaining int) *Error {
	return &Error{
		Kind:           KindSoldOut,
		Msg:            fmt.Sprintf("not enough seats: %d remaining", remaining),
		SeatsRemaining: remaining,
	}
}

func errSeatConflict(msg string) *Error {
	return &Error{Kind: KindSeatConflict, Msg: msg}
}
