package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// ErrTicketNotFound is returned when a ticket lookup yields no rows.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepo provides ticket check-in and baggage attachment. Ticket creation
// lives in BookingRepo because it only ever happens inside the booking
// transaction.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// CheckIn marks a ticket as checked in. Checking in an already checked-in
// ticket is a no-op.
func (r *TicketRepo) CheckIn(ctx context.Context, ticketID uint64) error {
	const q = `UPDATE tickets SET checked_in = TRUE WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, ticketID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either unknown or already checked in; distinguish with a lookup.
		var exists bool
		const chk = `SELECT EXISTS(SELECT 1 FROM tickets WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, chk, ticketID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrTicketNotFound
		}
	}
	return nil
}

// AddBaggage attaches a bag to a ticket. The ticket must exist; baggage rows
// cascade-delete with it.
func (r *TicketRepo) AddBaggage(ctx context.Context, bg *model.Baggage) error {
	const q = `INSERT INTO baggage (ticket_id, weight_g, tag_number) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, bg.TicketID, bg.WeightG, bg.TagNumber)
	if err != nil {
		if isFKViolation(err) {
			return ErrTicketNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	bg.ID = uint64(id)
	return nil
}

