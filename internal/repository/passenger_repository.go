package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// PassengerRepo provides persistence for passengers.
type PassengerRepo struct {
	db *sql.DB
}

// NewPassengerRepo constructs a PassengerRepo with the given DB handle.
func NewPassengerRepo(db *sql.DB) *PassengerRepo { return &PassengerRepo{db: db} }

// GetOrCreate resolves a passenger by passport number, creating the record
// when none exists. The upsert is idempotent: booking twice with the same
// passport reuses the same passenger id. When a concurrent insert wins the
// race on the unique passport index, the existing row is re-read and
// returned.
func (r *PassengerRepo) GetOrCreate(ctx context.Context, p *model.Passenger) error {
	p.PassportNo = strings.ToUpper(strings.TrimSpace(p.PassportNo))
	if existing, err := r.getByPassport(ctx, p.PassportNo); err == nil {
		*p = existing
		return nil
	} else if err != sql.ErrNoRows {
		return err
	}
	const ins = `INSERT INTO passengers (full_name, passport_no, nationality, dob) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, ins, p.FullName, p.PassportNo, p.Nationality, p.DOB.UTC())
	if err != nil {
		if isDupKey(err, "uq_passengers_passport") {
			existing, err2 := r.getByPassport(ctx, p.PassportNo)
			if err2 != nil {
				return err2
			}
			*p = existing
			return nil
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

func (r *PassengerRepo) getByPassport(ctx context.Context, passport string) (model.Passenger, error) {
	const q = `SELECT id, full_name, passport_no, nationality, dob
	           FROM passengers WHERE passport_no = ? LIMIT 1`
	var p model.Passenger
	var nat sql.NullString
	err := r.db.QueryRowContext(ctx, q, passport).Scan(&p.ID, &p.FullName, &p.PassportNo, &nat, &p.DOB)
	if err != nil {
		return model.Passenger{}, err
	}
	if nat.Valid {
		s := nat.String
		p.Nationality = &s
	}
	return p, nil
}
