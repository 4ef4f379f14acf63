package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pensionkladska/reservation-api/internal/model"
)

// ReservationRepo provides read access and single-step writes for
// reservations.  Anything that touches room assignments or availability
// runs through TxStore instead, so the check and the write share one
// transaction.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, first_name, last_name, email, phone, persons, pet,
	date_from, date_to, note, solved, old, deposit, total_price, gdpr_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var m model.Reservation
	err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.Persons, &m.Pet,
		&m.DateFrom, &m.DateTo, &m.Note, &m.Solved, &m.Old, &m.Deposit, &m.TotalPrice, &m.GdprAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID returns a single reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	m, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return m, err
}

// List returns non-archived reservations filtered by state: solved=false
// gives the pending request queue, solved=true the accepted book.  Newest
// arrivals first.
func (r *ReservationRepo) List(ctx context.Context, solved bool) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE solved = ? AND old = 0 ORDER BY date_from DESC, id DESC`
	return r.list(ctx, q, solved)
}

// ListInRange returns accepted reservations whose stay touches the
// inclusive interval, for the calendar view.
func (r *ReservationRepo) ListInRange(ctx context.Context, from, to time.Time) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE solved = 1 AND old = 0 AND date_from <= ? AND date_to >= ?
	           ORDER BY date_from, id`
	return r.list(ctx, q, to, from)
}

func (r *ReservationRepo) list(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		m, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RoomsFor returns the rooms assigned to a reservation, in id order.
func (r *ReservationRepo) RoomsFor(ctx context.Context, reservationID uint64) ([]model.Room, error) {
	const q = `SELECT rm.id, rm.name, rm.price FROM rooms rm
	           JOIN reservation_rooms rr ON rr.room_id = rm.id
	           WHERE rr.reservation_id = ? ORDER BY rm.id`
	rows, err := r.db.QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Room
	for rows.Next() {
		var m model.Room
		if err := rows.Scan(&m.ID, &m.Name, &m.Price); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Archive flags a reservation as old so it drops out of the listings and
// stops blocking its rooms.  The row itself is kept.
func (r *ReservationRepo) Archive(ctx context.Context, id uint64) error {
	const q = `UPDATE reservations SET old = 1 WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}
