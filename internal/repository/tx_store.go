package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/pensionkladska/reservation-api/internal/model"
)

// TxStore runs booking transitions inside one *sql.Tx.  The handler opens
// the transaction, wraps it in a TxStore, runs the transition and commits
// only on success; a rollback undoes every write the transition made.
// LockRooms takes FOR UPDATE row locks on the room rows, so two concurrent
// transitions over the same room serialize and the later one sees the
// earlier one's assignments when it re-checks availability.
type TxStore struct {
	tx *sql.Tx
}

// NewTxStore wraps an open transaction.
func NewTxStore(tx *sql.Tx) *TxStore { return &TxStore{tx: tx} }

// placeholders returns "?, ?, ..." for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func idArgs(ids []uint64) []any {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}

// RoomsByIDs loads the given rooms in id order.  Unknown ids are simply
// absent from the result; the caller notices by comparing lengths.
func (s *TxStore) RoomsByIDs(ctx context.Context, ids []uint64) ([]model.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := `SELECT id, name, price FROM rooms WHERE id IN (` + placeholders(len(ids)) + `) ORDER BY id`
	rows, err := s.tx.QueryContext(ctx, q, idArgs(ids)...)
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

// LockRooms takes row locks on the given rooms until the transaction ends.
// Rooms are locked in id order so two transitions locking an overlapping
// set cannot deadlock each other.
func (s *TxStore) LockRooms(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	q := `SELECT id FROM rooms WHERE id IN (` + placeholders(len(ids)) + `) ORDER BY id FOR UPDATE`
	rows, err := s.tx.QueryContext(ctx, q, idArgs(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return err
		}
	}
	return rows.Err()
}

// RoomAvailable reports whether the room has no assignment of a live
// reservation overlapping the inclusive interval.  Two stays sharing a
// boundary day conflict; departure and arrival never share a room on the
// same day.  excludeReservationID leaves the reservation's own assignments
// out of the check (0 excludes nothing).
func (s *TxStore) RoomAvailable(ctx context.Context, roomID uint64, from, to time.Time, excludeReservationID uint64) (bool, error) {
	q := `SELECT NOT EXISTS (
	          SELECT 1 FROM reservation_rooms rr
	          JOIN reservations r ON r.id = rr.reservation_id
	          WHERE rr.room_id = ?
	            AND r.old = 0
	            AND r.date_from <= ? AND r.date_to >= ?`
	args := []any{roomID, to, from}
	if excludeReservationID != 0 {
		q += ` AND r.id <> ?`
		args = append(args, excludeReservationID)
	}
	q += `)`

	var free bool
	if err := s.tx.QueryRowContext(ctx, q, args...).Scan(&free); err != nil {
		return false, err
	}
	return free, nil
}

// ReservationByID returns (nil, nil) when the reservation does not exist,
// which the lifecycle maps to its own not-found error.
func (s *TxStore) ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	m, err := scanReservation(s.tx.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

// InsertReservation stores a new reservation and sets its generated ID.
func (s *TxStore) InsertReservation(ctx context.Context, r *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (first_name, last_name, email, phone, persons, pet, date_from, date_to, note, solved, old, deposit, total_price, gdpr_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?)`
	res, err := s.tx.ExecContext(ctx, q,
		r.FirstName, r.LastName, r.Email, r.Phone, r.Persons, r.Pet,
		r.DateFrom, r.DateTo, r.Note, r.Solved, r.TotalPrice, r.GdprAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = uint64(id)
	return nil
}

// UpdateDatesAndTotal moves the stay and stores the recomputed total in a
// single statement.
func (s *TxStore) UpdateDatesAndTotal(ctx context.Context, id uint64, from, to time.Time, total float64) error {
	const q = `UPDATE reservations SET date_from = ?, date_to = ?, total_price = ? WHERE id = ?`
	_, err := s.tx.ExecContext(ctx, q, from, to, total, id)
	return err
}

// MarkSolved accepts the reservation and stores its final total.
func (s *TxStore) MarkSolved(ctx context.Context, id uint64, total float64) error {
	const q = `UPDATE reservations SET solved = 1, total_price = ? WHERE id = ?`
	_, err := s.tx.ExecContext(ctx, q, total, id)
	return err
}

// UpdateTotal stores a recomputed total.
func (s *TxStore) UpdateTotal(ctx context.Context, id uint64, total float64) error {
	const q = `UPDATE reservations SET total_price = ? WHERE id = ?`
	_, err := s.tx.ExecContext(ctx, q, total, id)
	return err
}

// SetDeposit stores the amount paid so far.
func (s *TxStore) SetDeposit(ctx context.Context, id uint64, amount float64) error {
	const q = `UPDATE reservations SET deposit = ? WHERE id = ?`
	_, err := s.tx.ExecContext(ctx, q, amount, id)
	return err
}

// DeleteReservation removes the reservation row.  Assignments must be
// deleted first; the foreign key would reject the delete otherwise.
func (s *TxStore) DeleteReservation(ctx context.Context, id uint64) error {
	const q = `DELETE FROM reservations WHERE id = ?`
	_, err := s.tx.ExecContext(ctx, q, id)
	return err
}

// AssignedRoomIDs returns the ids of rooms currently assigned to the
// reservation, in id order.
func (s *TxStore) AssignedRoomIDs(ctx context.Context, reservationID uint64) ([]uint64, error) {
	const q = `SELECT room_id FROM reservation_rooms WHERE reservation_id = ? ORDER BY room_id`
	rows, err := s.tx.QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertAssignments links the reservation to each room in one statement.
func (s *TxStore) InsertAssignments(ctx context.Context, reservationID uint64, roomIDs []uint64) error {
	if len(roomIDs) == 0 {
		return nil
	}
	q := `INSERT INTO reservation_rooms (reservation_id, room_id) VALUES `
	args := make([]any, 0, len(roomIDs)*2)
	for i, roomID := range roomIDs {
		if i > 0 {
			q += ","
		}
		q += "(?, ?)"
		args = append(args, reservationID, roomID)
	}
	_, err := s.tx.ExecContext(ctx, q, args...)
	return err
}

// DeleteAssignments drops every room assignment of the reservation.
func (s *TxStore) DeleteAssignments(ctx context.Context, reservationID uint64) error {
	const q = `DELETE FROM reservation_rooms WHERE reservation_id = ?`
	_, err := s.tx.ExecContext(ctx, q, reservationID)
	return err
}
