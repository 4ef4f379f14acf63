package repository

import (
	"context"
	"database/sql"

	"github.com/pensionkladska/reservation-api/internal/model"
)

// CommentRepo stores staff notes attached to reservations.
type CommentRepo struct {
	db *sql.DB
}

// NewCommentRepo returns a CommentRepo bound to the given database.
func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

// ListByReservation returns the notes of a reservation, oldest first.
func (r *CommentRepo) ListByReservation(ctx context.Context, reservationID uint64) ([]model.ReservationComment, error) {
	const q = `SELECT id, reservation_id, note, created_at
	           FROM reservation_comments WHERE reservation_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ReservationComment
	for rows.Next() {
		var m model.ReservationComment
		if err := rows.Scan(&m.ID, &m.ReservationID, &m.Note, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create attaches a note to a reservation and reads the row back so the
// generated id and timestamp are populated.
func (r *CommentRepo) Create(ctx context.Context, m *model.ReservationComment) error {
	const q = `INSERT INTO reservation_comments (reservation_id, note) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.ReservationID, m.Note)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	const sel = `SELECT created_at FROM reservation_comments WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, m.ID).Scan(&m.CreatedAt)
}

// Delete removes a note.  Removing a note that is already gone is not an
// error.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM reservation_comments WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
