package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pensionkladska/reservation-api/internal/model"
)

// RoomRepo provides access to the room catalog.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span several repositories.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// List returns the whole room catalog in id order.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, name, price FROM rooms ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
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

// GetByID returns a single room or ErrRoomNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, name, price FROM rooms WHERE id = ?`
	var m model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Name, &m.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a new room and sets its generated ID.
func (r *RoomRepo) Create(ctx context.Context, m *model.Room) error {
	const q = `INSERT INTO rooms (name, price) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// UpdatePrice changes the nightly price of a room.  Already stored
// reservation totals are not recomputed; the new price applies to future
// calculations only.
func (r *RoomRepo) UpdatePrice(ctx context.Context, id uint64, price float64) error {
	const q = `UPDATE rooms SET price = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, price, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// AvailableIDs returns the ids of rooms with no reservation overlapping the
// inclusive interval.  This feeds the public availability endpoint; the
// authoritative check still runs inside the booking transaction.
func (r *RoomRepo) AvailableIDs(ctx context.Context, from, to time.Time) ([]uint64, error) {
	const q = `SELECT rm.id FROM rooms rm
	           WHERE NOT EXISTS (
	               SELECT 1 FROM reservation_rooms rr
	               JOIN reservations r ON r.id = rr.reservation_id
	               WHERE rr.room_id = rm.id
	                 AND r.old = 0
	                 AND r.date_from <= ? AND r.date_to >= ?
	           )
	           ORDER BY rm.id`
	rows, err := r.db.QueryContext(ctx, q, to, from)
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
