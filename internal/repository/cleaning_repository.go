package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pensionkladska/reservation-api/internal/model"
)

// CleaningRepo manages the cleaning schedule shown in the admin calendar.
type CleaningRepo struct {
	db *sql.DB
}

// NewCleaningRepo returns a CleaningRepo bound to the given database.
func NewCleaningRepo(db *sql.DB) *CleaningRepo { return &CleaningRepo{db: db} }

// ListInRange returns cleaning records falling into the inclusive range.
func (r *CleaningRepo) ListInRange(ctx context.Context, from, to time.Time) ([]model.CleaningRecord, error) {
	const q = `SELECT id, room_id, day FROM cleanings WHERE day BETWEEN ? AND ? ORDER BY day, room_id`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CleaningRecord
	for rows.Next() {
		var m model.CleaningRecord
		if err := rows.Scan(&m.ID, &m.RoomID, &m.Day); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create schedules a room for cleaning on a day and sets the generated ID.
func (r *CleaningRepo) Create(ctx context.Context, m *model.CleaningRecord) error {
	const q = `INSERT INTO cleanings (room_id, day) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.RoomID, m.Day)
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

// Delete removes a scheduled cleaning.
func (r *CleaningRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM cleanings WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCleaningNotFound
	}
	return nil
}
