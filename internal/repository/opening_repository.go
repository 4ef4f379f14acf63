package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pensionkladska/reservation-api/internal/model"
)

// OpeningRepo manages restaurant opening hours: the regular weekly grid
// plus dated exceptions (holidays, private events, one-off closures).
type OpeningRepo struct {
	db *sql.DB
}

// NewOpeningRepo returns an OpeningRepo bound to the given database.
func NewOpeningRepo(db *sql.DB) *OpeningRepo { return &OpeningRepo{db: db} }

// ListRegular returns the weekly hours in weekday order (1=Monday).
func (r *OpeningRepo) ListRegular(ctx context.Context) ([]model.OpeningHours, error) {
	const q = `SELECT id, day_of_week, opens, closes, overnight FROM opening_hours ORDER BY day_of_week`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OpeningHours
	for rows.Next() {
		var m model.OpeningHours
		if err := rows.Scan(&m.ID, &m.DayOfWeek, &m.Opens, &m.Closes, &m.Overnight); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertRegular replaces the hours for one weekday.
func (r *OpeningRepo) UpsertRegular(ctx context.Context, m *model.OpeningHours) error {
	const q = `INSERT INTO opening_hours (day_of_week, opens, closes, overnight)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE opens = VALUES(opens), closes = VALUES(closes), overnight = VALUES(overnight)`
	_, err := r.db.ExecContext(ctx, q, m.DayOfWeek, m.Opens, m.Closes, m.Overnight)
	return err
}

// ListExceptions returns exceptions falling into the inclusive date range.
func (r *OpeningRepo) ListExceptions(ctx context.Context, from, to time.Time) ([]model.OpeningException, error) {
	const q = `SELECT id, day, is_closed, opens, closes, overnight, note
	           FROM opening_exceptions WHERE day BETWEEN ? AND ? ORDER BY day`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OpeningException
	for rows.Next() {
		var m model.OpeningException
		if err := rows.Scan(&m.ID, &m.Day, &m.IsClosed, &m.Opens, &m.Closes, &m.Overnight, &m.Note); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertException stores an exception for one date, replacing any previous
// exception on the same day.
func (r *OpeningRepo) UpsertException(ctx context.Context, m *model.OpeningException) error {
	const q = `INSERT INTO opening_exceptions (day, is_closed, opens, closes, overnight, note)
	           VALUES (?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE is_closed = VALUES(is_closed), opens = VALUES(opens),
	               closes = VALUES(closes), overnight = VALUES(overnight), note = VALUES(note)`
	_, err := r.db.ExecContext(ctx, q, m.Day, m.IsClosed, m.Opens, m.Closes, m.Overnight, m.Note)
	return err
}

// DeleteException removes the exception for one date.  Deleting a day with
// no exception is not an error.
func (r *OpeningRepo) DeleteException(ctx context.Context, day time.Time) error {
	const q = `DELETE FROM opening_exceptions WHERE day = ?`
	_, err := r.db.ExecContext(ctx, q, day)
	return err
}
