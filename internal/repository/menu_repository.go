package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pensionkladska/reservation-api/internal/model"
)

// MenuRepo manages the restaurant menu.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a MenuRepo bound to the given database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

// List returns the menu grouped for display: category order first, then
// item order within the category.
func (r *MenuRepo) List(ctx context.Context) ([]model.MenuItem, error) {
	const q = `SELECT id, name, description, category, price FROM menu_items ORDER BY category, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single menu item or ErrMenuItemNotFound.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (*model.MenuItem, error) {
	const q = `SELECT id, name, description, category, price FROM menu_items WHERE id = ?`
	var m model.MenuItem
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a new menu item and sets its generated ID.
func (r *MenuRepo) Create(ctx context.Context, m *model.MenuItem) error {
	const q = `INSERT INTO menu_items (name, description, category, price) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Description, m.Category, m.Price)
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

// Update rewrites all editable fields of a menu item.
func (r *MenuRepo) Update(ctx context.Context, m *model.MenuItem) error {
	const q = `UPDATE menu_items SET name = ?, description = ?, category = ?, price = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Description, m.Category, m.Price, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// Delete removes a menu item.
func (r *MenuRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM menu_items WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
