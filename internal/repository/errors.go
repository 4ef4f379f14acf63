// Package repository holds the SQL data access layer.  Each repository
// wraps a *sql.DB and exposes the queries one entity needs; multi-step
// writes go through TxStore so they share a single transaction.  The
// sentinel errors below let handlers translate lookup failures into HTTP
// status codes without inspecting driver errors.
package repository

import "errors"

// ErrRoomNotFound is returned when a room lookup finds no row.
var ErrRoomNotFound = errors.New("room not found")

// ErrReservationNotFound is returned when a reservation lookup finds no row.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrMenuItemNotFound is returned when a menu item lookup finds no row.
var ErrMenuItemNotFound = errors.New("menu item not found")

// ErrUserNotFound is returned when a user lookup finds no row.
var ErrUserNotFound = errors.New("user not found")

// ErrCleaningNotFound is returned when a cleaning record lookup finds no row.
var ErrCleaningNotFound = errors.New("cleaning record not found")
