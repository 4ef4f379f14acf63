package booking

import (
	"errors"
	"strings"
)

// Sentinel errors returned by validation before any write happens.
// Handlers translate them into 400/404 responses.
var (
	// ErrInvalidInterval means the arrival date is after the departure
	// date, or a date failed to parse.
	ErrInvalidInterval = errors.New("arrival date must not be after departure date")

	// ErrEmptyRoomSelection means no rooms were chosen where at least one
	// is required.
	ErrEmptyRoomSelection = errors.New("at least one room must be selected")

	// ErrInvalidRoom means a referenced room id does not exist.
	ErrInvalidRoom = errors.New("selected room does not exist")

	// ErrReservationNotFound means the operation referenced a reservation
	// id that does not exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidGuest means a required guest field (name, e-mail, phone or
	// person count) is missing or out of range.
	ErrInvalidGuest = errors.New("guest details are incomplete")

	// ErrInvalidAmount means a payment amount is negative.
	ErrInvalidAmount = errors.New("amount must not be negative")
)

// RoomUnavailableError reports that one or more requested rooms conflict
// with an existing assignment in the requested interval.  It carries every
// conflicting room name so callers can present actionable feedback instead
// of a generic failure.
type RoomUnavailableError struct {
	Rooms []string
}

func (e *RoomUnavailableError) Error() string {
	return "rooms no longer available: " + strings.Join(e.Rooms, ", ")
}
