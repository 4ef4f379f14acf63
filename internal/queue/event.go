// Package queue defines message payloads exchanged over the broker and the
// background consumer that turns them into guest notifications.
package queue

// EventRoom is one room line of a confirmed stay, with the nightly price
// that was actually charged.
type EventRoom struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// EventExtra is one extra billing item from a calculation review.
type EventExtra struct {
	Amount float64 `json:"amount"`
	Label  string  `json:"label"`
}

// ReservationConfirmedEvent is published after a reservation is accepted
// and committed.  It carries everything the confirmation e-mail needs so
// the consumer never queries the primary database.
type ReservationConfirmedEvent struct {
	ReservationID  uint64       `json:"reservation_id"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Email          string       `json:"email"`
	DateFrom       string       `json:"date_from"`
	DateTo         string       `json:"date_to"`
	Nights         int          `json:"nights"`
	Persons        int          `json:"persons"`
	Pet            bool         `json:"pet"`
	Rooms          []EventRoom  `json:"rooms"`
	Extras         []EventExtra `json:"extras,omitempty"`
	Total          float64      `json:"total"`
	VariableSymbol string       `json:"variable_symbol"`
	ConfirmedAt    string       `json:"confirmed_at"`
}
