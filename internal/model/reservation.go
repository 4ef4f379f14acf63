package model

import "time"

// Reservation is a guest's booked stay.  A reservation starts as a pending
// request (Solved=false) filed from the public site, or is created directly
// as accepted by staff.  Dates are calendar dates without a time component;
// DateFrom must not be after DateTo.  The stay blocks its rooms for the
// whole inclusive interval while only DateTo−DateFrom nights are charged.
//
// Fields:
//  ID         – primary key identifier.
//  FirstName  – guest first name.
//  LastName   – guest last name.
//  Email      – contact e-mail, confirmation messages go here.
//  Phone      – contact phone number.
//  Persons    – number of accommodated persons (≥1).
//  Pet        – whether a pet stays too (nightly surcharge).
//  DateFrom   – arrival day.
//  DateTo     – departure day.
//  Note       – free-form note from the guest.
//  Solved     – false=pending request, true=accepted/confirmed.
//  Old        – archival marker, archived stays drop out of listings.
//  Deposit    – amount paid so far.
//  TotalPrice – computed stay total, rounded to whole CZK at persistence.
//  GdprAt     – when the guest consented to data processing.
type Reservation struct {
	ID         uint64    `json:"id"`          // reservations.id
	FirstName  string    `json:"first_name"`  // reservations.first_name
	LastName   string    `json:"last_name"`   // reservations.last_name
	Email      string    `json:"email"`       // reservations.email
	Phone      string    `json:"phone"`       // reservations.phone
	Persons    int       `json:"persons"`     // reservations.persons
	Pet        bool      `json:"pet"`         // reservations.pet
	DateFrom   time.Time `json:"date_from"`   // reservations.date_from (DATE)
	DateTo     time.Time `json:"date_to"`     // reservations.date_to (DATE)
	Note       string    `json:"note"`        // reservations.note
	Solved     bool      `json:"solved"`      // reservations.solved
	Old        bool      `json:"old"`         // reservations.old
	Deposit    float64   `json:"deposit"`     // reservations.deposit
	TotalPrice float64   `json:"total_price"` // reservations.total_price
	GdprAt     time.Time `json:"gdpr_at"`     // reservations.gdpr_at
}

// RoomAssignment links a reservation to one room it occupies.  A
// reservation may hold several rooms; a room may serve several
// reservations only in non-overlapping intervals.
type RoomAssignment struct {
	ReservationID uint64 `json:"reservation_id"` // reservation_rooms.reservation_id
	RoomID        uint64 `json:"room_id"`        // reservation_rooms.room_id
}

// ReservationComment is a staff note attached to a reservation.
type ReservationComment struct {
	ID            uint64    `json:"id"`             // reservation_comments.id
	ReservationID uint64    `json:"reservation_id"` // reservation_comments.reservation_id
	Note          string    `json:"note"`           // reservation_comments.note
	CreatedAt     time.Time `json:"created_at"`     // reservation_comments.created_at
}
