package model

import "time"

// CleaningRecord schedules a room for cleaning on a given day.  Cleaning is
// independent of reservations; the records only show up next to them in the
// admin calendar.
type CleaningRecord struct {
	ID     uint64    `json:"id"`      // cleanings.id
	RoomID uint64    `json:"room_id"` // cleanings.room_id
	Day    time.Time `json:"day"`     // cleanings.day (DATE)
}
