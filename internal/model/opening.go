package model

import "time"

// OpeningHours describes the regular restaurant hours for one weekday.
// Overnight marks hours that wrap past midnight (closes <= opens).
type OpeningHours struct {
	ID        uint64 `json:"id"`          // opening_hours.id
	DayOfWeek int    `json:"day_of_week"` // opening_hours.day_of_week (1=Monday..7=Sunday)
	Opens     string `json:"opens"`       // opening_hours.opens (HH:MM:SS)
	Closes    string `json:"closes"`      // opening_hours.closes (HH:MM:SS)
	Overnight bool   `json:"overnight"`   // opening_hours.overnight
}

// OpeningException overrides the regular hours for a single date, either
// with different hours or a full-day closure.
type OpeningException struct {
	ID        uint64    `json:"id"`        // opening_exceptions.id
	Day       time.Time `json:"day"`       // opening_exceptions.day (DATE)
	IsClosed  bool      `json:"is_closed"` // opening_exceptions.is_closed
	Opens     *string   `json:"opens"`     // opening_exceptions.opens (nullable)
	Closes    *string   `json:"closes"`    // opening_exceptions.closes (nullable)
	Overnight bool      `json:"overnight"` // opening_exceptions.overnight
	Note      *string   `json:"note"`      // opening_exceptions.note (nullable)
}
