// Package handler contains the HTTP handlers.  Handlers bind and validate
// the request, open a transaction when a booking transition runs, and
// translate domain errors into JSON responses.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pensionkladska/reservation-api/internal/booking"
	"github.com/pensionkladska/reservation-api/internal/queue"
)

func nowUTC() time.Time { return time.Now().UTC() }

// getUserID extracts the authenticated user id stored by the JWT
// middleware.  JSON numbers arrive as float64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

// dateRange binds ?from and ?to query parameters as calendar dates.
func dateRange(c echo.Context) (from, to time.Time, err error) {
	from, err = booking.ParseDate(c.QueryParam("from"))
	if err != nil {
		return
	}
	to, err = booking.ParseDate(c.QueryParam("to"))
	return
}

// bookingError maps a failed transition to its HTTP response.  Room
// conflicts get 409 with the names of every conflicting room so the
// operator can adjust the selection in one go.
func bookingError(c echo.Context, err error) error {
	var unavailable *booking.RoomUnavailableError
	switch {
	case errors.As(err, &unavailable):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "rooms no longer available",
			"rooms": unavailable.Rooms,
		})
	case errors.Is(err, booking.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, booking.ErrInvalidGuest),
		errors.Is(err, booking.ErrInvalidInterval),
		errors.Is(err, booking.ErrEmptyRoomSelection),
		errors.Is(err, booking.ErrInvalidRoom),
		errors.Is(err, booking.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// confirmationEvent assembles the broker payload for an accepted stay.
func confirmationEvent(res *booking.Result, extras []booking.ExtraItem) queue.ReservationConfirmedEvent {
	r := res.Reservation
	ev := queue.ReservationConfirmedEvent{
		ReservationID:  r.ID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		DateFrom:       booking.FormatDate(r.DateFrom),
		DateTo:         booking.FormatDate(r.DateTo),
		Nights:         res.Nights,
		Persons:        r.Persons,
		Pet:            r.Pet,
		Total:          res.Total,
		VariableSymbol: booking.VariableSymbol(r.DateFrom, r.DateTo),
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	for _, room := range res.Rooms {
		ev.Rooms = append(ev.Rooms, queue.EventRoom{Name: room.Name, Price: room.Price})
	}
	for _, ex := range extras {
		ev.Extras = append(ev.Extras, queue.EventExtra{Amount: ex.Amount, Label: ex.Label})
	}
	return ev
}
