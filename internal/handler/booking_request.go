package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pensionkladska/reservation-api/internal/booking"
	"github.com/pensionkladska/reservation-api/internal/repository"
)

type reservationReq struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Persons   int      `json:"persons"`
	Pet       bool     `json:"pet"`
	DateFrom  string   `json:"date_from"`
	DateTo    string   `json:"date_to"`
	Note      string   `json:"note"`
	RoomIDs   []uint64 `json:"room_ids"`
	Gdpr      bool     `json:"gdpr"`
}

func (r reservationReq) toCreateInput(accepted bool) (booking.CreateInput, error) {
	from, err := booking.ParseDate(r.DateFrom)
	if err != nil {
		return booking.CreateInput{}, err
	}
	to, err := booking.ParseDate(r.DateTo)
	if err != nil {
		return booking.CreateInput{}, err
	}
	return booking.CreateInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Persons:   r.Persons,
		Pet:       r.Pet,
		From:      from,
		To:        to,
		Note:      r.Note,
		RoomIDs:   r.RoomIDs,
		Accepted:  accepted,
	}, nil
}

// Request handles POST /v1/reservations, the public booking form.  The
// reservation is stored as a pending request; staff accept it later and
// only then is the confirmation sent.  The endpoint sits behind the rate
// limiter.
func (h *ReservationHandler) Request(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !req.Gdpr {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "gdpr consent required"})
	}
	in, err := req.toCreateInput(false)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}
	in.GdprAt = nowUTC()

	ctx := c.Request().Context()
	tx, err := h.Rooms.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	result, err := booking.Create(ctx, repository.NewTxStore(tx), in)
	if err != nil {
		return bookingError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{
		"id":     result.Reservation.ID,
		"nights": result.Nights,
		"total":  result.Total,
	})
}
