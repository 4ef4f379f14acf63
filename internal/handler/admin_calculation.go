package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pensionkladska/reservation-api/internal/booking"
	"github.com/pensionkladska/reservation-api/internal/model"
	"github.com/pensionkladska/reservation-api/internal/repository"
)

type calculationReq struct {
	RoomIDs          []uint64            `json:"room_ids"`
	CustomPrices     map[string]float64  `json:"custom_prices"`
	IncludePersonFee bool                `json:"include_person_fee"`
	IncludePetFee    bool                `json:"include_pet_fee"`
	Extras           []booking.ExtraItem `json:"extras"`
}

func (r calculationReq) toInput() booking.CalculationInput {
	in := booking.CalculationInput{
		RoomIDs:          r.RoomIDs,
		IncludePersonFee: r.IncludePersonFee,
		IncludePetFee:    r.IncludePetFee,
		Extras:           r.Extras,
	}
	// JSON object keys are strings; non-numeric keys are dropped
	if len(r.CustomPrices) > 0 {
		in.CustomPrices = make(map[uint64]float64, len(r.CustomPrices))
		for k, v := range r.CustomPrices {
			if id, err := strconv.ParseUint(k, 10, 64); err == nil {
				in.CustomPrices[id] = v
			}
		}
	}
	return in
}

// Quote handles POST /v1/admin/reservations/:id/calculation.  It computes
// the reviewed price breakdown without persisting anything, so the
// operator can iterate on overrides and extra items.
func (h *ReservationHandler) Quote(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req calculationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := req.toInput()

	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	roomIDs := in.RoomIDs
	if len(roomIDs) == 0 {
		// default to the rooms already assigned
		rooms, err := h.Reservations.RoomsFor(ctx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		for _, r := range rooms {
			roomIDs = append(roomIDs, r.ID)
		}
		in.RoomIDs = roomIDs
	}

	roomModels, err := h.roomsByIDs(c, in.RoomIDs)
	if err != nil {
		return bookingError(c, err)
	}
	quote, err := booking.BuildQuote(res, roomModels, in)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}

// ConfirmCalculation handles POST /v1/admin/reservations/:id/calculation/confirm.
// The reviewed rooms are re-checked and assigned, the reservation marked
// accepted with the reviewed total, and the confirmation sent with the
// full breakdown.
func (h *ReservationHandler) ConfirmCalculation(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req calculationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := req.toInput()

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

	result, quote, err := booking.ConfirmCalculation(ctx, repository.NewTxStore(tx), id, in)
	if err != nil {
		return bookingError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.publishConfirmation(ctx, result, in.Extras)
	return c.JSON(http.StatusOK, echo.Map{
		"reservation": result.Reservation,
		"quote":       quote,
		"total":       result.Total,
	})
}

// roomsByIDs loads the named rooms outside a booking transaction, with
// the same validation the transitions apply.
func (h *ReservationHandler) roomsByIDs(c echo.Context, ids []uint64) ([]model.Room, error) {
	if len(ids) == 0 {
		return nil, booking.ErrEmptyRoomSelection
	}
	ctx := c.Request().Context()
	out := make([]model.Room, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		room, err := h.Rooms.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRoomNotFound) {
				return nil, booking.ErrInvalidRoom
			}
			return nil, err
		}
		out = append(out, *room)
	}
	if len(out) == 0 {
		return nil, booking.ErrEmptyRoomSelection
	}
	return out, nil
}
