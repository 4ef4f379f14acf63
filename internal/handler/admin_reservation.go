package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pensionkladska/reservation-api/internal/booking"
	"github.com/pensionkladska/reservation-api/internal/model"
	"github.com/pensionkladska/reservation-api/internal/repository"
	"github.com/pensionkladska/reservation-api/internal/service"
)

// ReservationHandler serves the public booking form and the back-office
// reservation agenda.  Every state transition runs inside one transaction
// via booking and TxStore; the confirmation event is published only after
// a successful commit, and a failed publish is logged, never surfaced to
// the client.
type ReservationHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
	Comments     *repository.CommentRepo
	Publisher    *service.Publisher
	Logger       zerolog.Logger
}

func NewReservationHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo, comments *repository.CommentRepo, pub *service.Publisher, logger zerolog.Logger) *ReservationHandler {
	return &ReservationHandler{
		Rooms:        rooms,
		Reservations: reservations,
		Comments:     comments,
		Publisher:    pub,
		Logger:       logger,
	}
}

// publishConfirmation fires the broker event for an accepted stay.
func (h *ReservationHandler) publishConfirmation(ctx context.Context, result *booking.Result, extras []booking.ExtraItem) {
	if h.Publisher == nil {
		return
	}
	if err := h.Publisher.PublishReservationConfirmed(ctx, confirmationEvent(result, extras)); err != nil {
		h.Logger.Error().Err(err).Uint64("reservation_id", result.Reservation.ID).Msg("confirmation publish failed")
	}
}

// List handles GET /v1/admin/reservations?state=pending|accepted.
func (h *ReservationHandler) List(c echo.Context) error {
	state := strings.ToLower(c.QueryParam("state"))
	var solved bool
	switch state {
	case "", "pending":
		solved = false
	case "accepted":
		solved = true
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "state must be pending or accepted"})
	}
	out, err := h.Reservations.List(c.Request().Context(), solved)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if out == nil {
		out = []model.Reservation{}
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

// Get handles GET /v1/admin/reservations/:id and includes the assigned
// rooms and staff comments.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.Reservations.RoomsFor(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	comments, err := h.Comments.ListByReservation(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rooms == nil {
		rooms = []model.Room{}
	}
	if comments == nil {
		comments = []model.ReservationComment{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservation":     res,
		"rooms":           rooms,
		"comments":        comments,
		"nights":          booking.Nights(res.DateFrom, res.DateTo),
		"variable_symbol": booking.VariableSymbol(res.DateFrom, res.DateTo),
	})
}

// Create handles POST /v1/admin/reservations.  Staff entries are accepted
// immediately (walk-ins, phone bookings) and the confirmation goes out
// right away.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in, err := req.toCreateInput(true)
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

	h.publishConfirmation(ctx, result, nil)
	return c.JSON(http.StatusCreated, echo.Map{
		"reservation": result.Reservation,
		"rooms":       result.Rooms,
		"nights":      result.Nights,
		"total":       result.Total,
	})
}

// Accept handles POST /v1/admin/reservations/:id/accept.  The body names
// the final room set; the rooms are re-checked and assigned atomically.
func (h *ReservationHandler) Accept(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		RoomIDs []uint64 `json:"room_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

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

	result, err := booking.Accept(ctx, repository.NewTxStore(tx), id, body.RoomIDs)
	if err != nil {
		return bookingError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.publishConfirmation(ctx, result, nil)
	return c.JSON(http.StatusOK, echo.Map{
		"reservation": result.Reservation,
		"rooms":       result.Rooms,
		"nights":      result.Nights,
		"total":       result.Total,
	})
}

// ChangeDates handles PUT /v1/admin/reservations/:id/dates.
func (h *ReservationHandler) ChangeDates(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	from, err := booking.ParseDate(body.DateFrom)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}
	to, err := booking.ParseDate(body.DateTo)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}

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

	result, err := booking.ChangeDates(ctx, repository.NewTxStore(tx), id, from, to)
	if err != nil {
		return bookingError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{
		"reservation": result.Reservation,
		"nights":      result.Nights,
		"total":       result.Total,
	})
}

// ChangeRooms handles PUT /v1/admin/reservations/:id/rooms.
func (h *ReservationHandler) ChangeRooms(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		RoomIDs []uint64 `json:"room_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

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

	result, err := booking.ChangeRooms(ctx, repository.NewTxStore(tx), id, body.RoomIDs)
	if err != nil {
		return bookingError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{
		"reservation": result.Reservation,
		"rooms":       result.Rooms,
		"total":       result.Total,
	})
}

// Cancel handles DELETE /v1/admin/reservations/:id.  The reservation and
// its assignments are removed and the rooms free up immediately.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

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

	if err := booking.Cancel(ctx, repository.NewTxStore(tx), id); err != nil {
		return bookingError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

// Deposit handles PUT /v1/admin/reservations/:id/deposit.
func (h *ReservationHandler) Deposit(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

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

	if err := booking.RecordDeposit(ctx, repository.NewTxStore(tx), id, body.Amount); err != nil {
		return bookingError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"id": id, "deposit": body.Amount})
}

// MarkPaid handles POST /v1/admin/reservations/:id/paid and sets the
// deposit equal to the stored total.
func (h *ReservationHandler) MarkPaid(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

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

	if err := booking.MarkPaid(ctx, repository.NewTxStore(tx), id); err != nil {
		return bookingError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"id": id, "paid": true})
}

// Archive handles POST /v1/admin/reservations/:id/archive.  Archived
// stays keep their data but stop blocking rooms and drop out of listings.
func (h *ReservationHandler) Archive(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.Archive(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "archived": true})
}

// Billing handles GET /v1/admin/reservations/:id/billing and splits the
// stored total into the accommodation part and the per-person fees, which
// are taxed differently.
func (h *ReservationHandler) Billing(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	nights := booking.Nights(res.DateFrom, res.DateTo)
	fees := float64(nights) * booking.PersonFeePerNight * float64(res.Persons)
	return c.JSON(http.StatusOK, echo.Map{
		"id":              res.ID,
		"total":           res.TotalPrice,
		"fees":            fees,
		"accommodation":   res.TotalPrice - fees,
		"deposit":         res.Deposit,
		"balance":         res.TotalPrice - res.Deposit,
		"variable_symbol": booking.VariableSymbol(res.DateFrom, res.DateTo),
	})
}

// ListComments handles GET /v1/admin/reservations/:id/comments.
func (h *ReservationHandler) ListComments(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	out, err := h.Comments.ListByReservation(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if out == nil {
		out = []model.ReservationComment{}
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": out})
}

// AddComment handles POST /v1/admin/reservations/:id/comments.
func (h *ReservationHandler) AddComment(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		Note string `json:"note"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body.Note = strings.TrimSpace(body.Note)
	if body.Note == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "note is required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Reservations.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	comment := &model.ReservationComment{ReservationID: id, Note: body.Note}
	if err := h.Comments.Create(ctx, comment); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /v1/admin/reservations/:id/comments/:comment_id.
func (h *ReservationHandler) DeleteComment(c echo.Context) error {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comment id"})
	}
	if err := h.Comments.Delete(c.Request().Context(), commentID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
