package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pensionkladska/reservation-api/internal/booking"
	"github.com/pensionkladska/reservation-api/internal/model"
	"github.com/pensionkladska/reservation-api/internal/repository"
)

// CalendarHandler serves the month overview the operators plan around:
// which rooms are occupied on which days and which cleanings are due.
type CalendarHandler struct {
	Reservations *repository.ReservationRepo
	Cleanings    *repository.CleaningRepo
}

func NewCalendarHandler(reservations *repository.ReservationRepo, cleanings *repository.CleaningRepo) *CalendarHandler {
	return &CalendarHandler{Reservations: reservations, Cleanings: cleanings}
}

type calendarReservation struct {
	model.Reservation
	Rooms []model.Room `json:"rooms"`
}

// Month handles GET /v1/admin/calendar?year=&month=.  Both parameters
// default to the current month.  Reservations touching the month are
// returned with their rooms, alongside the cleaning schedule.
func (h *CalendarHandler) Month(c echo.Context) error {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	if s := c.QueryParam("year"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 2000 || n > 2200 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
		}
		year = n
	}
	if s := c.QueryParam("month"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 12 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid month"})
		}
		month = n
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	ctx := c.Request().Context()
	reservations, err := h.Reservations.ListInRange(ctx, first, last)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]calendarReservation, 0, len(reservations))
	for _, res := range reservations {
		rooms, err := h.Reservations.RoomsFor(ctx, res.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if rooms == nil {
			rooms = []model.Room{}
		}
		out = append(out, calendarReservation{Reservation: res, Rooms: rooms})
	}

	cleanings, err := h.Cleanings.ListInRange(ctx, first, last)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if cleanings == nil {
		cleanings = []model.CleaningRecord{}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"year":         year,
		"month":        month,
		"reservations": out,
		"cleanings":    cleanings,
	})
}

// ListCleanings handles GET /v1/admin/cleanings?from=&to=.
func (h *CalendarHandler) ListCleanings(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from and to must be YYYY-MM-DD dates"})
	}
	out, err := h.Cleanings.ListInRange(c.Request().Context(), from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if out == nil {
		out = []model.CleaningRecord{}
	}
	return c.JSON(http.StatusOK, echo.Map{"cleanings": out})
}

// AddCleaning handles POST /v1/admin/cleanings.
func (h *CalendarHandler) AddCleaning(c echo.Context) error {
	var body struct {
		RoomID uint64 `json:"room_id"`
		Day    string `json:"day"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	day, err := booking.ParseDate(body.Day)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be a YYYY-MM-DD date"})
	}

	rec := &model.CleaningRecord{RoomID: body.RoomID, Day: day}
	if err := h.Cleanings.Create(c.Request().Context(), rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// DeleteCleaning handles DELETE /v1/admin/cleanings/:id.
func (h *CalendarHandler) DeleteCleaning(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cleaning id"})
	}
	if err := h.Cleanings.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCleaningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cleaning record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
