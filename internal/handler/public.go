package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pensionkladska/reservation-api/internal/booking"
	"github.com/pensionkladska/reservation-api/internal/model"
	"github.com/pensionkladska/reservation-api/internal/repository"
)

// PublicHandler serves the unauthenticated catalog: rooms, availability,
// the restaurant menu and opening hours.  These endpoints sit behind the
// response cache.
type PublicHandler struct {
	Rooms   *repository.RoomRepo
	Menus   *repository.MenuRepo
	Opening *repository.OpeningRepo
}

func NewPublicHandler(rooms *repository.RoomRepo, menu *repository.MenuRepo, opening *repository.OpeningRepo) *PublicHandler {
	return &PublicHandler{Rooms: rooms, Menus: menu, Opening: opening}
}

// ListRooms handles GET /v1/rooms.
func (h *PublicHandler) ListRooms(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rooms == nil {
		rooms = []model.Room{}
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

type availabilityRoom struct {
	model.Room
	Available bool `json:"available"`
}

// Availability handles GET /v1/rooms/availability?from=&to=.  The answer
// is advisory; the booking transaction re-checks before committing, so a
// room shown free here can still conflict a moment later.
func (h *PublicHandler) Availability(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from and to must be YYYY-MM-DD dates"})
	}
	if booking.Nights(from, to) < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must not be after to"})
	}

	ctx := c.Request().Context()
	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	freeIDs, err := h.Rooms.AvailableIDs(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	free := make(map[uint64]bool, len(freeIDs))
	for _, id := range freeIDs {
		free[id] = true
	}

	out := make([]availabilityRoom, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, availabilityRoom{Room: r, Available: free[r.ID]})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"from":  booking.FormatDate(from),
		"to":    booking.FormatDate(to),
		"rooms": out,
	})
}

// Menu handles GET /v1/menu.
func (h *PublicHandler) Menu(c echo.Context) error {
	items, err := h.Menus.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// OpeningHours handles GET /v1/opening-hours.  Exceptions are returned
// for the queried range when given, otherwise only the weekly grid.
func (h *PublicHandler) OpeningHours(c echo.Context) error {
	ctx := c.Request().Context()
	regular, err := h.Opening.ListRegular(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if regular == nil {
		regular = []model.OpeningHours{}
	}

	resp := echo.Map{"regular": regular}
	if c.QueryParam("from") != "" || c.QueryParam("to") != "" {
		from, to, err := dateRange(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from and to must be YYYY-MM-DD dates"})
		}
		exceptions, err := h.Opening.ListExceptions(ctx, from, to)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if exceptions == nil {
			exceptions = []model.OpeningException{}
		}
		resp["exceptions"] = exceptions
	}
	return c.JSON(http.StatusOK, resp)
}
