package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pensionkladska/reservation-api/internal/booking"
	"github.com/pensionkladska/reservation-api/internal/model"
	"github.com/pensionkladska/reservation-api/internal/repository"
)

// SettingsHandler manages the catalogs the booking engine prices against:
// rooms, the restaurant menu and opening hours.
type SettingsHandler struct {
	Rooms   *repository.RoomRepo
	Menu    *repository.MenuRepo
	Opening *repository.OpeningRepo
}

func NewSettingsHandler(rooms *repository.RoomRepo, menu *repository.MenuRepo, opening *repository.OpeningRepo) *SettingsHandler {
	return &SettingsHandler{Rooms: rooms, Menu: menu, Opening: opening}
}

// CreateRoom handles POST /v1/admin/rooms.
func (h *SettingsHandler) CreateRoom(c echo.Context) error {
	var body struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	room := &model.Room{Name: body.Name, Price: body.Price}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoomPrice handles PUT /v1/admin/rooms/:id/price.  Stored totals of
// existing reservations stay as they are; the new price applies from the
// next calculation on.
func (h *SettingsHandler) UpdateRoomPrice(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var body struct {
		Price float64 `json:"price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}
	if err := h.Rooms.UpdatePrice(c.Request().Context(), id, body.Price); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "price": body.Price})
}

type menuItemReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

func (r menuItemReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if strings.TrimSpace(r.Category) == "" {
		return "category is required"
	}
	if r.Price < 0 {
		return "price must not be negative"
	}
	return ""
}

// CreateMenuItem handles POST /v1/admin/menu.
func (h *SettingsHandler) CreateMenuItem(c echo.Context) error {
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	item := &model.MenuItem{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
	}
	if err := h.Menu.Create(c.Request().Context(), item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem handles PUT /v1/admin/menu/:id.
func (h *SettingsHandler) UpdateMenuItem(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	item := &model.MenuItem{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
	}
	if err := h.Menu.Update(c.Request().Context(), item); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /v1/admin/menu/:id.
func (h *SettingsHandler) DeleteMenuItem(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	if err := h.Menu.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// SetOpeningHours handles PUT /v1/admin/opening-hours/:day, where :day is
// the ISO weekday 1..7.
func (h *SettingsHandler) SetOpeningHours(c echo.Context) error {
	day, ok := pathID(c, "day")
	if !ok || day > 7 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be 1..7"})
	}
	var body struct {
		Opens     string `json:"opens"`
		Closes    string `json:"closes"`
		Overnight bool   `json:"overnight"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.Opens == "" || body.Closes == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "opens and closes are required"})
	}

	m := &model.OpeningHours{
		DayOfWeek: int(day),
		Opens:     body.Opens,
		Closes:    body.Closes,
		Overnight: body.Overnight,
	}
	if err := h.Opening.UpsertRegular(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, m)
}

// SetOpeningException handles PUT /v1/admin/opening-exceptions.  Closed
// days omit opens/closes; special hours carry both.
func (h *SettingsHandler) SetOpeningException(c echo.Context) error {
	var body struct {
		Day       string  `json:"day"`
		IsClosed  bool    `json:"is_closed"`
		Opens     *string `json:"opens"`
		Closes    *string `json:"closes"`
		Overnight bool    `json:"overnight"`
		Note      *string `json:"note"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	day, err := booking.ParseDate(body.Day)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be a YYYY-MM-DD date"})
	}
	if !body.IsClosed && (body.Opens == nil || body.Closes == nil) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "opens and closes are required unless closed"})
	}

	m := &model.OpeningException{
		Day:       day,
		IsClosed:  body.IsClosed,
		Opens:     body.Opens,
		Closes:    body.Closes,
		Overnight: body.Overnight,
		Note:      body.Note,
	}
	if err := h.Opening.UpsertException(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteOpeningException handles DELETE /v1/admin/opening-exceptions/:day
// with :day as a YYYY-MM-DD date.
func (h *SettingsHandler) DeleteOpeningException(c echo.Context) error {
	day, err := booking.ParseDate(c.Param("day"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be a YYYY-MM-DD date"})
	}
	if err := h.Opening.DeleteException(c.Request().Context(), day); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
