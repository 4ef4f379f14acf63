// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/pensionkladska/reservation-api/internal/config"
	"github.com/pensionkladska/reservation-api/internal/handler"
	"github.com/pensionkladska/reservation-api/internal/middleware"
)

// Handlers bundles everything the routes need.
type Handlers struct {
	Auth        *handler.AuthHandler
	Public      *handler.PublicHandler
	Reservation *handler.ReservationHandler
	Calendar    *handler.CalendarHandler
	Settings    *handler.SettingsHandler
}

// Register mounts all routes.  The public catalog sits behind the Redis
// response cache, the public booking form behind the rate limiter, and
// everything under /v1/admin behind JWT auth with the ADMIN role.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// public catalog, cacheable
	cached := e.Group("/v1", middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	cached.GET("/rooms", h.Public.ListRooms)
	cached.GET("/rooms/availability", h.Public.Availability)
	cached.GET("/menu", h.Public.Menu)
	cached.GET("/opening-hours", h.Public.OpeningHours)

	// public booking form, rate limited
	e.POST("/v1/reservations", h.Reservation.Request,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.POST("/v1/auth/login", h.Auth.Login)

	me := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	me.GET("/me", h.Auth.Me)

	admin := e.Group("/v1/admin",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole("ADMIN"))

	admin.GET("/reservations", h.Reservation.List)
	admin.POST("/reservations", h.Reservation.Create)
	admin.GET("/reservations/:id", h.Reservation.Get)
	admin.DELETE("/reservations/:id", h.Reservation.Cancel)
	admin.POST("/reservations/:id/accept", h.Reservation.Accept)
	admin.PUT("/reservations/:id/dates", h.Reservation.ChangeDates)
	admin.PUT("/reservations/:id/rooms", h.Reservation.ChangeRooms)
	admin.PUT("/reservations/:id/deposit", h.Reservation.Deposit)
	admin.POST("/reservations/:id/paid", h.Reservation.MarkPaid)
	admin.POST("/reservations/:id/archive", h.Reservation.Archive)
	admin.GET("/reservations/:id/billing", h.Reservation.Billing)
	admin.POST("/reservations/:id/calculation", h.Reservation.Quote)
	admin.POST("/reservations/:id/calculation/confirm", h.Reservation.ConfirmCalculation)
	admin.GET("/reservations/:id/comments", h.Reservation.ListComments)
	admin.POST("/reservations/:id/comments", h.Reservation.AddComment)
	admin.DELETE("/reservations/:id/comments/:comment_id", h.Reservation.DeleteComment)

	admin.GET("/calendar", h.Calendar.Month)
	admin.GET("/cleanings", h.Calendar.ListCleanings)
	admin.POST("/cleanings", h.Calendar.AddCleaning)
	admin.DELETE("/cleanings/:id", h.Calendar.DeleteCleaning)

	admin.POST("/rooms", h.Settings.CreateRoom)
	admin.PUT("/rooms/:id/price", h.Settings.UpdateRoomPrice)
	admin.POST("/menu", h.Settings.CreateMenuItem)
	admin.PUT("/menu/:id", h.Settings.UpdateMenuItem)
	admin.DELETE("/menu/:id", h.Settings.DeleteMenuItem)
	admin.PUT("/opening-hours/:day", h.Settings.SetOpeningHours)
	admin.PUT("/opening-exceptions", h.Settings.SetOpeningException)
	admin.DELETE("/opening-exceptions/:day", h.Settings.DeleteOpeningException)
}
