package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/pensionkladska/reservation-api/internal/config"
	"github.com/pensionkladska/reservation-api/internal/database"
	"github.com/pensionkladska/reservation-api/internal/handler"
	"github.com/pensionkladska/reservation-api/internal/logger"
	"github.com/pensionkladska/reservation-api/internal/mailer"
	"github.com/pensionkladska/reservation-api/internal/queue"
	"github.com/pensionkladska/reservation-api/internal/repository"
	"github.com/pensionkladska/reservation-api/internal/router"
	"github.com/pensionkladska/reservation-api/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, cache and rate limiting disabled")
	}

	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	comments := repository.NewCommentRepo(db)
	menu := repository.NewMenuRepo(db)
	opening := repository.NewOpeningRepo(db)
	cleanings := repository.NewCleaningRepo(db)
	users := repository.NewUserRepo(db)

	publisher := service.NewPublisher(cfg.AMQPURL, log)
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	if cfg.AMQPURL != "" {
		go queue.NewConsumer(cfg.AMQPURL, mail, log).Run()
	} else {
		log.Warn().Msg("AMQP_URL not set, confirmation notifications disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users),
		Public:      handler.NewPublicHandler(rooms, menu, opening),
		Reservation: handler.NewReservationHandler(rooms, reservations, comments, publisher, log),
		Calendar:    handler.NewCalendarHandler(reservations, cleanings),
		Settings:    handler.NewSettingsHandler(rooms, menu, opening),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
