package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/pensionkladska/reservation-api/internal/mailer"
)

// QueueName is the durable queue carrying reservation confirmations.
const QueueName = "reservation.confirmed"

// Consumer drains the confirmation queue and sends the confirmation
// e-mails.  Delivery problems are logged and the message rejected without
// requeueing, so one poisoned payload cannot stall the queue.
type Consumer struct {
	url    string
	mail   *mailer.Mailer
	logger zerolog.Logger
}

// NewConsumer builds a Consumer.  mail may be nil; confirmations are then
// only logged.
func NewConsumer(url string, mail *mailer.Mailer, logger zerolog.Logger) *Consumer {
	return &Consumer{url: url, mail: mail, logger: logger.With().Str("component", "confirmation-consumer").Logger()}
}

// Run connects to the broker and consumes until the process exits.  It
// reconnects with capped exponential backoff, so a broker restart only
// delays notifications instead of losing them (the queue is durable and
// messages persistent).
func (c *Consumer) Run() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn().Err(err).Dur("retry_in", backoff).Msg("broker dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(conn); err != nil {
			c.logger.Warn().Err(err).Msg("consume loop ended, reconnecting")
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func (c *Consumer) consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.logger.Warn().Err(err).Msg("set QoS failed")
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.handle(d.Body); err != nil {
			c.logger.Error().Err(err).Msg("handle message failed")
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func (c *Consumer) handle(body []byte) error {
	var ev ReservationConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	names := make([]string, 0, len(ev.Rooms))
	for _, r := range ev.Rooms {
		names = append(names, r.Name)
	}
	mailBody := mailer.ConfirmationBody(mailer.ConfirmationData{
		FirstName:      ev.FirstName,
		LastName:       ev.LastName,
		DateFrom:       ev.DateFrom,
		DateTo:         ev.DateTo,
		Nights:         ev.Nights,
		Persons:        ev.Persons,
		Pet:            ev.Pet,
		RoomNames:      names,
		Total:          ev.Total,
		VariableSymbol: ev.VariableSymbol,
	})
	if err := c.mail.Send(ev.Email, mailer.ConfirmationSubject, mailBody); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	c.logger.Info().
		Uint64("reservation_id", ev.ReservationID).
		Str("email", ev.Email).
		Float64("total", ev.Total).
		Str("vs", ev.VariableSymbol).
		Msg("reservation confirmed")
	return nil
}
