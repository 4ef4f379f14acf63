// Package service publishes domain events to RabbitMQ.  Publishing is
// best-effort: errors are logged and returned so callers can ignore them
// without interrupting the request that triggered the event.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/pensionkladska/reservation-api/internal/queue"
)

// Publisher sends reservation events to the confirmation queue.
type Publisher struct {
	url    string
	logger zerolog.Logger
}

// NewPublisher builds a Publisher for the given broker URL.  An empty URL
// disables publishing; the returned Publisher then drops every event.
func NewPublisher(url string, logger zerolog.Logger) *Publisher {
	return &Publisher{url: url, logger: logger.With().Str("component", "publisher").Logger()}
}

// PublishReservationConfirmed delivers the event to the durable
// reservation.confirmed queue.  Messages are persistent, so a broker
// restart between publish and consume does not lose the confirmation.
func (p *Publisher) PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error {
	if p.url == "" {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Error().Err(err).Msg("broker dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Error().Err(err).Msg("channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.QueueName, true, false, false, false, nil); err != nil {
		p.logger.Error().Err(err).Msg("queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error().Err(err).Msg("marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.QueueName, false, false, pub); err != nil {
		p.logger.Error().Err(err).Uint64("reservation_id", ev.ReservationID).Msg("publish failed")
		return err
	}
	return nil
}
