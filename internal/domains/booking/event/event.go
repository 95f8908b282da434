// Package event publishes booking lifecycle changes to Kafka.
package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	TypeCreated    = "booking.created"
	TypeConfirmed  = "booking.confirmed"
	TypeCancelled  = "booking.cancelled"
	TypeCheckedIn  = "booking.checked_in"
	TypeCheckedOut = "booking.checked_out"
	TypeRepriced   = "booking.repriced"

	headerEventType = "event_type"
)

var typeByStatus = map[string]string{
	model.StatusPending:    TypeCreated,
	model.StatusConfirmed:  TypeConfirmed,
	model.StatusCancelled:  TypeCancelled,
	model.StatusCheckedIn:  TypeCheckedIn,
	model.StatusCheckedOut: TypeCheckedOut,
}

type Event struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"booking_id"`
	RoomID         string    `json:"room_id"`
	GuestID        string    `json:"guest_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	RoomStatus     string    `json:"room_status"`
	CheckIn        string    `json:"check_in"`
	CheckOut       string    `json:"check_out"`
	TotalAmount    float64   `json:"total_amount"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// New describes b after it moved from previous. An empty previous marks a new booking.
func New(b model.Booking, previous, roomStatus string, at time.Time) Event {
	return Event{
		Type:           typeByStatus[b.Status],
		BookingID:      b.ID,
		RoomID:         b.RoomID,
		GuestID:        b.GuestID,
		Status:         b.Status,
		PreviousStatus: previous,
		RoomStatus:     roomStatus,
		CheckIn:        b.CheckIn.Format(constant.DateOnlyFormat),
		CheckOut:       b.CheckOut.Format(constant.DateOnlyFormat),
		TotalAmount:    b.TotalAmount,
		OccurredAt:     at,
	}
}

// Repriced describes a total change that left the booking status as it was.
func Repriced(b model.Booking, roomStatus string, at time.Time) Event {
	evt := New(b, b.Status, roomStatus, at)
	evt.Type = TypeRepriced

	return evt
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
}

type noopPublisher struct{}

// NewPublisher returns a Kafka backed publisher, or one that drops events when Kafka is disabled.
func NewPublisher(cfg *config.Config, client kafka.Client) Publisher {
	if !cfg.Kafka.Enable || client == nil {
		log.Info().Msg("Kafka disabled, booking events will not be published")

		return noopPublisher{}
	}

	return &kafkaPublisher{client: client, topic: cfg.Kafka.Topic.BookingEvents}
}

func (p *kafkaPublisher) Publish(ctx context.Context, events ...Event) error {
	messages := make([]kafka.Message, len(events))

	for i, evt := range events {
		messages[i] = kafka.Message{
			Key:     evt.BookingID,
			Value:   evt,
			Headers: map[string]string{headerEventType: evt.Type},
		}
	}

	if err := p.client.SendMessages(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish booking events: %w", err)
	}

	return nil
}

func (noopPublisher) Publish(_ context.Context, events ...Event) error {
	for _, evt := range events {
		log.Debug().Str("type", evt.Type).Str("booking", evt.BookingID).Msg("booking event dropped")
	}

	return nil
}

// Subscribe feeds every booking event on the configured topic to handle until ctx is done.
func Subscribe(ctx context.Context, cfg *config.Config, client kafka.Client, handle func(ctx context.Context, evt Event) error) error {
	return client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic.BookingEvents, func(ctx context.Context, msg kafkaGo.Message) error {
		evt, err := kafka.DecodeKafkaMessage[Event](msg)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return handle(ctx, evt)
	})
}
