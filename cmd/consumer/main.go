package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/event"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

// Tails the booking event topic and writes every lifecycle change to the log.
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer := otel.New(cfg)
	client := kafka.New(cfg, tracer)

	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client")
		}

		if err := tracer.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	}()

	log.Info().Str("topic", cfg.Kafka.Topic.BookingEvents).Msg("Consuming booking events.")

	err := event.Subscribe(ctx, cfg, client, func(_ context.Context, evt event.Event) error {
		log.Info().
			Str("type", evt.Type).
			Str("booking", evt.BookingID).
			Str("room", evt.RoomID).
			Str("status", evt.Status).
			Str("previous", evt.PreviousStatus).
			Str("room_status", evt.RoomStatus).
			Float64("total", evt.TotalAmount).
			Time("at", evt.OccurredAt).
			Msg("booking event")

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("Consumer stopped")
	}
}
