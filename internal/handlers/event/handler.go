// Package event handles domain events read from kafka by the worker.
package event

import (
	"context"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/kafka"
	alertService "guesthouse/internal/domains/alert/service"
	bookingModel "guesthouse/internal/domains/booking/model"
	paymentModel "guesthouse/internal/domains/payment/model"
	"guesthouse/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

type Handler struct {
	alert  alertService.Alert
	client kafka.Client
	cfg    *config.Config
}

func New(alert alertService.Alert, client kafka.Client, cfg *config.Config) *Handler {
	return &Handler{
		alert:  alert,
		client: client,
		cfg:    cfg,
	}
}

// Close releases the kafka client.
func (h *Handler) Close() error {
	return h.client.Close() //nolint:wrapcheck
}

// Run consumes every subscribed topic until ctx is done.
func (h *Handler) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return h.client.Consume(ctx, h.cfg.Kafka.ConsumerGroup, h.cfg.Kafka.Topics.BookingPlaced, h.BookingPlaced)
	})

	group.Go(func() error {
		return h.client.Consume(ctx, h.cfg.Kafka.ConsumerGroup, h.cfg.Kafka.Topics.PaymentConfirmed, h.PaymentConfirmed)
	})

	if err := group.Wait(); err != nil {
		return fmt.Errorf("consumer stopped: %w", err)
	}

	return nil
}

// BookingPlaced records a payment pending alert. Malformed messages are skipped
// so they do not block the partition.
func (h *Handler) BookingPlaced(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.Decode[bookingModel.Placed](msg)
	if err != nil {
		log.Error().Err(err).Int64("offset", msg.Offset).Msg("skipping malformed booking placed event")

		return nil
	}

	if event.BookingID == constant.Empty || event.RoomID == constant.Empty {
		log.Warn().Int64("offset", msg.Offset).Msg("skipping booking placed event without booking or room")

		return nil
	}

	return h.alert.RecordBookingPlaced(ctx, event) //nolint:wrapcheck
}

// PaymentConfirmed clears the payment pending alert of the confirmed booking.
func (h *Handler) PaymentConfirmed(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.Decode[paymentModel.Confirmed](msg)
	if err != nil {
		log.Error().Err(err).Int64("offset", msg.Offset).Msg("skipping malformed payment confirmed event")

		return nil
	}

	if event.BookingID == constant.Empty {
		log.Warn().Int64("offset", msg.Offset).Msg("skipping payment confirmed event without booking")

		return nil
	}

	return h.alert.ResolvePaymentPending(ctx, event) //nolint:wrapcheck
}
