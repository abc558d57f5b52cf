package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/alert/model"
	"guesthouse/internal/domains/alert/model/dto"
	"guesthouse/internal/domains/alert/repository"
	bookingModel "guesthouse/internal/domains/booking/model"
	paymentModel "guesthouse/internal/domains/payment/model"
	roleService "guesthouse/internal/domains/role/service"
	"guesthouse/permissions"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gRepo "guesthouse/shared/repository"
	"guesthouse/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Alert is the staff notice board.
type Alert interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAlertsResponse, error)
	Acknowledge(ctx context.Context, id string) (dto.AlertResponse, error)
	// RecordBookingPlaced raises a payment_pending alert. Recording the same booking twice is a no-op.
	RecordBookingPlaced(ctx context.Context, event bookingModel.Placed) error
	// ResolvePaymentPending acknowledges the payment_pending alert of a confirmed booking.
	ResolvePaymentPending(ctx context.Context, event paymentModel.Confirmed) error
}

type serviceImpl struct {
	repo repository.Alert
	role roleService.Role
	otel otel.Otel
}

func New(repo repository.Alert, role roleService.Role, otel otel.Otel) Alert {
	return &serviceImpl{
		repo: repo,
		role: role,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAlertsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.role.Authorize(ctx, permissions.OperationAlertRead); err != nil {
		return res, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count alerts")

		return res, fmt.Errorf("failed to count alerts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get alerts")

		return res, fmt.Errorf("failed to get alerts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Acknowledge(ctx context.Context, id string) (res dto.AlertResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Acknowledge")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.role.Authorize(ctx, permissions.OperationAlertAcknowledge)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	alert, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("alert_id", id).Msg("failed to get alert")

		return res, fmt.Errorf("failed to get alert: %w", err)
	}

	if alert.ID == constant.Empty {
		return res, failure.NotFound("alert not found") // nolint:wrapcheck
	}

	if alert.Acknowledged {
		return res, failure.Conflict("alert has already been acknowledged") // nolint:wrapcheck
	}

	now := timezone.Now()
	fields := dto.AcknowledgeFields(sess.UserID, sess.Actor(), now)

	pending := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldAcknowledged, ArgName: "was_acknowledged", Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	if err = s.repo.Update(ctx, fields, pending); err != nil {
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			return res, failure.Conflict("alert has already been acknowledged") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("alert_id", id).Msg("failed to acknowledge alert")

		return res, fmt.Errorf("failed to acknowledge alert: %w", err)
	}

	alert.Acknowledged = true
	alert.AcknowledgedBy = &sess.UserID
	alert.AcknowledgedAt = &now
	alert.ModifiedAt = now
	alert.ModifiedBy = sess.Actor()

	res.FromModel(alert)

	return res, nil
}

func (s *serviceImpl) RecordBookingPlaced(ctx context.Context, event bookingModel.Placed) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordBookingPlaced")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	alert := dto.PaymentPendingFromPlaced(event)

	if err = s.repo.Insert(ctx, alert); err != nil {
		if gRepo.IsUniqueViolation(err) {
			log.Info().Str("booking_id", event.BookingID).Msg("payment pending alert already recorded")

			return nil
		}

		log.Error().Err(err).Str("booking_id", event.BookingID).Msg("failed to record payment pending alert")

		return fmt.Errorf("failed to record payment pending alert: %w", err)
	}

	log.Info().Str("alert_id", alert.ID).Str("booking_id", event.BookingID).Msg("payment pending alert recorded")

	return nil
}

func (s *serviceImpl) ResolvePaymentPending(ctx context.Context, event paymentModel.Confirmed) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolvePaymentPending")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: event.BookingID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldType, Value: model.TypePaymentPending, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldAcknowledged, ArgName: "was_acknowledged", Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	fields := dto.AcknowledgeFields(event.ConfirmedBy, constant.ContextSystem, event.ConfirmedAt)

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			log.Info().Str("booking_id", event.BookingID).Msg("no open payment pending alert to resolve")

			return nil
		}

		log.Error().Err(err).Str("booking_id", event.BookingID).Msg("failed to resolve payment pending alert")

		return fmt.Errorf("failed to resolve payment pending alert: %w", err)
	}

	return nil
}
