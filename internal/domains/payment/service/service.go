package service

import (
	"context"
	"errors"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/kafka"
	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	bookingModel "guesthouse/internal/domains/booking/model"
	bookingRepo "guesthouse/internal/domains/booking/repository"
	"guesthouse/internal/domains/payment/model"
	"guesthouse/internal/domains/payment/model/dto"
	"guesthouse/internal/domains/payment/repository"
	roleService "guesthouse/internal/domains/role/service"
	"guesthouse/permissions"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gRepo "guesthouse/shared/repository"
	"guesthouse/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const cacheGetSettings = "settings:payment"

type Payment interface {
	// Confirm records that staff received the money claimed by notification id
	// and confirms its booking in the same transaction.
	Confirm(ctx context.Context, req dto.ConfirmPaymentRequest, id string) (dto.NotificationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetNotificationsResponse, error)
	Get(ctx context.Context, id string) (dto.NotificationResponse, error)
	GetSettings(ctx context.Context) (dto.SettingsResponse, error)
	UpsertSettings(ctx context.Context, req dto.UpsertSettingsRequest) (dto.SettingsResponse, error)
}

type serviceImpl struct {
	repo         repository.Notification
	settingsRepo repository.Settings
	bookingRepo  bookingRepo.Booking
	transactor   postgres.Transactor
	role         roleService.Role
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Notification,
	settingsRepo repository.Settings,
	bookingRepo bookingRepo.Booking,
	transactor postgres.Transactor,
	role roleService.Role,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:         repo,
		settingsRepo: settingsRepo,
		bookingRepo:  bookingRepo,
		transactor:   transactor,
		role:         role,
		kafka:        kafka,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Confirm(ctx context.Context, req dto.ConfirmPaymentRequest, id string) (res dto.NotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.role.Authorize(ctx, permissions.OperationPaymentConfirm)
	if err != nil {
		return res, err
	}

	var notification model.Notification

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		locked, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("notification_id", id).Msg("failed to lock payment notification")

			return fmt.Errorf("failed to get payment notification: %w", err)
		}

		notification = locked

		if notification.ID == constant.Empty {
			return failure.NotFound("payment notification not found")
		}

		if notification.BookingID != req.BookingID {
			return failure.BadRequestFromString("payment notification does not belong to this booking")
		}

		if notification.IsConfirmed {
			return failure.Conflict("payment has already been confirmed")
		}

		booking, err := s.bookingRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName),
			bookingModel.FieldID, bookingModel.FieldStatus, bookingModel.FieldPaymentStatus)
		if err != nil {
			log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to lock booking")

			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found")
		}

		if booking.Status == bookingModel.StatusCancelled {
			return failure.Conflict("booking was cancelled, its payment cannot be confirmed")
		}

		now := timezone.Now()

		notificationFilter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldIsConfirmed, ArgName: "was_confirmed", Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			},
		}

		if err = s.repo.UpdateTx(ctx, tx, dto.ConfirmFields(sess.UserID, sess.Actor(), now), notificationFilter); err != nil {
			if errors.Is(err, gRepo.ErrNoRowsAffected) {
				return failure.Conflict("payment has already been confirmed")
			}

			log.Error().Err(err).Str("notification_id", id).Msg("failed to confirm payment notification")

			return fmt.Errorf("failed to confirm payment notification: %w", err)
		}

		bookingFields := map[string]any{
			bookingModel.FieldPaymentStatus: bookingModel.PaymentStatusConfirmed,
			constant.FieldModifiedAt:        now,
			constant.FieldModifiedBy:        sess.Actor(),
		}

		if booking.Status == bookingModel.StatusPending {
			bookingFields[bookingModel.FieldStatus] = bookingModel.StatusConfirmed
		}

		if err = s.bookingRepo.UpdateTx(ctx, tx, bookingFields, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
			log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to confirm booking")

			return fmt.Errorf("failed to confirm booking: %w", err)
		}

		notification.IsConfirmed = true
		notification.ConfirmedBy = &sess.UserID
		notification.ConfirmedAt = &now
		notification.ModifiedAt = now
		notification.ModifiedBy = sess.Actor()

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	log.Info().Str("notification_id", id).Str("booking_id", req.BookingID).Str("by", sess.UserID).Msg("payment confirmed")

	s.publishConfirmed(ctx, model.Confirmed{
		NotificationID: notification.ID,
		BookingID:      notification.BookingID,
		Amount:         notification.Amount,
		ConfirmedBy:    sess.UserID,
		ConfirmedAt:    *notification.ConfirmedAt,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(bookingModel.CacheKeyGet, req.BookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, bookingModel.CacheKeyGetAll)
	}()

	res.FromModel(notification)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.role.Authorize(ctx, permissions.OperationPaymentRead); err != nil {
		return res, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payment notifications")

		return res, fmt.Errorf("failed to count payment notifications: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment notifications")

		return res, fmt.Errorf("failed to get payment notifications: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.NotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.role.Authorize(ctx, permissions.OperationPaymentRead); err != nil {
		return res, err
	}

	notification, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment notification")

		return res, fmt.Errorf("failed to get payment notification: %w", err)
	}

	if notification.ID == constant.Empty {
		return res, failure.NotFound("payment notification not found") // nolint:wrapcheck
	}

	res.FromModel(notification)

	return res, nil
}

func (s *serviceImpl) GetSettings(ctx context.Context) (res dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSettings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, cacheGetSettings, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetSettings).Msg("cache hit for payment settings")

		return res, nil
	}

	settings, err := s.settingsRepo.Get(ctx, shared.FilterByID(model.SettingsID, model.FieldID, model.SettingsTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment settings")

		return res, fmt.Errorf("failed to get payment settings: %w", err)
	}

	res.FromModel(settings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetSettings, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment settings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpsertSettings(ctx context.Context, req dto.UpsertSettingsRequest) (res dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertSettings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.role.Authorize(ctx, permissions.OperationSettingsManage)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(model.SettingsID, model.FieldID, model.SettingsTableName)

	current, err := s.settingsRepo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment settings")

		return res, fmt.Errorf("failed to get payment settings: %w", err)
	}

	settings := req.ToModel(sess.Actor())

	if current.ID == constant.Empty {
		err = s.settingsRepo.Insert(ctx, settings)
	} else {
		err = s.settingsRepo.Update(ctx, req.Fields(sess.Actor()), filter)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to save payment settings")

		return res, fmt.Errorf("failed to save payment settings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, cacheGetSettings); err != nil {
			log.Error().Err(err).Msg("failed to delete payment settings from cache")
		}
	}()

	res.FromModel(settings)

	return res, nil
}

func (s *serviceImpl) publishConfirmed(ctx context.Context, event model.Confirmed) {
	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.PaymentConfirmed, kafka.Message{Key: event.BookingID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("notification_id", event.NotificationID).Msg("failed to publish payment confirmed event")
	}
}
