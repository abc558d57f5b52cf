package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/kafka"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/booking/accesscode"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/booking/model/dto"
	"guesthouse/internal/domains/booking/repository"
	guestRepo "guesthouse/internal/domains/guest/repository"
	paymentModel "guesthouse/internal/domains/payment/model"
	paymentRepo "guesthouse/internal/domains/payment/repository"
	roleService "guesthouse/internal/domains/role/service"
	roomModel "guesthouse/internal/domains/room/model"
	roomRepo "guesthouse/internal/domains/room/repository"
	"guesthouse/permissions"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gRepo "guesthouse/shared/repository"
	"guesthouse/shared/session"
	"guesthouse/shared/timezone"
	"guesthouse/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	defaultMaxNights          = 7
	defaultAccessCodeAttempts = 5

	constraintRoomOverlap      = "bookings_room_stay_excl"
	constraintActiveAccessCode = "bookings_active_access_code_key"
)

type Booking interface {
	// Place stores guest, booking and payment notification in that order and
	// stops at the first stage that fails.
	Place(ctx context.Context, req dto.PlaceBookingRequest) (dto.PlaceBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByAccessCode(ctx context.Context, code string) (dto.BookingResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	CheckIn(ctx context.Context, id string) error
	CheckOut(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	guestRepo    guestRepo.Guest
	paymentRepo  paymentRepo.Notification
	settingsRepo paymentRepo.Settings
	role         roleService.Role
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	paymentRepo paymentRepo.Notification,
	settingsRepo paymentRepo.Settings,
	role roleService.Role,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		guestRepo:    guestRepo,
		paymentRepo:  paymentRepo,
		settingsRepo: settingsRepo,
		role:         role,
		kafka:        kafka,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Place(ctx context.Context, req dto.PlaceBookingRequest) (res dto.PlaceBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Place")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	if maxNights := s.maxNights(); req.Nights < 1 || req.Nights > maxNights {
		return res, failure.BadRequestFromString(fmt.Sprintf("nights must be between 1 and %d", maxNights))
	}

	checkIn, checkOut, err := req.Stay()
	if err != nil {
		return res, failure.BadRequestFromString("check_in must be a date formatted as YYYY-MM-DD")
	}

	if checkIn.Before(timezone.StartOfDay(timezone.Now())) {
		return res, failure.BadRequestFromString("check_in cannot be in the past")
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName),
		roomModel.FieldID, roomModel.FieldName, roomModel.FieldPricePerNight, roomModel.FieldStatus)
	if err != nil {
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.BadRequestFromString("room does not exist")
	}

	if !room.Bookable() {
		return res, failure.Conflict(fmt.Sprintf("room %s is not available", room.Name))
	}

	overlaps, err := s.repo.Overlaps(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Str("room_id", room.ID).Msg("failed to check room availability")

		return res, fmt.Errorf("failed to check room availability: %w", err)
	}

	if overlaps {
		return res, failure.Conflict(fmt.Sprintf("room %s is already booked for these dates", room.Name))
	}

	code, err := s.issueAccessCode(ctx)
	if err != nil {
		return res, err
	}

	sess := session.FromContext(ctx)
	actor := sess.Actor()

	guest := req.Guest.ToModel(sess.UserID, actor)
	if err = s.guestRepo.Insert(ctx, guest); err != nil {
		log.Error().Err(err).Msg("failed to create guest")

		return res, failure.Persistence(failure.StageGuest, constant.Empty, err)
	}

	booking := req.ToModel(guest.ID, sess.UserID, code, actor, room.PricePerNight, checkIn, checkOut)

	for attempt := 1; ; attempt++ {
		err = s.repo.Insert(ctx, booking)
		if err == nil {
			break
		}

		if gRepo.IsExclusionViolation(err) && gRepo.ConstraintName(err) == constraintRoomOverlap {
			log.Warn().Str("room_id", room.ID).Str("guest_id", guest.ID).Msg("room was booked by another request")

			return res, failure.ConflictAt(failure.StageBooking, guest.ID, fmt.Sprintf("room %s is already booked for these dates", room.Name))
		}

		if gRepo.IsUniqueViolation(err) && gRepo.ConstraintName(err) == constraintActiveAccessCode && attempt < s.accessCodeAttempts() {
			if booking.AccessCode, err = accesscode.Generate(); err == nil {
				continue
			}
		}

		log.Error().Err(err).Str("guest_id", guest.ID).Msg("failed to create booking")

		return res, failure.Persistence(failure.StageBooking, guest.ID, err)
	}

	notification := req.ToNotification(booking, actor)
	if err = s.paymentRepo.Insert(ctx, notification); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to create payment notification")

		s.invalidate(ctx, booking.ID)

		return res, failure.Persistence(failure.StagePaymentNotification, booking.ID, err)
	}

	res.FromModel(booking, notification.ID, s.cfg.Booking.Currency)

	settings, err := s.settingsRepo.Get(ctx, shared.FilterByID(paymentModel.SettingsID, paymentModel.FieldID, paymentModel.SettingsTableName))
	if err != nil {
		log.Warn().Err(err).Msg("failed to get payment settings, placing booking without instructions")
	}

	res.WithInstructions(settings)

	s.publishPlaced(ctx, model.Placed{
		BookingID:      booking.ID,
		RoomID:         room.ID,
		RoomName:       room.Name,
		GuestName:      guest.FullName(),
		Phone:          notification.PhoneNumber,
		NotificationID: notification.ID,
		CheckIn:        booking.CheckIn,
		CheckOut:       booking.CheckOut,
		Nights:         booking.Nights,
		TotalAmount:    booking.TotalAmount,
		PlacedAt:       booking.CreatedAt,
	})

	s.invalidate(ctx, booking.ID)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.role.Authorize(ctx, permissions.OperationBookingRead); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	res, err = s.list(ctx, req, filter)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess := session.FromContext(ctx)
	if !sess.IsAuthenticated() {
		return res, failure.Unauthorized("sign in required")
	}

	return s.list(ctx, req, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Value: sess.UserID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.role.Authorize(ctx, permissions.OperationBookingRead); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(model.CacheKeyGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByAccessCode(ctx context.Context, code string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByAccessCode")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.role.Authorize(ctx, permissions.OperationBookingRead); err != nil {
		return res, err
	}

	code = accesscode.Normalize(code)
	if !accesscode.Valid(code) {
		return res, failure.BadRequestFromString("access code is malformed")
	}

	booking, err := s.repo.Get(ctx, repository.ActiveByAccessCode(code))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking by access code")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("no active booking holds this access code") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, model.StatusCheckedIn)
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, model.StatusCheckedOut)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, model.StatusCancelled)
}

// transition moves booking id to status. The update only applies while the
// booking still has the status that was checked.
func (s *serviceImpl) transition(ctx context.Context, id, status string) error {
	sess, err := s.role.Authorize(ctx, permissions.OperationBookingFrontDesk)
	if err != nil {
		return err
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.FieldID, model.FieldStatus)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found")
	}

	if !model.CanTransition(booking.Status, status) {
		return failure.Conflict(fmt.Sprintf("booking is %s and cannot become %s", booking.Status, status))
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, ArgName: "current_status", Value: booking.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	fields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{status}, sess.Actor())

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			return failure.Conflict("booking status changed, reload and retry")
		}

		log.Error().Err(err).Str("booking_id", id).Str("status", status).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	log.Info().Str("booking_id", id).Str("from", booking.Status).Str("to", status).Str("by", sess.UserID).Msg("booking status changed")

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// issueAccessCode draws codes until one is not held by an active booking.
func (s *serviceImpl) issueAccessCode(ctx context.Context) (string, error) {
	for range s.accessCodeAttempts() {
		code, err := accesscode.Generate()
		if err != nil {
			log.Error().Err(err).Msg("failed to generate access code")

			return constant.Empty, fmt.Errorf("failed to generate access code: %w", err)
		}

		inUse, err := s.repo.AccessCodeInUse(ctx, code)
		if err != nil {
			log.Error().Err(err).Msg("failed to check access code")

			return constant.Empty, fmt.Errorf("failed to check access code: %w", err)
		}

		if !inUse {
			return code, nil
		}

		log.Warn().Msg("access code collided with an active booking, drawing again")
	}

	return constant.Empty, failure.ServiceUnavailable("could not issue a unique access code, please try again")
}

func (s *serviceImpl) publishPlaced(ctx context.Context, event model.Placed) {
	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingPlaced, kafka.Message{Key: event.RoomID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("booking_id", event.BookingID).Msg("failed to publish booking placed event")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheKeyGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheKeyGetAll)
	}()
}

func (s *serviceImpl) maxNights() int {
	if s.cfg.Booking.MaxNights > 0 {
		return s.cfg.Booking.MaxNights
	}

	return defaultMaxNights
}

func (s *serviceImpl) accessCodeAttempts() int {
	if s.cfg.Booking.AccessCodeAttempts > 0 {
		return s.cfg.Booking.AccessCodeAttempts
	}

	return defaultAccessCodeAttempts
}
