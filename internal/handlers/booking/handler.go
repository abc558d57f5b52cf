package booking

import (
	"context"
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/booking/model/dto"
	"guesthouse/internal/domains/booking/service"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.PlaceBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/access-code/{code}", handler.GetBookingByAccessCode)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/check-in", handler.CheckIn)
		routerGroup.Post("/{id}/check-out", handler.CheckOut)
		routerGroup.Post("/{id}/cancel", handler.Cancel)
	})
}

// PlaceBooking handles a guest booking a room.
// @Summary Place a booking
// @Description Store the guest, the booking and its payment notification. A failed stage is reported in the error body.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.PlaceBookingRequest true "Place Booking Request"
// @Success 201 {object} response.Data[dto.PlaceBookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error "stage and resource name the failed step"
// @Router /v1/bookings [post]
func (handler *Handler) PlaceBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PlaceBooking")
	defer scope.End()

	req := dto.PlaceBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Place(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to place booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking placed " + res.BookingID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings lists bookings for the front desk.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room ID"
// @Param status query string false "Filter by status"
// @Param payment_status query string false "Filter by payment status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)
	queryParams.RestrictSort(model.FieldCheckIn, model.FieldCheckOut, model.FieldTotalAmount, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}
	filterGroup.AppendEq(r.URL.Query(), model.TableName, model.FieldRoomID, model.FieldStatus, model.FieldPaymentStatus)

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetMyBookings lists the bookings of the signed-in user.
// @Summary Get my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)
	queryParams.RestrictSort(model.FieldCheckIn, constant.FieldCreatedAt)

	bookings, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookingByAccessCode finds the active booking holding an access code.
// @Summary Look up a booking by access code
// @Tags Booking
// @Produce json
// @Param code path string true "Access code"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/access-code/{code} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByAccessCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByAccessCode")
	defer scope.End()

	booking, err := handler.service.GetByAccessCode(ctx, chi.URLParam(r, constant.RequestParamCode))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by access code")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// CheckIn marks a confirmed booking as checked in.
// @Summary Check a guest in
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/check-in [post]
// @Security BearerAuth
func (handler *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	handler.transition(w, r, "CheckIn", handler.service.CheckIn, "Guest checked in")
}

// CheckOut marks a checked-in booking as checked out.
// @Summary Check a guest out
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/check-out [post]
// @Security BearerAuth
func (handler *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	handler.transition(w, r, "CheckOut", handler.service.CheckOut, "Guest checked out")
}

// Cancel cancels a pending or confirmed booking.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	handler.transition(w, r, "Cancel", handler.service.Cancel, "Booking cancelled")
}

func (handler *Handler) transition(w http.ResponseWriter, r *http.Request, name string, apply func(ctx context.Context, id string) error, message string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := apply(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Str("transition", name).Msg("failed to change booking status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent(message)

	response.WithMessage(w, http.StatusOK, message)
}
