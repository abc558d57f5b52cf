package payment

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/payment/model"
	"guesthouse/internal/domains/payment/model/dto"
	"guesthouse/internal/domains/payment/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryConfirmed = "confirmed"

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPayments)
		routerGroup.Get("/{id}", handler.GetPaymentByID)
		routerGroup.Post("/{id}/confirm", handler.ConfirmPayment)
	})

	router.Route("/settings/payment", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSettings)
		routerGroup.Put("/", handler.UpsertSettings)
	})
}

// GetPayments lists payment notifications.
// @Summary Get payment notifications
// @Tags Payment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param confirmed query bool false "Only confirmed (true) or pending (false) notifications"
// @Param booking_id query string false "Filter by booking ID"
// @Success 200 {object} response.Data[dto.GetNotificationsResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)
	queryParams.RestrictSort(model.FieldAmount, model.FieldConfirmedAt, constant.FieldCreatedAt)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}
	filterGroup.AppendEq(query, model.TableName, model.FieldBookingID)

	if confirmed := shared.ConvertStringToBool(query.Get(queryConfirmed)); confirmed != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsConfirmed,
			Operator: gDto.FilterOperatorEq,
			Value:    *confirmed,
			Table:    model.TableName,
		})
	}

	var payments dto.GetNotificationsResponse

	payments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment notifications")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}

// GetPaymentByID retrieves a payment notification.
// @Summary Get a payment notification by ID
// @Tags Payment
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Data[dto.NotificationResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	payment, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment notification")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}

// ConfirmPayment records that staff received the payment of a booking.
// @Summary Confirm a payment
// @Description Marks the notification confirmed and the booking confirmed in one transaction.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Param request body dto.ConfirmPaymentRequest true "Booking the notification belongs to"
// @Success 200 {object} response.Data[dto.NotificationResponse]
// @Failure 400 {object} response.Error "notification belongs to another booking"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "already confirmed"
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error "role not resolved yet"
// @Router /v1/payments/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmPayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.ConfirmPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Confirm(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("notification_id", id).Str("booking_id", req.BookingID).Msg("failed to confirm payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment confirmed")

	response.WithJSON(w, http.StatusOK, res)
}

// GetSettings returns where guests should send their payment.
// @Summary Get payment settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Data[dto.SettingsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/settings/payment [get]
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	settings, err := handler.service.GetSettings(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment settings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, settings)
}

// UpsertSettings saves the payment account of the guest house.
// @Summary Save payment settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpsertSettingsRequest true "Payment settings"
// @Success 200 {object} response.Data[dto.SettingsResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/payment [put]
// @Security BearerAuth
func (handler *Handler) UpsertSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertSettings")
	defer scope.End()

	req := dto.UpsertSettingsRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	settings, err := handler.service.UpsertSettings(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save payment settings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, settings)
}
