package alert

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/alert/model"
	"guesthouse/internal/domains/alert/model/dto"
	"guesthouse/internal/domains/alert/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Alert
	otel    otel.Otel
}

func New(service service.Alert, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/alerts", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAlerts)
		routerGroup.Post("/{id}/acknowledge", handler.Acknowledge)
	})
}

// GetAlerts lists alerts for the front desk.
// @Summary Get alerts
// @Tags Alert
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param acknowledged query bool false "Filter by acknowledged"
// @Param type query string false "Filter by type"
// @Param severity query string false "Filter by severity"
// @Param room_id query string false "Filter by room ID"
// @Success 200 {object} response.Data[dto.GetAlertsResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/alerts [get]
// @Security BearerAuth
func (handler *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAlerts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)
	queryParams.RestrictSort(model.FieldSeverity, constant.FieldCreatedAt)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}
	filterGroup.AppendEq(query, model.TableName, model.FieldType, model.FieldSeverity, model.FieldRoomID)

	if acknowledged := shared.ConvertStringToBool(query.Get(model.FieldAcknowledged)); acknowledged != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAcknowledged,
			Operator: gDto.FilterOperatorEq,
			Value:    *acknowledged,
			Table:    model.TableName,
		})
	}

	var alerts dto.GetAlertsResponse

	alerts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get alerts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, alerts)
}

// Acknowledge marks an alert as handled by the caller.
// @Summary Acknowledge an alert
// @Tags Alert
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Data[dto.AlertResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/alerts/{id}/acknowledge [post]
// @Security BearerAuth
func (handler *Handler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Acknowledge")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	alert, err := handler.service.Acknowledge(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("alert_id", id).Msg("failed to acknowledge alert")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, alert)
}
