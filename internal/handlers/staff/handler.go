package staff

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/user/model"
	"guesthouse/internal/domains/user/model/dto"
	"guesthouse/internal/domains/user/service"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/staff", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetStaff)
		routerGroup.Patch("/{id}/role", handler.AssignRole)
		routerGroup.Delete("/{id}/role", handler.RevokeRole)
	})
}

// GetStaff lists users with their roles.
// @Summary Get users and roles
// @Tags Staff
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param role query string false "Filter by role"
// @Param email query string false "Filter by email"
// @Success 200 {object} response.Data[dto.GetUsersResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff [get]
// @Security BearerAuth
func (handler *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaff")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)
	queryParams.RestrictSort(model.FieldEmail, model.FieldRole, model.FieldLastLogin, constant.FieldCreatedAt)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorLike,
				Value:    query.Get(model.FieldEmail),
				Table:    model.TableName,
			},
		},
	}
	filterGroup.AppendEq(query, model.TableName, model.FieldRole)

	var users dto.GetUsersResponse

	users, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get staff")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, users)
}

// AssignRole gives a user a role.
// @Summary Assign a role
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.AssignRoleRequest true "Role"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id}/role [patch]
// @Security BearerAuth
func (handler *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignRole")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.AssignRoleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AssignRole(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", id).Msg("failed to assign role")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Role assigned " + req.Role)

	response.WithMessage(w, http.StatusOK, "Role assigned successfully")
}

// RevokeRole returns a user to the guest role.
// @Summary Revoke a role
// @Tags Staff
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id}/role [delete]
// @Security BearerAuth
func (handler *Handler) RevokeRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RevokeRole")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.RevokeRole(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", id).Msg("failed to revoke role")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Role revoked successfully")
}
