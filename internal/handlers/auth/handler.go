package auth

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/auth/model/dto"
	"guesthouse/internal/domains/auth/service"
	"guesthouse/shared/constant"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/logout", handler.Logout)
		r.Get("/me", handler.Me)
		r.Put("/password", handler.ChangePassword)
	})
}

func (handler *Handler) scope(r *http.Request, name string) (*http.Request, otel.Scope) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)

	return r.WithContext(ctx), scope
}

// abort traces and logs err, then writes it as the response.
func abort(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// Register creates an account for a guest
// @Summary Register
// @Description Create an account. New accounts hold the guest role until an owner assigns a staff role.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "email already registered"
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "Register")
	defer scope.End()

	var req dto.RegisterRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		abort(w, scope, err, "invalid registration body")

		return
	}

	if err := handler.service.Register(r.Context(), req); err != nil {
		abort(w, scope, err, "failed to register account")

		return
	}

	scope.AddEvent("account registered")
	response.WithMessage(w, http.StatusCreated, "Account registered")
}

// Login exchanges credentials for a token pair
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		abort(w, scope, err, "invalid login body")

		return
	}

	res, err := handler.service.Login(r.Context(), req)
	if err != nil {
		abort(w, scope, err, "failed to login")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken rotates a refresh token
// @Summary Refresh tokens
// @Description The presented refresh token is revoked and a new pair is issued.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		abort(w, scope, err, "invalid refresh body")

		return
	}

	res, err := handler.service.RefreshToken(r.Context(), req)
	if err != nil {
		abort(w, scope, err, "failed to refresh tokens")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Logout ends the caller's session
// @Summary Logout
// @Description Revoke the access token and, when given, the refresh token. The cached role is dropped.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest false "Logout Request"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/logout [post]
// @Security BearerAuth
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "Logout")
	defer scope.End()

	var req dto.LogoutRequest
	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			abort(w, scope, err, "invalid logout body")

			return
		}
	}

	if err := handler.service.Logout(r.Context(), req); err != nil {
		abort(w, scope, err, "failed to logout")

		return
	}

	response.WithMessage(w, http.StatusOK, "Logged out")
}

// Me returns the caller's identity and role
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[dto.MeResponse]
// @Failure 401 {object} response.Error
// @Failure 503 {object} response.Error "role not resolved yet"
// @Router /v1/auth/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "Me")
	defer scope.End()

	res, err := handler.service.Me(r.Context())
	if err != nil {
		abort(w, scope, err, "failed to resolve current user")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ChangePassword replaces the caller's password
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/password [put]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "ChangePassword")
	defer scope.End()

	var req dto.ChangePasswordRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		abort(w, scope, err, "invalid change password body")

		return
	}

	if err := handler.service.ChangePassword(r.Context(), req); err != nil {
		abort(w, scope, err, "failed to change password")

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed")
}
