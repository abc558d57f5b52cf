package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"slices"

	"guesthouse/config"
	"guesthouse/infras/jwt"
	"guesthouse/infras/otel"
	roleService "guesthouse/internal/domains/role/service"
	"guesthouse/permissions"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/session"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	role       roleService.Role
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, role roleService.Role, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		role:       role,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func (m *authRoleImpl) routePermission(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil || m.permission == nil {
		return request.URL.Path, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	return path, m.permission.FindPermissions(path, request.Method)
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(SkipAuthKey("skip")).(bool)

	return skip
}

// Auth resolves the bearer token into a session. Optional routes let
// anonymous callers and unusable tokens through without a session.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		if skipped(ctx) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path, permission := m.routePermission(request)
		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		reject := func(err error) {
			if permission.Optional {
				log.Warn().Err(err).Str("path", path).Msg("continuing without identity")
				scope.End()
				next.ServeHTTP(writer, request)

				return
			}

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)
		}

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			if permission.Optional {
				scope.End()
				next.ServeHTTP(writer, request)

				return
			}

			reject(failure.Unauthorized("Missing authorization header"))

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			reject(failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, tokenString, jwt.AccessToken)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "Token has expired"
			case errors.Is(err, jwt.ErrInvalidToken):
				message = "Invalid token"
			case errors.Is(err, jwt.ErrInvalidClaim):
				message = "Invalid token claims"
			default:
				message = "Token validation failed"
			}

			reject(failure.Unauthorized(message))

			return
		}

		if claims.UserID == "" || claims.Email == "" {
			log.Error().Str("user_id", claims.UserID).Msg("JWT claims are incomplete")
			reject(failure.Unauthorized("Invalid token claims"))

			return
		}

		ctx = session.NewContext(ctx, session.Session{
			UserID:  claims.UserID,
			Email:   claims.Email,
			TokenID: claims.TokenID,
		})

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the caller's stored role against the roles of the route.
// Requires prior authentication via Auth middleware.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if skipped(ctx) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		_, permission := m.routePermission(request)

		if permission.Skip || permission.Optional || len(permission.Permissions) == 0 {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		sess := session.FromContext(ctx)
		if !sess.IsAuthenticated() {
			err := failure.Unauthorized("sign in required")
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		role, err := m.role.GetRole(ctx, sess.UserID)
		if err != nil {
			log.Error().Err(err).Str("user_id", sess.UserID).Msg("failed to resolve role")
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, failure.RoleUnresolvedError)

			return
		}

		if !slices.Contains(permission.Permissions, role) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		sess.Role = role

		scope.End()
		next.ServeHTTP(writer, request.WithContext(session.NewContext(ctx, sess)))
	})
}

// APIKey lets internal callers presenting X-API-Key past route authentication.
// Services still authorize every protected operation against a session.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), false)
		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1 {
			err := failure.ForbiddenError

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
