package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"guesthouse/config"
	"guesthouse/infras/jwt"
	jwtMocks "guesthouse/infras/jwt/mocks"
	otelMocks "guesthouse/infras/otel/mocks"
	roleMocks "guesthouse/internal/domains/role/mocks"
	"guesthouse/permissions"
	"guesthouse/shared/constant"
	"guesthouse/shared/session"
	"guesthouse/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T, cfg *config.Config) (http.Handler, *jwtMocks.MockJWT, *roleMocks.MockRole, *session.Session) {
	ctrl := gomock.NewController(t)

	jwtService := jwtMocks.NewMockJWT(ctrl)
	role := roleMocks.NewMockRole(ctrl)
	mw := middleware.NewAuthRoleMiddleware(jwtService, role, otelMocks.NewOtel(), permissions.Get(), cfg)

	seen := &session.Session{}
	capture := func(w http.ResponseWriter, r *http.Request) {
		*seen = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Use(mw.APIKey, mw.Auth, mw.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Get("/rooms", capture)
		r.Post("/bookings", capture)
		r.Get("/bookings", capture)
		r.Get("/auth/me", capture)
	})

	return router, jwtService, role, seen
}

func serve(handler http.Handler, method, path string, header map[string]string) int {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range header {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec.Code
}

var bearer = map[string]string{constant.RequestHeaderAuthorization: "Bearer access-token"}

func claims() *jwt.Claims {
	return &jwt.Claims{UserID: "desk-1", Email: "desk@guesthouse.test", TokenID: "token-1", Type: jwt.AccessToken}
}

func TestAuthRole_PublicRoutes(t *testing.T) {
	t.Run("skipped route needs no token", func(t *testing.T) {
		router, _, _, _ := newRouter(t, &config.Config{})

		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/v1/rooms", nil))
	})

	t.Run("optional route accepts anonymous callers", func(t *testing.T) {
		router, _, _, seen := newRouter(t, &config.Config{})

		assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/v1/bookings", nil))
		assert.False(t, seen.IsAuthenticated())
	})

	t.Run("optional route ignores an expired token", func(t *testing.T) {
		router, jwtService, _, seen := newRouter(t, &config.Config{})

		jwtService.EXPECT().ValidateToken(gomock.Any(), "access-token", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

		assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/v1/bookings", bearer))
		assert.False(t, seen.IsAuthenticated())
	})

	t.Run("optional route keeps a valid identity", func(t *testing.T) {
		router, jwtService, _, seen := newRouter(t, &config.Config{})

		jwtService.EXPECT().ValidateToken(gomock.Any(), "access-token", jwt.AccessToken).Return(claims(), nil)

		assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/v1/bookings", bearer))
		assert.Equal(t, "desk-1", seen.UserID)
	})
}

func TestAuthRole_ProtectedRoutes(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		header    map[string]string
		setupMock func(jwtService *jwtMocks.MockJWT, role *roleMocks.MockRole)
		wantCode  int
		wantRole  string
	}{
		{
			name:     "missing token",
			path:     "/v1/bookings",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "invalid token",
			path:   "/v1/bookings",
			header: bearer,
			setupMock: func(jwtService *jwtMocks.MockJWT, _ *roleMocks.MockRole) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, jwt.ErrInvalidToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "receptionist reads bookings",
			path:   "/v1/bookings",
			header: bearer,
			setupMock: func(jwtService *jwtMocks.MockJWT, role *roleMocks.MockRole) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims(), nil)
				role.EXPECT().GetRole(gomock.Any(), "desk-1").Return(constant.RoleReceptionist, nil)
			},
			wantCode: http.StatusOK,
			wantRole: constant.RoleReceptionist,
		},
		{
			name:   "guest is forbidden",
			path:   "/v1/bookings",
			header: bearer,
			setupMock: func(jwtService *jwtMocks.MockJWT, role *roleMocks.MockRole) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims(), nil)
				role.EXPECT().GetRole(gomock.Any(), "desk-1").Return(constant.RoleGuest, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "role lookup failure",
			path:   "/v1/bookings",
			header: bearer,
			setupMock: func(jwtService *jwtMocks.MockJWT, role *roleMocks.MockRole) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims(), nil)
				role.EXPECT().GetRole(gomock.Any(), "desk-1").Return("", errors.New("database error"))
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:   "signed-in route skips the role lookup",
			path:   "/v1/auth/me",
			header: bearer,
			setupMock: func(jwtService *jwtMocks.MockJWT, _ *roleMocks.MockRole) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims(), nil)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, jwtService, role, seen := newRouter(t, &config.Config{})
			if tt.setupMock != nil {
				tt.setupMock(jwtService, role)
			}

			assert.Equal(t, tt.wantCode, serve(router, http.MethodGet, tt.path, tt.header))

			if tt.wantRole != "" {
				assert.Equal(t, tt.wantRole, seen.Role)
			}
		})
	}
}

func TestAuthRole_APIKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	t.Run("valid key skips authentication", func(t *testing.T) {
		router, _, _, _ := newRouter(t, cfg)

		code := serve(router, http.MethodGet, "/v1/bookings", map[string]string{constant.RequestHeaderAPIKey: "internal-key"})

		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("wrong key is forbidden", func(t *testing.T) {
		router, _, _, _ := newRouter(t, cfg)

		code := serve(router, http.MethodGet, "/v1/bookings", map[string]string{constant.RequestHeaderAPIKey: "guess"})

		assert.Equal(t, http.StatusForbidden, code)
	})
}
