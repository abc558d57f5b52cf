package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"guesthouse/config"
	"guesthouse/infras/jwt"
	jwtMocks "guesthouse/infras/jwt/mocks"
	"guesthouse/infras/otel/mocks"
	"guesthouse/internal/domains/auth/model/dto"
	"guesthouse/internal/domains/auth/service"
	roleMocks "guesthouse/internal/domains/role/mocks"
	userMocks "guesthouse/internal/domains/user/mocks"
	userModel "guesthouse/internal/domains/user/model"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/password"
	"guesthouse/shared/session"
	"guesthouse/shared/timezone"
)

type fixture struct {
	svc  service.Auth
	repo *userMocks.MockUser
	role *roleMocks.MockRole
	jwt  *jwtMocks.MockJWT
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo: userMocks.NewMockUser(ctrl),
		role: roleMocks.NewMockRole(ctrl),
		jwt:  jwtMocks.NewMockJWT(ctrl),
	}

	f.svc = service.New(f.repo, f.role, &config.Config{}, mocks.NewOtel(), f.jwt)

	return f
}

func signedIn() context.Context {
	return session.NewContext(context.Background(), session.Session{UserID: "user-id-123", Email: "test@example.com", TokenID: "token-1"})
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Email: " Ama@Example.com ", Password: "password123"}

	t.Run("new account is a guest", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, "ama@example.com", user.Email)
				assert.Equal(t, constant.RoleGuest, user.Role)
				assert.True(t, user.Active)
				assert.NoError(t, password.Verify("password123", user.Password))

				return nil
			})

		assert.NoError(t, f.svc.Register(context.Background(), req))
	})

	t.Run("email taken", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Register(context.Background(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.Hash("password")
	require.NoError(t, err)

	validUser := userModel.User{
		ID:       "user-id-123",
		Email:    "test@example.com",
		Password: hashed,
		Role:     constant.RoleReceptionist,
		FullName: stringPtr("Test User"),
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				f.jwt.EXPECT().GenerateTokenPair(validUser.ID, validUser.Email).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login update failure still signs in",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				f.jwt.EXPECT().GenerateTokenPair(validUser.ID, validUser.Email).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nonexistent@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				inactiveUser := validUser
				inactiveUser.Active = false

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				f.jwt.EXPECT().GenerateTokenPair(validUser.ID, validUser.Email).Return(nil, errors.New("token generation failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "storage error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RefreshTokenRequest
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful token refresh",
			req:  dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"},
			setupMock: func(f fixture) {
				f.jwt.EXPECT().RefreshTokens(gomock.Any(), "valid-refresh-token").
					Return(&jwt.TokenPair{AccessToken: "new-access-token", RefreshToken: "new-refresh-token"}, nil)
			},
		},
		{
			name: "revoked refresh token",
			req:  dto.RefreshTokenRequest{RefreshToken: "revoked-refresh-token"},
			setupMock: func(f fixture) {
				f.jwt.EXPECT().RefreshTokens(gomock.Any(), "revoked-refresh-token").Return(nil, jwt.ErrRevokedToken)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.RefreshToken(context.Background(), tt.req)

			if tt.wantErr {
				assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "new-access-token", result.AccessToken)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes both tokens and forgets the role", func(t *testing.T) {
		f := newFixture(t)

		refreshClaims := &jwt.Claims{UserID: "user-id-123", TokenID: "token-2", Type: jwt.RefreshToken}

		f.jwt.EXPECT().Revoke(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, claims *jwt.Claims) error {
				assert.Equal(t, "token-1", claims.TokenID)

				return nil
			})
		f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(refreshClaims, nil)
		f.jwt.EXPECT().Revoke(gomock.Any(), refreshClaims).Return(nil)
		f.role.EXPECT().Forget(gomock.Any(), "user-id-123").Return(nil)

		assert.NoError(t, f.svc.Logout(signedIn(), dto.LogoutRequest{RefreshToken: "refresh-token"}))
	})

	t.Run("refresh token of another user is left alone", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().Revoke(gomock.Any(), gomock.Any()).Return(nil)
		f.jwt.EXPECT().ValidateToken(gomock.Any(), "other-token", jwt.RefreshToken).
			Return(&jwt.Claims{UserID: "someone-else", TokenID: "token-9"}, nil)
		f.role.EXPECT().Forget(gomock.Any(), "user-id-123").Return(nil)

		assert.NoError(t, f.svc.Logout(signedIn(), dto.LogoutRequest{RefreshToken: "other-token"}))
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Logout(context.Background(), dto.LogoutRequest{})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("revocation failure", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().Revoke(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		assert.Error(t, f.svc.Logout(signedIn(), dto.LogoutRequest{}))
	})
}

func TestAuthService_Me(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
		wantRole  string
	}{
		{
			name: "receptionist",
			ctx:  signedIn(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "user-id-123", Email: "test@example.com"}, nil)
				f.role.EXPECT().GetRole(gomock.Any(), "user-id-123").Return(constant.RoleReceptionist, nil)
			},
			wantRole: constant.RoleReceptionist,
		},
		{
			name: "role not resolved",
			ctx:  signedIn(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "user-id-123"}, nil)
				f.role.EXPECT().GetRole(gomock.Any(), "user-id-123").Return(constant.Empty, errors.New("database error"))
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:      "anonymous",
			ctx:       context.Background(),
			setupMock: func(fixture) {},
			wantCode:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Me(tt.ctx)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantRole, res.Role)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	hashed, err := password.Hash("old-password")
	require.NoError(t, err)

	t.Run("changes the password", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "user-id-123", Password: hashed}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.NoError(t, password.Verify("new-password", fields[userModel.FieldPassword].(string)))

				return nil
			})

		err := f.svc.ChangePassword(signedIn(), dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "user-id-123", Password: hashed}, nil)

		err := f.svc.ChangePassword(signedIn(), dto.ChangePasswordRequest{CurrentPassword: "guess", NewPassword: "new-password"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func stringPtr(s string) *string {
	return &s
}
