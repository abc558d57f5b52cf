package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	"guesthouse/internal/domains/role/service"
	userMocks "guesthouse/internal/domains/user/mocks"
	userModel "guesthouse/internal/domains/user/model"
	"guesthouse/permissions"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/session"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Role, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(mockRepo, permissions.Get(), cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestRoleService_Authorize(t *testing.T) {
	signedIn := session.NewContext(context.Background(), session.Session{UserID: "staff-1", Email: "desk@guesthouse.test"})

	tests := []struct {
		name      string
		ctx       context.Context
		operation string
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
		wantRole  string
	}{
		{
			name:      "anonymous caller is rejected before any lookup",
			ctx:       context.Background(),
			operation: permissions.OperationPaymentConfirm,
			setupMock: func(repo *userMocks.MockUser) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "role lookup failure leaves role unresolved",
			ctx:       signedIn,
			operation: permissions.OperationPaymentConfirm,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(userModel.User{}, errors.New("connection refused"))
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:      "guest cannot confirm payments",
			ctx:       signedIn,
			operation: permissions.OperationPaymentConfirm,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "staff-1", Role: constant.RoleGuest, Active: true}, nil)
			},
			wantCode: http.StatusForbidden,
			wantRole: constant.RoleGuest,
		},
		{
			name:      "deactivated receptionist is denied",
			ctx:       signedIn,
			operation: permissions.OperationPaymentConfirm,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "staff-1", Role: constant.RoleReceptionist, Active: false}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:      "unknown user is denied",
			ctx:       signedIn,
			operation: permissions.OperationBookingRead,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:      "receptionist confirms payments",
			ctx:       signedIn,
			operation: permissions.OperationPaymentConfirm,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "staff-1", Role: constant.RoleReceptionist, Active: true}, nil)
			},
			wantRole: constant.RoleReceptionist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			sess, err := svc.Authorize(tt.ctx, tt.operation)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "staff-1", sess.UserID)
			}

			assert.Equal(t, tt.wantRole, sess.Role)
		})
	}
}

func TestRoleService_Authorize_IgnoresCachedRole(t *testing.T) {
	svc, repo, mockCache := newService(t)

	ctx := session.NewContext(context.Background(), session.Session{UserID: "staff-1", Role: constant.RoleOwner})

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(userModel.User{ID: "staff-1", Role: constant.RoleGuest, Active: true}, nil)

	_, err := svc.Authorize(ctx, permissions.OperationRoomManage)

	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}

func TestRoleService_GetRole(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		svc, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), "role:get:user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*string) = constant.RoleOwner

				return nil
			})

		role, err := svc.GetRole(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, constant.RoleOwner, role)
	})

	t.Run("cache miss reads storage", func(t *testing.T) {
		svc, repo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "user-1", Role: constant.RoleReceptionist, Active: true}, nil)

		role, err := svc.GetRole(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, constant.RoleReceptionist, role)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(userModel.User{}, errors.New("database error"))

		role, err := svc.GetRole(context.Background(), "user-1")

		assert.Error(t, err)
		assert.Empty(t, role)
	})
}

func TestRoleService_Forget(t *testing.T) {
	svc, _, mockCache := newService(t)

	mockCache.EXPECT().Delete(gomock.Any(), "role:get:user-1").Return(nil)

	assert.NoError(t, svc.Forget(context.Background(), "user-1"))
}
