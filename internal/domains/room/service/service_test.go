package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	s3Mocks "guesthouse/infras/s3/mocks"
	roleMocks "guesthouse/internal/domains/role/mocks"
	roomMocks "guesthouse/internal/domains/room/mocks"
	"guesthouse/internal/domains/room/model"
	"guesthouse/internal/domains/room/model/dto"
	"guesthouse/internal/domains/room/service"
	"guesthouse/permissions"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gRepo "guesthouse/shared/repository"
	"guesthouse/shared/session"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc   service.Room
	repo  *roomMocks.MockRoom
	role  *roleMocks.MockRole
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		role:  roleMocks.NewMockRole(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.External.S3.BucketName = "rooms"

	f.svc = service.New(f.repo, f.role, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func owner() session.Session {
	return session.Session{UserID: "owner-1", Email: "owner@guesthouse.test", Role: constant.RoleOwner}
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		Name:          "R1",
		Category:      model.CategoryDouble,
		PricePerNight: "150.00",
		Capacity:      2,
		Floor:         1,
		Amenities:     []string{"wifi", "air conditioning"},
	}

	t.Run("owner creates an available room", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), permissions.OperationRoomManage).Return(owner(), nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				assert.Equal(t, model.StatusAvailable, room.Status)
				assert.True(t, decimal.RequireFromString("150").Equal(room.PricePerNight))
				assert.Equal(t, "owner@guesthouse.test", room.CreatedBy)
				assert.Empty(t, room.Images)

				return nil
			})

		res, err := f.svc.Create(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "R1", res.Name)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("receptionist is refused before anything is written", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), permissions.OperationRoomManage).Return(session.Session{}, failure.ForbiddenError)

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("duplicate name", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(owner(), nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "from storage",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{
					ID:            "room-1",
					Name:          "R1",
					Status:        model.StatusAvailable,
					PricePerNight: decimal.NewFromInt(150),
				}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "storage failure",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), "room-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "room-1", res.ID)
			assert.Equal(t, []string{}, res.Images)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	f := newFixture(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Room{
		{ID: "room-1", Name: "R1", Status: model.StatusAvailable},
		{ID: "room-2", Name: "R2", Status: model.StatusCleaning},
	}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Rooms, 2)
}

func TestRoomService_UpdateStatus(t *testing.T) {
	req := dto.UpdateRoomStatusRequest{Status: model.StatusCleaning}

	t.Run("receptionist marks a room for cleaning", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), permissions.OperationRoomStatus).
			Return(session.Session{UserID: "desk-1", Email: "desk@guesthouse.test", Role: constant.RoleReceptionist}, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCleaning, fields[model.FieldStatus])
				assert.Equal(t, "desk@guesthouse.test", fields[constant.FieldModifiedBy])

				return nil
			})

		assert.NoError(t, f.svc.UpdateStatus(context.Background(), req, "room-1"))
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(owner(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.UpdateStatus(context.Background(), req, "room-9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("room deleted between check and write", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(owner(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(gRepo.ErrNoRowsAffected)

		err := f.svc.UpdateStatus(context.Background(), req, "room-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(session.Session{}, failure.Unauthorized("sign in required"))

		err := f.svc.UpdateStatus(context.Background(), req, "room-1")

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestRoomService_Update(t *testing.T) {
	f := newFixture(t)
	capacity := 3

	f.role.EXPECT().Authorize(gomock.Any(), permissions.OperationRoomManage).Return(owner(), nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "room-1", Name: "R1"}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.True(t, decimal.RequireFromString("175.5").Equal(fields[model.FieldPricePerNight].(decimal.Decimal)))
			assert.Equal(t, capacity, fields[model.FieldCapacity])
			assert.NotContains(t, fields, model.FieldName)

			return nil
		})

	err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{PricePerNight: "175.50", Capacity: &capacity}, "room-1")

	assert.NoError(t, err)
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("room with bookings", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(owner(), nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Room{ID: "room-1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"})

		err := f.svc.Delete(context.Background(), "room-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("removes stored images", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(owner(), nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "room-1", Images: pq.StringArray{"https://cdn.test/rooms/room/a.jpg"}}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().KeyFromURL("https://cdn.test/rooms/room/a.jpg").Return("room/a.jpg")
		f.s3.EXPECT().Delete(gomock.Any(), "room/a.jpg").Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "room-1"))
	})
}
