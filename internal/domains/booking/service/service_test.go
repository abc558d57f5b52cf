package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"guesthouse/config"
	"guesthouse/infras/kafka"
	kafkaMocks "guesthouse/infras/kafka/mocks"
	"guesthouse/infras/otel/mocks"
	"guesthouse/internal/domains/booking/accesscode"
	bookingMocks "guesthouse/internal/domains/booking/mocks"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/booking/model/dto"
	"guesthouse/internal/domains/booking/service"
	guestMocks "guesthouse/internal/domains/guest/mocks"
	guestModel "guesthouse/internal/domains/guest/model"
	guestDto "guesthouse/internal/domains/guest/model/dto"
	paymentMocks "guesthouse/internal/domains/payment/mocks"
	paymentModel "guesthouse/internal/domains/payment/model"
	roleMocks "guesthouse/internal/domains/role/mocks"
	roomMocks "guesthouse/internal/domains/room/mocks"
	roomModel "guesthouse/internal/domains/room/model"
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
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const roomID = "5f2b7c1e-8d7a-4b43-9a53-0c2f9a7d1e11"

type fixture struct {
	svc      service.Booking
	repo     *bookingMocks.MockBooking
	rooms    *roomMocks.MockRoom
	guests   *guestMocks.MockGuest
	payments *paymentMocks.MockNotification
	settings *paymentMocks.MockSettings
	role     *roleMocks.MockRole
	kafka    *kafkaMocks.MockClient
	cache    *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		guests:   guestMocks.NewMockGuest(ctrl),
		payments: paymentMocks.NewMockNotification(ctrl),
		settings: paymentMocks.NewMockSettings(ctrl),
		role:     roleMocks.NewMockRole(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Booking.MaxNights = 7
	cfg.Booking.AccessCodeAttempts = 3
	cfg.Booking.Currency = "GHS"
	cfg.Kafka.Topics.BookingPlaced = "booking.placed"

	f.svc = service.New(f.repo, f.rooms, f.guests, f.payments, f.settings, f.role, f.kafka, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func (f fixture) expectRoom(room roomModel.Room) {
	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
}

func r1() roomModel.Room {
	return roomModel.Room{ID: roomID, Name: "R1", PricePerNight: decimal.NewFromInt(150), Status: roomModel.StatusAvailable}
}

func amaMensah(nights int) dto.PlaceBookingRequest {
	return dto.PlaceBookingRequest{
		RoomID: roomID,
		Nights: nights,
		Guest: guestDto.GuestDetails{
			FirstName: "Ama",
			LastName:  "Mensah",
			Email:     "ama.mensah@example.com",
			Phone:     "+233201234567",
		},
	}
}

func TestBookingService_Place(t *testing.T) {
	t.Run("two nights in R1 for Ama Mensah", func(t *testing.T) {
		f := newFixture(t)

		var (
			guest   guestModel.Guest
			booking model.Booking
		)

		f.expectRoom(r1())
		f.repo.EXPECT().Overlaps(gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().AccessCodeInUse(gomock.Any(), gomock.Any()).Return(false, nil)

		gomock.InOrder(
			f.guests.EXPECT().Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, g guestModel.Guest) error {
					guest = g

					return nil
				}),
			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, b model.Booking) error {
					booking = b

					return nil
				}),
			f.payments.EXPECT().Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, n paymentModel.Notification) error {
					assert.Equal(t, booking.ID, n.BookingID)
					assert.True(t, decimal.NewFromInt(300).Equal(n.Amount))
					assert.Equal(t, "Ama Mensah", n.GuestName)
					assert.Equal(t, "+233201234567", n.PhoneNumber)
					assert.False(t, n.IsConfirmed)
					assert.Nil(t, n.ConfirmedBy)

					return nil
				}),
		)

		f.settings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paymentModel.Settings{
			ID:            paymentModel.SettingsID,
			AccountNumber: "0241234567",
			AccountName:   "Sunrise Guest House",
			Provider:      "MTN Mobile Money",
		}, nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), "booking.placed", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, msgs ...kafka.Message) error {
				require.Len(t, msgs, 1)

				event, ok := msgs[0].Value.(model.Placed)
				require.True(t, ok)
				assert.Equal(t, booking.ID, event.BookingID)
				assert.Equal(t, "Ama Mensah", event.GuestName)

				return nil
			})

		res, err := f.svc.Place(context.Background(), amaMensah(2))

		require.NoError(t, err)
		assert.Equal(t, booking.ID, res.BookingID)
		assert.True(t, decimal.NewFromInt(300).Equal(res.TotalAmount))
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, model.PaymentStatusPending, res.PaymentStatus)
		assert.True(t, accesscode.Valid(res.AccessCode))
		assert.Equal(t, booking.AccessCode, res.AccessCode)
		assert.Equal(t, "GHS", res.Currency)
		require.NotNil(t, res.PaymentInstructions)
		assert.Equal(t, "0241234567", res.PaymentInstructions.AccountNumber)
		assert.Equal(t, res.AccessCode, res.PaymentInstructions.Reference)

		assert.Equal(t, guest.ID, *booking.GuestID)
		assert.Nil(t, booking.UserID)
		assert.Equal(t, 2, booking.Nights)
		assert.Equal(t, 2, model.Nights(booking.CheckIn, booking.CheckOut))
		assert.Equal(t, constant.ContextGuest, booking.CreatedBy)
	})

	t.Run("signed in guest is linked to the booking", func(t *testing.T) {
		f := newFixture(t)
		ctx := session.NewContext(context.Background(), session.Session{UserID: "user-7", Email: "kofi@example.com"})

		f.expectRoom(r1())
		f.repo.EXPECT().Overlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().AccessCodeInUse(gomock.Any(), gomock.Any()).Return(false, nil)
		f.guests.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, g guestModel.Guest) error {
				require.NotNil(t, g.UserID)
				assert.Equal(t, "user-7", *g.UserID)

				return nil
			})
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b model.Booking) error {
				require.NotNil(t, b.UserID)
				assert.Equal(t, "user-7", *b.UserID)
				assert.Equal(t, "kofi@example.com", b.CreatedBy)

				return nil
			})
		f.payments.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.settings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paymentModel.Settings{}, nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		res, err := f.svc.Place(ctx, amaMensah(1))

		require.NoError(t, err)
		assert.Nil(t, res.PaymentInstructions)
	})

	t.Run("payment notification stage fails after guest and booking are stored", func(t *testing.T) {
		f := newFixture(t)

		var booking model.Booking

		f.expectRoom(r1())
		f.repo.EXPECT().Overlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().AccessCodeInUse(gomock.Any(), gomock.Any()).Return(false, nil)
		f.guests.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b model.Booking) error {
				booking = b

				return nil
			})
		f.payments.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		res, err := f.svc.Place(context.Background(), amaMensah(2))

		require.Error(t, err)
		assert.Empty(t, res.BookingID)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, failure.StagePaymentNotification, failure.GetStage(err))
		assert.Contains(t, err.Error(), "payment record was not created")

		var fail *failure.Failure
		require.ErrorAs(t, err, &fail)
		assert.Equal(t, booking.ID, fail.Resource)
	})

	t.Run("guest stage fails and nothing else is written", func(t *testing.T) {
		f := newFixture(t)

		f.expectRoom(r1())
		f.repo.EXPECT().Overlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().AccessCodeInUse(gomock.Any(), gomock.Any()).Return(false, nil)
		f.guests.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Place(context.Background(), amaMensah(2))

		assert.Equal(t, failure.StageGuest, failure.GetStage(err))
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("booking stage fails and the orphan guest is reported", func(t *testing.T) {
		f := newFixture(t)

		var guest guestModel.Guest

		f.expectRoom(r1())
		f.repo.EXPECT().Overlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().AccessCodeInUse(gomock.Any(), gomock.Any()).Return(false, nil)
		f.guests.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, g guestModel.Guest) error {
				guest = g

				return nil
			})
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := f.svc.Place(context.Background(), amaMensah(2))

		var fail *failure.Failure
		require.ErrorAs(t, err, &fail)
		assert.Equal(t, failure.StageBooking, fail.Stage)
		assert.Equal(t, guest.ID, fail.Resource)
	})

	t.Run("room taken by a concurrent booking", func(t *testing.T) {
		f := newFixture(t)

		f.expectRoom(r1())
		f.repo.EXPECT().Overlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().AccessCodeInUse(gomock.Any(), gomock.Any()).Return(false, nil)
		f.guests.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeExclusion, Constraint: "bookings_room_stay_excl"})

		_, err := f.svc.Place(context.Background(), amaMensah(2))

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, failure.StageBooking, failure.GetStage(err))
	})

	t.Run("access code taken between check and insert is redrawn", func(t *testing.T) {
		f := newFixture(t)

		var codes []string

		f.expectRoom(r1())
		f.repo.EXPECT().Overlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().AccessCodeInUse(gomock.Any(), gomock.Any()).Return(false, nil)
		f.guests.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b model.Booking) error {
				codes = append(codes, b.AccessCode)
				if len(codes) == 1 {
					return &pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: "bookings_active_access_code_key"}
				}

				return nil
			}).Times(2)
		f.payments.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.settings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paymentModel.Settings{}, errors.New("database error"))
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Place(context.Background(), amaMensah(2))

		require.NoError(t, err)
		require.Len(t, codes, 2)
		assert.Equal(t, codes[1], res.AccessCode)
	})

	t.Run("collisions with active bookings are redrawn before writing", func(t *testing.T) {
		f := newFixture(t)

		f.expectRoom(r1())
		f.repo.EXPECT().Overlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().AccessCodeInUse(gomock.Any(), gomock.Any()).Return(true, nil).Times(3)

		_, err := f.svc.Place(context.Background(), amaMensah(2))

		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	})

	tests := []struct {
		name      string
		req       func() dto.PlaceBookingRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:     "zero nights",
			req:      func() dto.PlaceBookingRequest { return amaMensah(0) },
			wantCode: http.StatusBadRequest,
		},
		{
			name: "guest name and phone are blank",
			req: func() dto.PlaceBookingRequest {
				req := amaMensah(2)
				req.Guest.FirstName = "   "
				req.Guest.LastName = "\t"
				req.Guest.Phone = "  "

				return req
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "longer than the maximum stay",
			req:      func() dto.PlaceBookingRequest { return amaMensah(8) },
			wantCode: http.StatusBadRequest,
		},
		{
			name: "check in in the past",
			req: func() dto.PlaceBookingRequest {
				req := amaMensah(2)
				req.CheckIn = time.Now().AddDate(0, 0, -3).Format(time.DateOnly)

				return req
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown room",
			req:  func() dto.PlaceBookingRequest { return amaMensah(2) },
			setupMock: func(f fixture) {
				f.expectRoom(roomModel.Room{})
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "room being cleaned",
			req:  func() dto.PlaceBookingRequest { return amaMensah(2) },
			setupMock: func(f fixture) {
				room := r1()
				room.Status = roomModel.StatusCleaning
				f.expectRoom(room)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "room occupied",
			req:  func() dto.PlaceBookingRequest { return amaMensah(2) },
			setupMock: func(f fixture) {
				room := r1()
				room.Status = roomModel.StatusOccupied
				f.expectRoom(room)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "dates overlap an active booking",
			req:  func() dto.PlaceBookingRequest { return amaMensah(2) },
			setupMock: func(f fixture) {
				f.expectRoom(r1())
				f.repo.EXPECT().Overlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "room lookup fails",
			req:  func() dto.PlaceBookingRequest { return amaMensah(2) },
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			// no guest, booking or notification insert is expected
			_, err := f.svc.Place(context.Background(), tt.req())

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Empty(t, failure.GetStage(err))
		})
	}
}

func TestBookingService_Transitions(t *testing.T) {
	desk := session.Session{UserID: "desk-1", Email: "desk@guesthouse.test", Role: constant.RoleReceptionist}

	tests := []struct {
		name     string
		call     func(svc service.Booking) error
		current  string
		next     string
		wantCode int
	}{
		{
			name:    "check in a confirmed booking",
			call:    func(svc service.Booking) error { return svc.CheckIn(context.Background(), "booking-1") },
			current: model.StatusConfirmed,
			next:    model.StatusCheckedIn,
		},
		{
			name:    "check out",
			call:    func(svc service.Booking) error { return svc.CheckOut(context.Background(), "booking-1") },
			current: model.StatusCheckedIn,
			next:    model.StatusCheckedOut,
		},
		{
			name:    "cancel a pending booking",
			call:    func(svc service.Booking) error { return svc.Cancel(context.Background(), "booking-1") },
			current: model.StatusPending,
			next:    model.StatusCancelled,
		},
		{
			name:     "check in before payment is confirmed",
			call:     func(svc service.Booking) error { return svc.CheckIn(context.Background(), "booking-1") },
			current:  model.StatusPending,
			wantCode: http.StatusConflict,
		},
		{
			name:     "cancel after check out",
			call:     func(svc service.Booking) error { return svc.Cancel(context.Background(), "booking-1") },
			current:  model.StatusCheckedOut,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.role.EXPECT().Authorize(gomock.Any(), permissions.OperationBookingFrontDesk).Return(desk, nil)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(model.Booking{ID: "booking-1", Status: tt.current}, nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, tt.next, fields[model.FieldStatus])
						assert.Equal(t, "desk@guesthouse.test", fields[constant.FieldModifiedBy])

						_, args := filter.GetWhereClause()
						assert.Equal(t, tt.current, args["current_status"])

						return nil
					})
			}

			err := tt.call(f.svc)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}

	t.Run("guest role is denied", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(session.Session{}, failure.ForbiddenError)

		err := f.svc.CheckIn(context.Background(), "booking-1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(desk, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.CheckOut(context.Background(), "booking-9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("another desk moved the booking first", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(desk, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Status: model.StatusConfirmed}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to update data (booking): %w", gRepo.ErrNoRowsAffected))

		err := f.svc.CheckIn(context.Background(), "booking-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, "booking status changed, reload and retry", err.Error())
	})
}

func TestBookingService_GetByAccessCode(t *testing.T) {
	desk := session.Session{UserID: "desk-1", Role: constant.RoleReceptionist}

	t.Run("typed in lower case", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), permissions.OperationBookingRead).Return(desk, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "K7PXQ2", args[model.FieldAccessCode])

				return model.Booking{ID: "booking-1", AccessCode: "K7PXQ2", Status: model.StatusConfirmed}, nil
			})

		res, err := f.svc.GetByAccessCode(context.Background(), " k7pxq2")

		require.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("malformed code", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(desk, nil)

		_, err := f.svc.GetByAccessCode(context.Background(), "12345")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("no active booking", func(t *testing.T) {
		f := newFixture(t)

		f.role.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(desk, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.GetByAccessCode(context.Background(), "K7PXQ2")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetMine(t *testing.T) {
	t.Run("anonymous caller", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetMine(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("only the caller's bookings", func(t *testing.T) {
		f := newFixture(t)
		ctx := session.NewContext(context.Background(), session.Session{UserID: "user-7"})

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "user-7", args[model.FieldUserID])

				return 1, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{{ID: "booking-1"}}, nil)

		res, err := f.svc.GetMine(ctx, gDto.QueryParams{Page: 1, Limit: 10})

		require.NoError(t, err)
		assert.Len(t, res.Bookings, 1)
	})
}

func TestBookingService_Get(t *testing.T) {
	f := newFixture(t)

	f.role.EXPECT().Authorize(gomock.Any(), permissions.OperationBookingRead).Return(session.Session{UserID: "owner-1", Role: constant.RoleOwner}, nil)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := f.svc.Get(context.Background(), "booking-9")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
