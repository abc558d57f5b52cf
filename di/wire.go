//go:build wireinject
// +build wireinject

package di

import (
	"guesthouse/config"
	"guesthouse/infras/jwt"
	"guesthouse/infras/kafka"
	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/infras/redis"
	"guesthouse/infras/s3"
	"guesthouse/permissions"
	"guesthouse/shared/cache"
	"guesthouse/transport/http"
	"guesthouse/transport/http/middleware"
	"guesthouse/transport/http/router"

	"github.com/google/wire"

	alertRepository "guesthouse/internal/domains/alert/repository"
	alertService "guesthouse/internal/domains/alert/service"
	authService "guesthouse/internal/domains/auth/service"
	bookingRepository "guesthouse/internal/domains/booking/repository"
	bookingService "guesthouse/internal/domains/booking/service"
	guestRepository "guesthouse/internal/domains/guest/repository"
	guestService "guesthouse/internal/domains/guest/service"
	paymentRepository "guesthouse/internal/domains/payment/repository"
	paymentService "guesthouse/internal/domains/payment/service"
	roleService "guesthouse/internal/domains/role/service"
	roomRepository "guesthouse/internal/domains/room/repository"
	roomService "guesthouse/internal/domains/room/service"
	userRepository "guesthouse/internal/domains/user/repository"
	userService "guesthouse/internal/domains/user/service"

	alertHandler "guesthouse/internal/handlers/alert"
	authHandler "guesthouse/internal/handlers/auth"
	bookingHandler "guesthouse/internal/handlers/booking"
	eventHandler "guesthouse/internal/handlers/event"
	guestHandler "guesthouse/internal/handlers/guest"
	paymentHandler "guesthouse/internal/handlers/payment"
	roomHandler "guesthouse/internal/handlers/room"
	staffHandler "guesthouse/internal/handlers/staff"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roleDomain = wire.NewSet(
	userRepository.New,
	roleService.New,
)

var authDomain = wire.NewSet(
	authService.New,
	userService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	guestRepository.New,
	bookingService.New,
	guestService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.NewNotification,
	paymentRepository.NewSettings,
	paymentService.New,
)

var alertDomain = wire.NewSet(
	alertRepository.New,
	alertService.New,
)

var domains = wire.NewSet(
	roleDomain,
	authDomain,
	roomDomain,
	bookingDomain,
	paymentDomain,
	alertDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	guestHandler.New,
	paymentHandler.New,
	staffHandler.New,
	alertHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

// InitializeWorker builds the kafka consumer that turns domain events into alerts.
func InitializeWorker() *eventHandler.Handler {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		roleDomain,
		alertDomain,
		eventHandler.New,
	)

	return &eventHandler.Handler{}
}
