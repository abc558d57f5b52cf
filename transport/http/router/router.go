package router

import (
	"guesthouse/internal/handlers/alert"
	"guesthouse/internal/handlers/auth"
	"guesthouse/internal/handlers/booking"
	"guesthouse/internal/handlers/guest"
	"guesthouse/internal/handlers/payment"
	"guesthouse/internal/handlers/room"
	"guesthouse/internal/handlers/staff"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
	Guest   guest.Handler
	Payment payment.Handler
	Staff   staff.Handler
	Alert   alert.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
		r.DomainHandlers.Alert.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
