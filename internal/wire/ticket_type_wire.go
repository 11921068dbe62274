package wire

import (
	"ticket-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTicketType(r chi.Router, ticketTypeHandler *adaptor.TicketTypeHandler) {
	r.Route("/api/ticket-types", func(r chi.Router) {
		r.Get("/", ticketTypeHandler.GetTicketTypes)
		r.Post("/", ticketTypeHandler.CreateTicketType)
		r.Get("/{id}", ticketTypeHandler.GetTicketTypeByID)
		r.Patch("/{id}", ticketTypeHandler.UpdateTicketType)
		r.Delete("/{id}", ticketTypeHandler.DeleteTicketType)

		r.Get("/{id}/bookings", ticketTypeHandler.GetTicketTypeBookings)
		r.Get("/{id}/stats", ticketTypeHandler.GetTicketTypeStats)
	})
}
