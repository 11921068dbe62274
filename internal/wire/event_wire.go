package wire

import (
	"ticket-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireEvent(r chi.Router, eventHandler *adaptor.EventHandler) {
	r.Route("/api/events", func(r chi.Router) {
		// GET /api/events - supports ?venue_id= and ?upcoming=true filters
		r.Get("/", eventHandler.GetEvents)
		r.Post("/", eventHandler.CreateEvent)
		r.Get("/{id}", eventHandler.GetEventByID)
		r.Patch("/{id}", eventHandler.UpdateEvent)
		r.Delete("/{id}", eventHandler.DeleteEvent)

		r.Get("/{id}/bookings", eventHandler.GetEventBookings)
		r.Get("/{id}/stats", eventHandler.GetEventStats)
	})
}
