package wire

import (
	"ticket-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireVenue(r chi.Router, venueHandler *adaptor.VenueHandler) {
	r.Route("/api/venues", func(r chi.Router) {
		r.Get("/", venueHandler.GetVenues)
		r.Post("/", venueHandler.CreateVenue)
		r.Get("/{id}", venueHandler.GetVenueByID)
		r.Patch("/{id}", venueHandler.UpdateVenue)
		r.Delete("/{id}", venueHandler.DeleteVenue)

		// GET /api/venues/{id}/events - venue with its events
		r.Get("/{id}/events", venueHandler.GetVenueEvents)
	})
}
