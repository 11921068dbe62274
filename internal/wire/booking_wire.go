package wire

import (
	"ticket-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// GET /api/bookings - supports ?event_id=, ?customer_email= and ?status= filters
		r.Get("/", bookingHandler.GetBookings)
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings/customer/{email} - all bookings for a customer
		r.Get("/customer/{email}", bookingHandler.GetCustomerBookings)

		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Patch("/{id}", bookingHandler.UpdateBooking)
		r.Delete("/{id}", bookingHandler.DeleteBooking)

		// PATCH /api/bookings/{id}/status - status transitions only
		r.Patch("/{id}/status", bookingHandler.UpdateBookingStatus)
	})
}
