package response

import (
	"time"

	"ticket-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email"`
	Quantity      int                  `json:"quantity"`
	EventID       string               `json:"event_id"`
	TicketTypeID  string               `json:"ticket_type_id"`
	TotalPrice    float64              `json:"total_price"`
	Status        entity.BookingStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	Event      EventResponse      `json:"event"`
	TicketType TicketTypeResponse `json:"ticket_type"`
}

type CustomerBookingsResponse struct {
	CustomerEmail string            `json:"customer_email"`
	TotalBookings int               `json:"total_bookings"`
	Bookings      []BookingResponse `json:"bookings"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		Quantity:      booking.Quantity,
		EventID:       booking.EventID.String(),
		TicketTypeID:  booking.TicketTypeID.String(),
		TotalPrice:    booking.TotalPrice,
		Status:        booking.Status,
		CreatedAt:     booking.CreatedAt,
	}
}
