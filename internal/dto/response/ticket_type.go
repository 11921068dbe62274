package response

import (
	"time"

	"ticket-booking/internal/data/entity"
)

type TicketTypeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type TicketTypeStatsResponse struct {
	TicketTypeID             string  `json:"ticket_type_id"`
	TicketTypeName           string  `json:"ticket_type_name"`
	Price                    float64 `json:"price"`
	TotalBookings            int     `json:"total_bookings"`
	ConfirmedBookings        int     `json:"confirmed_bookings"`
	TotalTicketsSold         int     `json:"total_tickets_sold"`
	TotalRevenue             float64 `json:"total_revenue"`
	AverageTicketsPerBooking float64 `json:"average_tickets_per_booking"`
}

func TicketTypeToResponse(ticketType *entity.TicketType) TicketTypeResponse {
	return TicketTypeResponse{
		ID:        ticketType.ID.String(),
		Name:      ticketType.Name,
		Price:     ticketType.Price,
		CreatedAt: ticketType.CreatedAt,
	}
}
