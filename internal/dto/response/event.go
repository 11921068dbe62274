package response

import (
	"time"

	"ticket-booking/internal/data/entity"
)

type EventResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	EventDate time.Time `json:"event_date"`
	VenueID   string    `json:"venue_id"`
	CreatedAt time.Time `json:"created_at"`
}

type EventDetailResponse struct {
	EventResponse
	Venue VenueResponse `json:"venue"`
}

// EventStatsResponse aggregates an event's bookings. Tickets sold and revenue
// count non-cancelled bookings only; available is capacity minus tickets sold.
type EventStatsResponse struct {
	EventID             string  `json:"event_id"`
	EventName           string  `json:"event_name"`
	TotalBookings       int     `json:"total_bookings"`
	ConfirmedBookings   int     `json:"confirmed_bookings"`
	TotalTicketsSold    int     `json:"total_tickets_sold"`
	TotalRevenue        float64 `json:"total_revenue"`
	VenueCapacity       int     `json:"venue_capacity"`
	AvailableCapacity   int     `json:"available_capacity"`
	CapacityUtilization float64 `json:"capacity_utilization"`
}

func EventToResponse(event *entity.Event) EventResponse {
	return EventResponse{
		ID:        event.ID.String(),
		Name:      event.Name,
		EventDate: event.EventDate,
		VenueID:   event.VenueID.String(),
		CreatedAt: event.CreatedAt,
	}
}
