package response

import (
	"time"

	"ticket-booking/internal/data/entity"
)

type VenueResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type VenueDetailResponse struct {
	VenueResponse
	Events []EventResponse `json:"events"`
}

func VenueToResponse(venue *entity.Venue) VenueResponse {
	return VenueResponse{
		ID:        venue.ID.String(),
		Name:      venue.Name,
		Capacity:  venue.Capacity,
		Address:   venue.Address,
		CreatedAt: venue.CreatedAt,
	}
}
