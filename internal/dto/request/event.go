package request

type EventRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	EventDate string `json:"event_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	VenueID   string `json:"venue_id" validate:"required,uuid4"`
}

type EventUpdateRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	EventDate *string `json:"event_date,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	VenueID   *string `json:"venue_id,omitempty" validate:"omitempty,uuid4"`
}
