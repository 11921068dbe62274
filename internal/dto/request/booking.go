package request

// CreateBookingRequest deliberately leaves Quantity untagged: the reservation
// checks it after the event and ticket type lookups, so a missing event wins
// over a bad quantity.
type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,min=1,max=200"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	Quantity      int    `json:"quantity"`
	EventID       string `json:"event_id" validate:"required,uuid4"`
	TicketTypeID  string `json:"ticket_type_id" validate:"required,uuid4"`
}

type BookingUpdateRequest struct {
	CustomerName  *string `json:"customer_name,omitempty" validate:"omitempty,min=1,max=200"`
	CustomerEmail *string `json:"customer_email,omitempty" validate:"omitempty,email"`
	Quantity      *int    `json:"quantity,omitempty"`
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}
