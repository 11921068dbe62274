package request

type TicketTypeRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=100"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

type TicketTypeUpdateRequest struct {
	Name  *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}
