package request

type VenueRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
	Address  string `json:"address" validate:"required,min=1,max=300"`
}

type VenueUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Address  *string `json:"address,omitempty" validate:"omitempty,min=1,max=300"`
}
