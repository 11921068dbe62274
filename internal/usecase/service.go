package usecase

import (
	"ticket-booking/internal/data/repository"
	"ticket-booking/pkg/cache"

	"go.uber.org/zap"
)

type Service struct {
	Venue      VenueService
	Event      EventService
	TicketType TicketTypeService
	Booking    BookingService
}

func NewService(repo *repository.Repository, cache *cache.Cache, log *zap.Logger) *Service {
	return &Service{
		Venue:      NewVenueService(repo, log),
		Event:      NewEventService(repo, cache, log),
		TicketType: NewTicketTypeService(repo, log),
		Booking:    NewBookingService(repo, cache, log),
	}
}
