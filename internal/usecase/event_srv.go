package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/dto/request"
	"ticket-booking/internal/dto/response"
	"ticket-booking/pkg/cache"
	"ticket-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	GetEvents(ctx context.Context, req *request.PaginatedRequest, venueID *string, upcoming bool) (*response.PaginatedResponse[response.EventResponse], error)
	GetEventByID(ctx context.Context, eventID string) (*response.EventDetailResponse, error)
	GetEventBookings(ctx context.Context, eventID string) ([]response.BookingResponse, error)
	GetEventStats(ctx context.Context, eventID string) (*response.EventStatsResponse, error)

	CreateEvent(ctx context.Context, req *request.EventRequest) (*response.EventResponse, error)
	UpdateEvent(ctx context.Context, eventID string, req *request.EventUpdateRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

type eventService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewEventService(repo *repository.Repository, cache *cache.Cache, log *zap.Logger) EventService {
	return &eventService{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "event")),
	}
}

func (s *eventService) GetEvents(ctx context.Context, req *request.PaginatedRequest, venueID *string, upcoming bool) (*response.PaginatedResponse[response.EventResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	filter := repository.EventFilter{}
	if venueID != nil && *venueID != "" {
		id, err := uuid.Parse(*venueID)
		if err != nil {
			return nil, fmt.Errorf("invalid venue ID format %s: %w", *venueID, entity.ErrInvalidID)
		}
		filter.VenueID = &id
	}
	if upcoming {
		now := time.Now()
		filter.UpcomingAfter = &now
	}

	events, err := s.repo.Event.FindAll(ctx, limit, offset, filter)
	if err != nil {
		s.log.Error("Failed to get events from repository",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get events: %w", err)
	}

	total, err := s.repo.Event.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count events", zap.Error(err))
		return nil, fmt.Errorf("count events: %w", err)
	}

	eventResponses := make([]response.EventResponse, len(events))
	for i, event := range events {
		eventResponses[i] = response.EventToResponse(event)
	}

	return response.NewPaginatedResponse(eventResponses, req.Page, req.PerPage, total), nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*response.EventDetailResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, entity.ErrInvalidID)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, entity.ErrEventNotFound)
	}

	venue, err := s.repo.Venue.FindByID(ctx, event.VenueID)
	if err != nil || venue == nil {
		return nil, fmt.Errorf("venue for event %s: %w", eventID, entity.ErrVenueNotFound)
	}

	return &response.EventDetailResponse{
		EventResponse: response.EventToResponse(event),
		Venue:         response.VenueToResponse(venue),
	}, nil
}

func (s *eventService) GetEventBookings(ctx context.Context, eventID string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, entity.ErrInvalidID)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, entity.ErrEventNotFound)
	}

	bookings, err := s.repo.Booking.FindByEventID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bookings for event %s: %w", eventID, err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return bookingResponses, nil
}

func (s *eventService) GetEventStats(ctx context.Context, eventID string) (*response.EventStatsResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, entity.ErrInvalidID)
	}

	// Serve from cache when fresh; booking writes invalidate the key.
	var cached response.EventStatsResponse
	if s.cache.Get(ctx, cache.EventStatsKey(eventID), &cached) {
		return &cached, nil
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, entity.ErrEventNotFound)
	}

	venue, err := s.repo.Venue.FindByID(ctx, event.VenueID)
	if err != nil || venue == nil {
		return nil, fmt.Errorf("venue for event %s: %w", eventID, entity.ErrVenueNotFound)
	}

	bookings, err := s.repo.Booking.FindByEventID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bookings for event %s: %w", eventID, err)
	}

	stats := &response.EventStatsResponse{
		EventID:       eventID,
		EventName:     event.Name,
		VenueCapacity: venue.Capacity,
	}

	for _, booking := range bookings {
		stats.TotalBookings++
		if booking.Status == entity.BookingStatusConfirmed {
			stats.ConfirmedBookings++
		}
		if booking.CountsTowardCapacity() {
			stats.TotalTicketsSold += booking.Quantity
			stats.TotalRevenue += booking.TotalPrice
		}
	}

	stats.AvailableCapacity = venue.Capacity - stats.TotalTicketsSold
	if venue.Capacity > 0 {
		stats.CapacityUtilization = float64(stats.TotalTicketsSold) / float64(venue.Capacity) * 100
	}

	s.cache.Set(ctx, cache.EventStatsKey(eventID), stats)

	return stats, nil
}

func (s *eventService) CreateEvent(ctx context.Context, req *request.EventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Fields: errs}
	}

	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID format %s: %w", req.VenueID, entity.ErrInvalidID)
	}

	eventDate, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("invalid event date format %s: %w", req.EventDate, entity.ErrInvalidID)
	}

	// Verify venue exists
	venue, err := s.repo.Venue.FindByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("get venue %s: %w", req.VenueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", req.VenueID, entity.ErrVenueNotFound)
	}

	now := time.Now()
	event := &entity.Event{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      req.Name,
		EventDate: eventDate,
		VenueID:   venueID,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("name", event.Name),
		zap.String("venue_id", venueID.String()),
	)

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, req *request.EventUpdateRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update event validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Fields: errs}
	}

	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, entity.ErrInvalidID)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, entity.ErrEventNotFound)
	}

	// Apply patch field by field
	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse(time.RFC3339, *req.EventDate)
		if err != nil {
			return nil, fmt.Errorf("invalid event date format %s: %w", *req.EventDate, entity.ErrInvalidID)
		}
		event.EventDate = eventDate
	}
	if req.VenueID != nil {
		venueID, err := uuid.Parse(*req.VenueID)
		if err != nil {
			return nil, fmt.Errorf("invalid venue ID format %s: %w", *req.VenueID, entity.ErrInvalidID)
		}
		if venueID != event.VenueID {
			venue, err := s.repo.Venue.FindByID(ctx, venueID)
			if err != nil {
				return nil, fmt.Errorf("get venue %s: %w", *req.VenueID, err)
			}
			if venue == nil {
				return nil, fmt.Errorf("venue %s: %w", *req.VenueID, entity.ErrVenueNotFound)
			}
			event.VenueID = venueID
		}
	}
	event.UpdatedAt = time.Now()

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return nil, fmt.Errorf("update event %s: %w", eventID, err)
	}

	s.cache.Del(ctx, cache.EventStatsKey(eventID))
	s.log.Info("Event updated", zap.String("event_id", eventID))

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID format %s: %w", eventID, entity.ErrInvalidID)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get event %s: %w", eventID, err)
	}
	if event == nil {
		return fmt.Errorf("event %s: %w", eventID, entity.ErrEventNotFound)
	}

	// Deleting an event removes its bookings with it, atomically.
	var removed int64
	err = s.repo.Tx.WithTx(ctx, func(txCtx context.Context) error {
		removed, err = s.repo.Booking.DeleteByEventID(txCtx, id)
		if err != nil {
			return err
		}
		return s.repo.Event.Delete(txCtx, id)
	})
	if err != nil {
		s.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}

	s.cache.Del(ctx, cache.EventStatsKey(eventID))
	s.log.Info("Event deleted",
		zap.String("event_id", eventID),
		zap.Int64("bookings_removed", removed),
	)

	return nil
}
