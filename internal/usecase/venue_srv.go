package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/dto/request"
	"ticket-booking/internal/dto/response"
	"ticket-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VenueService interface {
	GetVenues(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VenueResponse], error)
	GetVenueByID(ctx context.Context, venueID string) (*response.VenueResponse, error)
	GetVenueWithEvents(ctx context.Context, venueID string) (*response.VenueDetailResponse, error)

	CreateVenue(ctx context.Context, req *request.VenueRequest) (*response.VenueResponse, error)
	UpdateVenue(ctx context.Context, venueID string, req *request.VenueUpdateRequest) (*response.VenueResponse, error)
	DeleteVenue(ctx context.Context, venueID string) error
}

type venueService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVenueService(repo *repository.Repository, log *zap.Logger) VenueService {
	return &venueService{
		repo: repo,
		log:  log.With(zap.String("service", "venue")),
	}
}

func (s *venueService) GetVenues(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VenueResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	venues, err := s.repo.Venue.FindAll(ctx, limit, offset)
	if err != nil {
		s.log.Error("Failed to get venues from repository",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get venues: %w", err)
	}

	total, err := s.repo.Venue.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count venues", zap.Error(err))
		return nil, fmt.Errorf("count venues: %w", err)
	}

	venueResponses := make([]response.VenueResponse, len(venues))
	for i, venue := range venues {
		venueResponses[i] = response.VenueToResponse(venue)
	}

	return response.NewPaginatedResponse(venueResponses, req.Page, req.PerPage, total), nil
}

func (s *venueService) GetVenueByID(ctx context.Context, venueID string) (*response.VenueResponse, error) {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID format %s: %w", venueID, entity.ErrInvalidID)
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue %s: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, entity.ErrVenueNotFound)
	}

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) GetVenueWithEvents(ctx context.Context, venueID string) (*response.VenueDetailResponse, error) {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID format %s: %w", venueID, entity.ErrInvalidID)
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue %s: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, entity.ErrVenueNotFound)
	}

	events, err := s.repo.Event.FindAll(ctx, 100, 0, repository.EventFilter{VenueID: &venue.ID})
	if err != nil {
		s.log.Error("Failed to get events for venue",
			zap.Error(err),
			zap.String("venue_id", venueID),
		)
		return nil, fmt.Errorf("get events for venue %s: %w", venueID, err)
	}

	eventResponses := make([]response.EventResponse, len(events))
	for i, event := range events {
		eventResponses[i] = response.EventToResponse(event)
	}

	return &response.VenueDetailResponse{
		VenueResponse: response.VenueToResponse(venue),
		Events:        eventResponses,
	}, nil
}

func (s *venueService) CreateVenue(ctx context.Context, req *request.VenueRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create venue validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Fields: errs}
	}

	now := time.Now()
	venue := &entity.Venue{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Capacity: req.Capacity,
		Address:  req.Address,
	}

	if err := s.repo.Venue.Create(ctx, venue); err != nil {
		s.log.Error("Failed to create venue",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create venue: %w", err)
	}

	s.log.Info("Venue created",
		zap.String("venue_id", venue.ID.String()),
		zap.String("name", venue.Name),
		zap.Int("capacity", venue.Capacity),
	)

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, venueID string, req *request.VenueUpdateRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update venue validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Fields: errs}
	}

	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID format %s: %w", venueID, entity.ErrInvalidID)
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue %s: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, entity.ErrVenueNotFound)
	}

	// Apply patch field by field
	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Capacity != nil {
		venue.Capacity = *req.Capacity
	}
	if req.Address != nil {
		venue.Address = *req.Address
	}
	venue.UpdatedAt = time.Now()

	if err := s.repo.Venue.Update(ctx, venue); err != nil {
		s.log.Error("Failed to update venue",
			zap.Error(err),
			zap.String("venue_id", venueID),
		)
		return nil, fmt.Errorf("update venue %s: %w", venueID, err)
	}

	s.log.Info("Venue updated", zap.String("venue_id", venueID))

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) DeleteVenue(ctx context.Context, venueID string) error {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return fmt.Errorf("invalid venue ID format %s: %w", venueID, entity.ErrInvalidID)
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get venue %s: %w", venueID, err)
	}
	if venue == nil {
		return fmt.Errorf("venue %s: %w", venueID, entity.ErrVenueNotFound)
	}

	eventCount, err := s.repo.Event.CountByVenueID(ctx, id)
	if err != nil {
		return fmt.Errorf("count events for venue %s: %w", venueID, err)
	}
	if eventCount > 0 {
		return fmt.Errorf("venue %s has %d events: %w", venueID, eventCount, entity.ErrVenueInUse)
	}

	if err := s.repo.Venue.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete venue",
			zap.Error(err),
			zap.String("venue_id", venueID),
		)
		return fmt.Errorf("delete venue %s: %w", venueID, err)
	}

	return nil
}
