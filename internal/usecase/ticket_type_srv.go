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

type TicketTypeService interface {
	GetTicketTypes(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketTypeResponse], error)
	GetTicketTypeByID(ctx context.Context, ticketTypeID string) (*response.TicketTypeResponse, error)
	GetTicketTypeBookings(ctx context.Context, ticketTypeID string) ([]response.BookingResponse, error)
	GetTicketTypeStats(ctx context.Context, ticketTypeID string) (*response.TicketTypeStatsResponse, error)

	CreateTicketType(ctx context.Context, req *request.TicketTypeRequest) (*response.TicketTypeResponse, error)
	UpdateTicketType(ctx context.Context, ticketTypeID string, req *request.TicketTypeUpdateRequest) (*response.TicketTypeResponse, error)
	DeleteTicketType(ctx context.Context, ticketTypeID string) error
}

type ticketTypeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketTypeService(repo *repository.Repository, log *zap.Logger) TicketTypeService {
	return &ticketTypeService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket_type")),
	}
}

func (s *ticketTypeService) GetTicketTypes(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketTypeResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	ticketTypes, err := s.repo.TicketType.FindAll(ctx, limit, offset)
	if err != nil {
		s.log.Error("Failed to get ticket types from repository",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get ticket types: %w", err)
	}

	total, err := s.repo.TicketType.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count ticket types", zap.Error(err))
		return nil, fmt.Errorf("count ticket types: %w", err)
	}

	ticketTypeResponses := make([]response.TicketTypeResponse, len(ticketTypes))
	for i, ticketType := range ticketTypes {
		ticketTypeResponses[i] = response.TicketTypeToResponse(ticketType)
	}

	return response.NewPaginatedResponse(ticketTypeResponses, req.Page, req.PerPage, total), nil
}

func (s *ticketTypeService) GetTicketTypeByID(ctx context.Context, ticketTypeID string) (*response.TicketTypeResponse, error) {
	ticketType, err := s.findTicketType(ctx, ticketTypeID)
	if err != nil {
		return nil, err
	}

	resp := response.TicketTypeToResponse(ticketType)
	return &resp, nil
}

func (s *ticketTypeService) GetTicketTypeBookings(ctx context.Context, ticketTypeID string) ([]response.BookingResponse, error) {
	ticketType, err := s.findTicketType(ctx, ticketTypeID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByTicketTypeID(ctx, ticketType.ID)
	if err != nil {
		return nil, fmt.Errorf("get bookings for ticket type %s: %w", ticketTypeID, err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return bookingResponses, nil
}

func (s *ticketTypeService) GetTicketTypeStats(ctx context.Context, ticketTypeID string) (*response.TicketTypeStatsResponse, error) {
	ticketType, err := s.findTicketType(ctx, ticketTypeID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByTicketTypeID(ctx, ticketType.ID)
	if err != nil {
		return nil, fmt.Errorf("get bookings for ticket type %s: %w", ticketTypeID, err)
	}

	stats := &response.TicketTypeStatsResponse{
		TicketTypeID:   ticketTypeID,
		TicketTypeName: ticketType.Name,
		Price:          ticketType.Price,
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

	if stats.TotalBookings > 0 {
		stats.AverageTicketsPerBooking = float64(stats.TotalTicketsSold) / float64(stats.TotalBookings)
	}

	return stats, nil
}

func (s *ticketTypeService) CreateTicketType(ctx context.Context, req *request.TicketTypeRequest) (*response.TicketTypeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create ticket type validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Fields: errs}
	}

	// Names are unique across ticket types
	existing, err := s.repo.TicketType.FindByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check ticket type name %s: %w", req.Name, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("ticket type %s: %w", req.Name, entity.ErrTicketTypeNameTaken)
	}

	now := time.Now()
	ticketType := &entity.TicketType{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:  req.Name,
		Price: req.Price,
	}

	if err := s.repo.TicketType.Create(ctx, ticketType); err != nil {
		s.log.Error("Failed to create ticket type",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create ticket type: %w", err)
	}

	s.log.Info("Ticket type created",
		zap.String("ticket_type_id", ticketType.ID.String()),
		zap.String("name", ticketType.Name),
		zap.Float64("price", ticketType.Price),
	)

	resp := response.TicketTypeToResponse(ticketType)
	return &resp, nil
}

func (s *ticketTypeService) UpdateTicketType(ctx context.Context, ticketTypeID string, req *request.TicketTypeUpdateRequest) (*response.TicketTypeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update ticket type validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Fields: errs}
	}

	ticketType, err := s.findTicketType(ctx, ticketTypeID)
	if err != nil {
		return nil, err
	}

	// Renames must not collide with another ticket type
	if req.Name != nil && *req.Name != ticketType.Name {
		existing, err := s.repo.TicketType.FindByName(ctx, *req.Name)
		if err != nil {
			return nil, fmt.Errorf("check ticket type name %s: %w", *req.Name, err)
		}
		if existing != nil && existing.ID != ticketType.ID {
			return nil, fmt.Errorf("ticket type %s: %w", *req.Name, entity.ErrTicketTypeNameTaken)
		}
		ticketType.Name = *req.Name
	}
	if req.Price != nil {
		ticketType.Price = *req.Price
	}
	ticketType.UpdatedAt = time.Now()

	if err := s.repo.TicketType.Update(ctx, ticketType); err != nil {
		s.log.Error("Failed to update ticket type",
			zap.Error(err),
			zap.String("ticket_type_id", ticketTypeID),
		)
		return nil, fmt.Errorf("update ticket type %s: %w", ticketTypeID, err)
	}

	s.log.Info("Ticket type updated", zap.String("ticket_type_id", ticketTypeID))

	resp := response.TicketTypeToResponse(ticketType)
	return &resp, nil
}

func (s *ticketTypeService) DeleteTicketType(ctx context.Context, ticketTypeID string) error {
	ticketType, err := s.findTicketType(ctx, ticketTypeID)
	if err != nil {
		return err
	}

	bookingCount, err := s.repo.Booking.CountByTicketTypeID(ctx, ticketType.ID)
	if err != nil {
		return fmt.Errorf("count bookings for ticket type %s: %w", ticketTypeID, err)
	}
	if bookingCount > 0 {
		return fmt.Errorf("ticket type %s has %d bookings: %w", ticketTypeID, bookingCount, entity.ErrTicketTypeInUse)
	}

	if err := s.repo.TicketType.Delete(ctx, ticketType.ID); err != nil {
		s.log.Error("Failed to delete ticket type",
			zap.Error(err),
			zap.String("ticket_type_id", ticketTypeID),
		)
		return fmt.Errorf("delete ticket type %s: %w", ticketTypeID, err)
	}

	return nil
}

func (s *ticketTypeService) findTicketType(ctx context.Context, ticketTypeID string) (*entity.TicketType, error) {
	id, err := uuid.Parse(ticketTypeID)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket type ID format %s: %w", ticketTypeID, entity.ErrInvalidID)
	}

	ticketType, err := s.repo.TicketType.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ticket type %s: %w", ticketTypeID, err)
	}
	if ticketType == nil {
		return nil, fmt.Errorf("ticket type %s: %w", ticketTypeID, entity.ErrTicketTypeNotFound)
	}

	return ticketType, nil
}
