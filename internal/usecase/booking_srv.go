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

type BookingService interface {
	GetBookings(ctx context.Context, req *request.PaginatedRequest, eventID, customerEmail, status *string) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error)
	GetCustomerBookings(ctx context.Context, email string) (*response.CustomerBookingsResponse, error)

	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.BookingUpdateRequest) (*response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, cache *cache.Cache, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBookings(ctx context.Context, req *request.PaginatedRequest, eventID, customerEmail, status *string) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	filter := repository.BookingFilter{}
	if eventID != nil && *eventID != "" {
		id, err := uuid.Parse(*eventID)
		if err != nil {
			return nil, fmt.Errorf("invalid event ID format %s: %w", *eventID, entity.ErrInvalidID)
		}
		filter.EventID = &id
	}
	if customerEmail != nil && *customerEmail != "" {
		filter.CustomerEmail = customerEmail
	}
	if status != nil && *status != "" {
		bookingStatus := entity.BookingStatus(*status)
		filter.Status = &bookingStatus
	}

	bookings, err := s.repo.Booking.FindAll(ctx, limit, offset, filter)
	if err != nil {
		s.log.Error("Failed to get bookings from repository",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.Event.FindByID(ctx, booking.EventID)
	if err != nil || event == nil {
		return nil, fmt.Errorf("event for booking %s: %w", bookingID, entity.ErrEventNotFound)
	}

	ticketType, err := s.repo.TicketType.FindByID(ctx, booking.TicketTypeID)
	if err != nil || ticketType == nil {
		return nil, fmt.Errorf("ticket type for booking %s: %w", bookingID, entity.ErrTicketTypeNotFound)
	}

	return &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking),
		Event:           response.EventToResponse(event),
		TicketType:      response.TicketTypeToResponse(ticketType),
	}, nil
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, email string) (*response.CustomerBookingsResponse, error) {
	bookings, err := s.repo.Booking.FindByCustomerEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get bookings for customer %s: %w", email, err)
	}
	if len(bookings) == 0 {
		return nil, fmt.Errorf("no bookings for customer %s: %w", email, entity.ErrBookingNotFound)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return &response.CustomerBookingsResponse{
		CustomerEmail: email,
		TotalBookings: len(bookings),
		Bookings:      bookingResponses,
	}, nil
}

// CreateBooking reserves capacity for an event. The event row is locked for
// the duration of the transaction so concurrent reservations against the same
// event serialize and cannot oversell the venue.
func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Fields: errs}
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", req.EventID, entity.ErrInvalidID)
	}

	ticketTypeID, err := uuid.Parse(req.TicketTypeID)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket type ID format %s: %w", req.TicketTypeID, entity.ErrInvalidID)
	}

	var booking *entity.Booking
	err = s.repo.Tx.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.Event.FindByIDForUpdate(txCtx, eventID)
		if err != nil {
			return fmt.Errorf("get event %s: %w", req.EventID, err)
		}
		if event == nil {
			return fmt.Errorf("event %s: %w", req.EventID, entity.ErrEventNotFound)
		}

		ticketType, err := s.repo.TicketType.FindByID(txCtx, ticketTypeID)
		if err != nil {
			return fmt.Errorf("get ticket type %s: %w", req.TicketTypeID, err)
		}
		if ticketType == nil {
			return fmt.Errorf("ticket type %s: %w", req.TicketTypeID, entity.ErrTicketTypeNotFound)
		}

		if req.Quantity <= 0 {
			return fmt.Errorf("quantity %d: %w", req.Quantity, entity.ErrInvalidQuantity)
		}

		venue, err := s.repo.Venue.FindByID(txCtx, event.VenueID)
		if err != nil || venue == nil {
			return fmt.Errorf("venue for event %s: %w", req.EventID, entity.ErrVenueNotFound)
		}

		reserved, err := s.repo.Booking.SumActiveQuantityByEventID(txCtx, eventID, nil)
		if err != nil {
			return fmt.Errorf("sum reserved capacity for event %s: %w", req.EventID, err)
		}

		if reserved+req.Quantity > venue.Capacity {
			return &entity.CapacityError{
				Available: venue.Capacity - reserved,
				Requested: req.Quantity,
			}
		}

		now := time.Now()
		booking = &entity.Booking{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			Quantity:      req.Quantity,
			EventID:       eventID,
			TicketTypeID:  ticketTypeID,
			TotalPrice:    ticketType.Price * float64(req.Quantity),
			Status:        entity.BookingStatusPending,
		}

		return s.repo.Booking.Create(txCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Del(ctx, cache.EventStatsKey(req.EventID))
	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("event_id", req.EventID),
		zap.Int("quantity", booking.Quantity),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.BookingUpdateRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Fields: errs}
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, entity.ErrInvalidID)
	}

	var booking *entity.Booking
	err = s.repo.Tx.WithTx(ctx, func(txCtx context.Context) error {
		booking, err = s.repo.Booking.FindByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get booking %s: %w", bookingID, err)
		}
		if booking == nil {
			return fmt.Errorf("booking %s: %w", bookingID, entity.ErrBookingNotFound)
		}

		// Apply patch field by field
		if req.CustomerName != nil {
			booking.CustomerName = *req.CustomerName
		}
		if req.CustomerEmail != nil {
			booking.CustomerEmail = *req.CustomerEmail
		}
		if req.Status != nil {
			newStatus := entity.BookingStatus(*req.Status)
			if booking.Status == entity.BookingStatusCancelled && newStatus != entity.BookingStatusCancelled {
				return fmt.Errorf("booking %s: %w", bookingID, entity.ErrBookingCancelled)
			}
			booking.Status = newStatus
		}
		if req.Quantity != nil && *req.Quantity != booking.Quantity {
			if *req.Quantity <= 0 {
				return fmt.Errorf("quantity %d: %w", *req.Quantity, entity.ErrInvalidQuantity)
			}

			event, err := s.repo.Event.FindByIDForUpdate(txCtx, booking.EventID)
			if err != nil || event == nil {
				return fmt.Errorf("event for booking %s: %w", bookingID, entity.ErrEventNotFound)
			}

			venue, err := s.repo.Venue.FindByID(txCtx, event.VenueID)
			if err != nil || venue == nil {
				return fmt.Errorf("venue for booking %s: %w", bookingID, entity.ErrVenueNotFound)
			}

			// Re-check capacity without counting this booking's own tickets
			reserved, err := s.repo.Booking.SumActiveQuantityByEventID(txCtx, booking.EventID, &booking.ID)
			if err != nil {
				return fmt.Errorf("sum reserved capacity for event %s: %w", booking.EventID.String(), err)
			}

			if booking.CountsTowardCapacity() && reserved+*req.Quantity > venue.Capacity {
				return &entity.CapacityError{
					Available: venue.Capacity - reserved,
					Requested: *req.Quantity,
				}
			}

			ticketType, err := s.repo.TicketType.FindByID(txCtx, booking.TicketTypeID)
			if err != nil || ticketType == nil {
				return fmt.Errorf("ticket type for booking %s: %w", bookingID, entity.ErrTicketTypeNotFound)
			}

			booking.Quantity = *req.Quantity
			booking.TotalPrice = ticketType.Price * float64(*req.Quantity)
		}
		booking.UpdatedAt = time.Now()

		return s.repo.Booking.Update(txCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Del(ctx, cache.EventStatsKey(booking.EventID.String()))
	s.log.Info("Booking updated", zap.String("booking_id", bookingID))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking status validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Fields: errs}
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	newStatus := entity.BookingStatus(req.Status)

	// Cancelled is terminal
	if booking.Status == entity.BookingStatusCancelled && newStatus != entity.BookingStatusCancelled {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrBookingCancelled)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, newStatus); err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("status", req.Status),
		)
		return nil, err
	}

	booking.Status = newStatus
	booking.UpdatedAt = time.Now()

	s.cache.Del(ctx, cache.EventStatsKey(booking.EventID.String()))
	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("status", req.Status),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
		s.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("delete booking %s: %w", bookingID, err)
	}

	s.cache.Del(ctx, cache.EventStatsKey(booking.EventID.String()))
	return nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, entity.ErrInvalidID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrBookingNotFound)
	}

	return booking, nil
}
