package adaptor

import (
	"errors"
	"net/http"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/usecase"
	"ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Venue      *VenueHandler
	Event      *EventHandler
	TicketType *TicketTypeHandler
	Booking    *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Venue:      NewVenueHandler(service.Venue, log),
		Event:      NewEventHandler(service.Event, log),
		TicketType: NewTicketTypeHandler(service.TicketType, log),
		Booking:    NewBookingHandler(service.Booking, log),
	}
}

// handleServiceError maps service errors to HTTP responses by tag, so the
// mapping survives changes to error message wording.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var capacityErr *entity.CapacityError
	var validationErr *entity.ValidationError

	switch {
	case errors.As(err, &capacityErr):
		log.Warn(operation+" failed - capacity exceeded",
			zap.Error(err),
			zap.Int("available", capacityErr.Available),
			zap.Int("requested", capacityErr.Requested))
		utils.ResponseConflict(w, capacityErr.Error(), map[string]int{
			"available": capacityErr.Available,
			"requested": capacityErr.Requested,
		})

	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, entity.ErrVenueNotFound),
		errors.Is(err, entity.ErrEventNotFound),
		errors.Is(err, entity.ErrTicketTypeNotFound),
		errors.Is(err, entity.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrInvalidID),
		errors.Is(err, entity.ErrInvalidQuantity),
		errors.Is(err, entity.ErrBookingCancelled):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, entity.ErrTicketTypeNameTaken),
		errors.Is(err, entity.ErrTicketTypeInUse),
		errors.Is(err, entity.ErrVenueInUse):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
