package adaptor

import (
	"encoding/json"
	"net/http"

	"ticket-booking/internal/dto/request"
	"ticket-booking/internal/usecase"
	"ticket-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketTypeHandler struct {
	service usecase.TicketTypeService
	log     *zap.Logger
}

func NewTicketTypeHandler(service usecase.TicketTypeService, log *zap.Logger) *TicketTypeHandler {
	return &TicketTypeHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket_type")),
	}
}

// GetTicketTypes handles GET /api/ticket-types
func (h *TicketTypeHandler) GetTicketTypes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	ticketTypes, err := h.service.GetTicketTypes(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket types")
		return
	}

	utils.ResponseSuccess(w, "success", ticketTypes)
}

// GetTicketTypeByID handles GET /api/ticket-types/{id}
func (h *TicketTypeHandler) GetTicketTypeByID(w http.ResponseWriter, r *http.Request) {
	ticketTypeID := chi.URLParam(r, "id")
	if ticketTypeID == "" {
		utils.ResponseBadRequest(w, "Ticket type ID is required", nil)
		return
	}

	ticketType, err := h.service.GetTicketTypeByID(r.Context(), ticketTypeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket type by ID")
		return
	}

	utils.ResponseSuccess(w, "success", ticketType)
}

// GetTicketTypeBookings handles GET /api/ticket-types/{id}/bookings
func (h *TicketTypeHandler) GetTicketTypeBookings(w http.ResponseWriter, r *http.Request) {
	ticketTypeID := chi.URLParam(r, "id")
	if ticketTypeID == "" {
		utils.ResponseBadRequest(w, "Ticket type ID is required", nil)
		return
	}

	bookings, err := h.service.GetTicketTypeBookings(r.Context(), ticketTypeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket type bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetTicketTypeStats handles GET /api/ticket-types/{id}/stats
func (h *TicketTypeHandler) GetTicketTypeStats(w http.ResponseWriter, r *http.Request) {
	ticketTypeID := chi.URLParam(r, "id")
	if ticketTypeID == "" {
		utils.ResponseBadRequest(w, "Ticket type ID is required", nil)
		return
	}

	stats, err := h.service.GetTicketTypeStats(r.Context(), ticketTypeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket type stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// CreateTicketType handles POST /api/ticket-types
func (h *TicketTypeHandler) CreateTicketType(w http.ResponseWriter, r *http.Request) {
	var req request.TicketTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	ticketType, err := h.service.CreateTicketType(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create ticket type")
		return
	}

	utils.ResponseCreated(w, "success", ticketType)
}

// UpdateTicketType handles PATCH /api/ticket-types/{id}
func (h *TicketTypeHandler) UpdateTicketType(w http.ResponseWriter, r *http.Request) {
	ticketTypeID := chi.URLParam(r, "id")
	if ticketTypeID == "" {
		utils.ResponseBadRequest(w, "Ticket type ID is required", nil)
		return
	}

	var req request.TicketTypeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	ticketType, err := h.service.UpdateTicketType(r.Context(), ticketTypeID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update ticket type")
		return
	}

	utils.ResponseSuccess(w, "success", ticketType)
}

// DeleteTicketType handles DELETE /api/ticket-types/{id}
func (h *TicketTypeHandler) DeleteTicketType(w http.ResponseWriter, r *http.Request) {
	ticketTypeID := chi.URLParam(r, "id")
	if ticketTypeID == "" {
		utils.ResponseBadRequest(w, "Ticket type ID is required", nil)
		return
	}

	if err := h.service.DeleteTicketType(r.Context(), ticketTypeID); err != nil {
		handleServiceError(w, h.log, err, "delete ticket type")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
