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

type EventHandler struct {
	service usecase.EventService
	log     *zap.Logger
}

func NewEventHandler(service usecase.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// GetEvents handles GET /api/events
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	var venueFilter *string
	if venueID := query.Get("venue_id"); venueID != "" {
		venueFilter = &venueID
	}
	upcoming := query.Get("upcoming") == "true"

	events, err := h.service.GetEvents(r.Context(), req, venueFilter, upcoming)
	if err != nil {
		handleServiceError(w, h.log, err, "get events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetEventByID handles GET /api/events/{id}
func (h *EventHandler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	event, err := h.service.GetEventByID(r.Context(), eventID)
	if err != nil {
		handleServiceError(w, h.log, err, "get event by ID")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// GetEventBookings handles GET /api/events/{id}/bookings
func (h *EventHandler) GetEventBookings(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	bookings, err := h.service.GetEventBookings(r.Context(), eventID)
	if err != nil {
		handleServiceError(w, h.log, err, "get event bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetEventStats handles GET /api/events/{id}/stats
func (h *EventHandler) GetEventStats(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	stats, err := h.service.GetEventStats(r.Context(), eventID)
	if err != nil {
		handleServiceError(w, h.log, err, "get event stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req request.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.service.CreateEvent(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create event")
		return
	}

	utils.ResponseCreated(w, "success", event)
}

// UpdateEvent handles PATCH /api/events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	var req request.EventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.service.UpdateEvent(r.Context(), eventID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// DeleteEvent handles DELETE /api/events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	if err := h.service.DeleteEvent(r.Context(), eventID); err != nil {
		handleServiceError(w, h.log, err, "delete event")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
