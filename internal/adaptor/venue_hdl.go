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

type VenueHandler struct {
	service usecase.VenueService
	log     *zap.Logger
}

func NewVenueHandler(service usecase.VenueService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log.With(zap.String("handler", "venue")),
	}
}

// GetVenues handles GET /api/venues
func (h *VenueHandler) GetVenues(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	venues, err := h.service.GetVenues(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get venues")
		return
	}

	utils.ResponseSuccess(w, "success", venues)
}

// GetVenueByID handles GET /api/venues/{id}
func (h *VenueHandler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	venue, err := h.service.GetVenueByID(r.Context(), venueID)
	if err != nil {
		handleServiceError(w, h.log, err, "get venue by ID")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// GetVenueEvents handles GET /api/venues/{id}/events
func (h *VenueHandler) GetVenueEvents(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	venue, err := h.service.GetVenueWithEvents(r.Context(), venueID)
	if err != nil {
		handleServiceError(w, h.log, err, "get venue events")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// CreateVenue handles POST /api/venues
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req request.VenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	venue, err := h.service.CreateVenue(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create venue")
		return
	}

	utils.ResponseCreated(w, "success", venue)
}

// UpdateVenue handles PATCH /api/venues/{id}
func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	var req request.VenueUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	venue, err := h.service.UpdateVenue(r.Context(), venueID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update venue")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// DeleteVenue handles DELETE /api/venues/{id}
func (h *VenueHandler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	if err := h.service.DeleteVenue(r.Context(), venueID); err != nil {
		handleServiceError(w, h.log, err, "delete venue")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
