package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/dto/request"
	"ticket-booking/internal/dto/response"
	"ticket-booking/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEventStats(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("City Hall", 100)
	event := store.addEvent("Jazz Night", venue.ID)
	ticketType := store.addTicketType("VIP", 25.0)

	store.addBooking(event.ID, ticketType.ID, 10, entity.BookingStatusConfirmed)
	store.addBooking(event.ID, ticketType.ID, 5, entity.BookingStatusPending)
	store.addBooking(event.ID, ticketType.ID, 20, entity.BookingStatusCancelled)

	stats, err := service.Event.GetEventStats(context.Background(), event.ID.String())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalBookings)
	assert.Equal(t, 1, stats.ConfirmedBookings)
	assert.Equal(t, 15, stats.TotalTicketsSold)
	assert.Equal(t, 150.0, stats.TotalRevenue)
	assert.Equal(t, 100, stats.VenueCapacity)
	assert.Equal(t, 85, stats.AvailableCapacity)
	assert.InDelta(t, 15.0, stats.CapacityUtilization, 0.001)
}

func TestGetEventStats_ServedFromCache(t *testing.T) {
	store := newMemStore()
	service, redisMock := newTestService(store)

	venue := store.addVenue("City Hall", 100)
	event := store.addEvent("Jazz Night", venue.ID)

	cached := response.EventStatsResponse{
		EventID:       event.ID.String(),
		EventName:     "Jazz Night",
		TotalBookings: 7,
		VenueCapacity: 100,
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	redisMock.ExpectGet(cache.EventStatsKey(event.ID.String())).SetVal(string(data))

	stats, err := service.Event.GetEventStats(context.Background(), event.ID.String())

	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalBookings)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGetEventStats_EventNotFound(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	_, err := service.Event.GetEventStats(context.Background(), "3f9e8d4a-5b6c-4d7e-8f9a-0b1c2d3e4f5a")

	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}

func TestCreateEvent_VenueNotFound(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	_, err := service.Event.CreateEvent(context.Background(), &request.EventRequest{
		Name:      "Jazz Night",
		EventDate: "2026-09-15T20:00:00Z",
		VenueID:   "3f9e8d4a-5b6c-4d7e-8f9a-0b1c2d3e4f5a",
	})

	assert.ErrorIs(t, err, entity.ErrVenueNotFound)
}

func TestCreateEvent_Success(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("City Hall", 100)

	resp, err := service.Event.CreateEvent(context.Background(), &request.EventRequest{
		Name:      "Jazz Night",
		EventDate: "2026-09-15T20:00:00Z",
		VenueID:   venue.ID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, "Jazz Night", resp.Name)
	assert.Len(t, store.events, 1)
}

func TestUpdateEvent_MoveToMissingVenue(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("City Hall", 100)
	event := store.addEvent("Jazz Night", venue.ID)

	missing := "3f9e8d4a-5b6c-4d7e-8f9a-0b1c2d3e4f5a"
	_, err := service.Event.UpdateEvent(context.Background(), event.ID.String(), &request.EventUpdateRequest{
		VenueID: &missing,
	})

	assert.ErrorIs(t, err, entity.ErrVenueNotFound)
	assert.Equal(t, venue.ID, store.events[event.ID].VenueID)
}

func TestDeleteEvent_RemovesBookings(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("City Hall", 100)
	event := store.addEvent("Jazz Night", venue.ID)
	ticketType := store.addTicketType("VIP", 25.0)
	store.addBooking(event.ID, ticketType.ID, 2, entity.BookingStatusPending)
	store.addBooking(event.ID, ticketType.ID, 1, entity.BookingStatusConfirmed)

	err := service.Event.DeleteEvent(context.Background(), event.ID.String())

	require.NoError(t, err)
	assert.Empty(t, store.events)
	assert.Empty(t, store.bookings)
}
