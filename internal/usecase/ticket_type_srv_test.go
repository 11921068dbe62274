package usecase_test

import (
	"context"
	"testing"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTicketType_NameTaken(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	store.addTicketType("VIP", 25.0)

	_, err := service.TicketType.CreateTicketType(context.Background(), &request.TicketTypeRequest{
		Name:  "VIP",
		Price: 30.0,
	})

	assert.ErrorIs(t, err, entity.ErrTicketTypeNameTaken)
	assert.Len(t, store.ticketTypes, 1)
}

func TestUpdateTicketType_RenameCollision(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	store.addTicketType("VIP", 25.0)
	standard := store.addTicketType("Standard", 10.0)

	name := "VIP"
	_, err := service.TicketType.UpdateTicketType(context.Background(), standard.ID.String(), &request.TicketTypeUpdateRequest{
		Name: &name,
	})

	assert.ErrorIs(t, err, entity.ErrTicketTypeNameTaken)
	assert.Equal(t, "Standard", store.ticketTypes[standard.ID].Name)
}

func TestUpdateTicketType_PriceOnly(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	vip := store.addTicketType("VIP", 25.0)

	price := 35.0
	resp, err := service.TicketType.UpdateTicketType(context.Background(), vip.ID.String(), &request.TicketTypeUpdateRequest{
		Price: &price,
	})

	require.NoError(t, err)
	assert.Equal(t, "VIP", resp.Name)
	assert.Equal(t, 35.0, resp.Price)
}

func TestDeleteTicketType_RefusedWhenInUse(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("City Hall", 100)
	event := store.addEvent("Jazz Night", venue.ID)
	ticketType := store.addTicketType("VIP", 25.0)
	store.addBooking(event.ID, ticketType.ID, 2, entity.BookingStatusPending)

	err := service.TicketType.DeleteTicketType(context.Background(), ticketType.ID.String())

	assert.ErrorIs(t, err, entity.ErrTicketTypeInUse)
	assert.Len(t, store.ticketTypes, 1)
}

func TestDeleteTicketType_Unused(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	ticketType := store.addTicketType("VIP", 25.0)

	err := service.TicketType.DeleteTicketType(context.Background(), ticketType.ID.String())

	require.NoError(t, err)
	assert.Empty(t, store.ticketTypes)
}

func TestGetTicketTypeStats(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("City Hall", 100)
	event := store.addEvent("Jazz Night", venue.ID)
	ticketType := store.addTicketType("VIP", 25.0)

	store.addBooking(event.ID, ticketType.ID, 4, entity.BookingStatusConfirmed)
	store.addBooking(event.ID, ticketType.ID, 2, entity.BookingStatusPending)
	store.addBooking(event.ID, ticketType.ID, 9, entity.BookingStatusCancelled)

	stats, err := service.TicketType.GetTicketTypeStats(context.Background(), ticketType.ID.String())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalBookings)
	assert.Equal(t, 1, stats.ConfirmedBookings)
	assert.Equal(t, 6, stats.TotalTicketsSold)
	assert.Equal(t, 60.0, stats.TotalRevenue)
	assert.InDelta(t, 2.0, stats.AverageTicketsPerBooking, 0.001)
}

func TestGetTicketTypeByID_NotFound(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	_, err := service.TicketType.GetTicketTypeByID(context.Background(), "3f9e8d4a-5b6c-4d7e-8f9a-0b1c2d3e4f5a")

	assert.ErrorIs(t, err, entity.ErrTicketTypeNotFound)
}
