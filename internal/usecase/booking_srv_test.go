package usecase_test

import (
	"context"
	"testing"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking_Success(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("City Hall", 100)
	event := store.addEvent("Jazz Night", venue.ID)
	ticketType := store.addTicketType("VIP", 25.0)

	resp, err := service.Booking.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerName:  "Alex Doe",
		CustomerEmail: "alex@example.com",
		Quantity:      3,
		EventID:       event.ID.String(),
		TicketTypeID:  ticketType.ID.String(),
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 75.0, resp.TotalPrice)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, 3, resp.Quantity)
	assert.Len(t, store.bookings, 1)
}

func TestCreateBooking_FillsVenueExactly(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("Small Club", 10)
	event := store.addEvent("Open Mic", venue.ID)
	ticketType := store.addTicketType("Standard", 10.0)

	_, err := service.Booking.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerName:  "Alex Doe",
		CustomerEmail: "alex@example.com",
		Quantity:      10,
		EventID:       event.ID.String(),
		TicketTypeID:  ticketType.ID.String(),
	})
	require.NoError(t, err)

	_, err = service.Booking.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerName:  "Sam Roe",
		CustomerEmail: "sam@example.com",
		Quantity:      1,
		EventID:       event.ID.String(),
		TicketTypeID:  ticketType.ID.String(),
	})

	var capacityErr *entity.CapacityError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, 0, capacityErr.Available)
	assert.Equal(t, 1, capacityErr.Requested)
	assert.Len(t, store.bookings, 1)
}

func TestCreateBooking_CancelledBookingFreesCapacity(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("Small Club", 10)
	event := store.addEvent("Open Mic", venue.ID)
	ticketType := store.addTicketType("Standard", 10.0)

	store.addBooking(event.ID, ticketType.ID, 10, entity.BookingStatusCancelled)

	resp, err := service.Booking.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerName:  "Sam Roe",
		CustomerEmail: "sam@example.com",
		Quantity:      10,
		EventID:       event.ID.String(),
		TicketTypeID:  ticketType.ID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, 10, resp.Quantity)
}

func TestCreateBooking_PendingCountsTowardCapacity(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("Small Club", 10)
	event := store.addEvent("Open Mic", venue.ID)
	ticketType := store.addTicketType("Standard", 10.0)

	store.addBooking(event.ID, ticketType.ID, 6, entity.BookingStatusPending)
	store.addBooking(event.ID, ticketType.ID, 3, entity.BookingStatusConfirmed)

	_, err := service.Booking.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerName:  "Sam Roe",
		CustomerEmail: "sam@example.com",
		Quantity:      2,
		EventID:       event.ID.String(),
		TicketTypeID:  ticketType.ID.String(),
	})

	var capacityErr *entity.CapacityError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, 1, capacityErr.Available)
	assert.Equal(t, 2, capacityErr.Requested)
}

func TestCreateBooking_EventNotFound(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	ticketType := store.addTicketType("Standard", 10.0)

	_, err := service.Booking.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerName:  "Alex Doe",
		CustomerEmail: "alex@example.com",
		Quantity:      1,
		EventID:       "3f9e8d4a-5b6c-4d7e-8f9a-0b1c2d3e4f5a",
		TicketTypeID:  ticketType.ID.String(),
	})

	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}

func TestCreateBooking_TicketTypeNotFound(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("City Hall", 100)
	event := store.addEvent("Jazz Night", venue.ID)

	_, err := service.Booking.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerName:  "Alex Doe",
		CustomerEmail: "alex@example.com",
		Quantity:      1,
		EventID:       event.ID.String(),
		TicketTypeID:  "3f9e8d4a-5b6c-4d7e-8f9a-0b1c2d3e4f5a",
	})

	assert.ErrorIs(t, err, entity.ErrTicketTypeNotFound)
}

func TestCreateBooking_InvalidQuantity(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("City Hall", 100)
	event := store.addEvent("Jazz Night", venue.ID)
	ticketType := store.addTicketType("VIP", 25.0)

	for _, quantity := range []int{0, -1} {
		_, err := service.Booking.CreateBooking(context.Background(), &request.CreateBookingRequest{
			CustomerName:  "Alex Doe",
			CustomerEmail: "alex@example.com",
			Quantity:      quantity,
			EventID:       event.ID.String(),
			TicketTypeID:  ticketType.ID.String(),
		})
		assert.ErrorIs(t, err, entity.ErrInvalidQuantity)
	}
	assert.Empty(t, store.bookings)
}

func TestCreateBooking_MissingEventWinsOverBadQuantity(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	ticketType := store.addTicketType("Standard", 10.0)

	_, err := service.Booking.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerName:  "Alex Doe",
		CustomerEmail: "alex@example.com",
		Quantity:      0,
		EventID:       "3f9e8d4a-5b6c-4d7e-8f9a-0b1c2d3e4f5a",
		TicketTypeID:  ticketType.ID.String(),
	})

	assert.ErrorIs(t, err, entity.ErrEventNotFound)
	assert.NotErrorIs(t, err, entity.ErrInvalidQuantity)
}

func TestCreateBooking_ValidationFailure(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	_, err := service.Booking.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerName:  "",
		CustomerEmail: "not-an-email",
		Quantity:      1,
		EventID:       "not-a-uuid",
		TicketTypeID:  "not-a-uuid",
	})

	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "CustomerName")
	assert.Contains(t, validationErr.Fields, "CustomerEmail")
}

func TestUpdateBookingStatus_ConfirmDoesNotRecheckCapacity(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("Small Club", 10)
	event := store.addEvent("Open Mic", venue.ID)
	ticketType := store.addTicketType("Standard", 10.0)
	booking := store.addBooking(event.ID, ticketType.ID, 10, entity.BookingStatusPending)

	resp, err := service.Booking.UpdateBookingStatus(context.Background(), booking.ID.String(), &request.UpdateBookingStatusRequest{
		Status: "confirmed",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
}

func TestUpdateBookingStatus_CancelledIsTerminal(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("Small Club", 10)
	event := store.addEvent("Open Mic", venue.ID)
	ticketType := store.addTicketType("Standard", 10.0)
	booking := store.addBooking(event.ID, ticketType.ID, 2, entity.BookingStatusCancelled)

	_, err := service.Booking.UpdateBookingStatus(context.Background(), booking.ID.String(), &request.UpdateBookingStatusRequest{
		Status: "pending",
	})
	assert.ErrorIs(t, err, entity.ErrBookingCancelled)

	_, err = service.Booking.UpdateBookingStatus(context.Background(), booking.ID.String(), &request.UpdateBookingStatusRequest{
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, entity.ErrBookingCancelled)
}

func TestUpdateBooking_QuantityRechecksCapacity(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("Small Club", 10)
	event := store.addEvent("Open Mic", venue.ID)
	ticketType := store.addTicketType("Standard", 10.0)
	booking := store.addBooking(event.ID, ticketType.ID, 8, entity.BookingStatusConfirmed)

	// Growing to the full capacity is fine since the booking's own
	// tickets are excluded from the reserved sum.
	quantity := 10
	resp, err := service.Booking.UpdateBooking(context.Background(), booking.ID.String(), &request.BookingUpdateRequest{
		Quantity: &quantity,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Quantity)
	assert.Equal(t, 100.0, resp.TotalPrice)

	quantity = 11
	_, err = service.Booking.UpdateBooking(context.Background(), booking.ID.String(), &request.BookingUpdateRequest{
		Quantity: &quantity,
	})

	var capacityErr *entity.CapacityError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, 10, capacityErr.Available)
}

func TestUpdateBooking_PatchKeepsOtherFields(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("Small Club", 10)
	event := store.addEvent("Open Mic", venue.ID)
	ticketType := store.addTicketType("Standard", 10.0)
	booking := store.addBooking(event.ID, ticketType.ID, 2, entity.BookingStatusPending)

	name := "Jordan Lee"
	resp, err := service.Booking.UpdateBooking(context.Background(), booking.ID.String(), &request.BookingUpdateRequest{
		CustomerName: &name,
	})

	require.NoError(t, err)
	assert.Equal(t, "Jordan Lee", resp.CustomerName)
	assert.Equal(t, "alex@example.com", resp.CustomerEmail)
	assert.Equal(t, 2, resp.Quantity)
}

func TestGetCustomerBookings(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("City Hall", 100)
	event := store.addEvent("Jazz Night", venue.ID)
	ticketType := store.addTicketType("VIP", 25.0)
	store.addBooking(event.ID, ticketType.ID, 2, entity.BookingStatusPending)
	store.addBooking(event.ID, ticketType.ID, 1, entity.BookingStatusConfirmed)

	resp, err := service.Booking.GetCustomerBookings(context.Background(), "alex@example.com")

	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalBookings)
	assert.Equal(t, "alex@example.com", resp.CustomerEmail)
}

func TestGetCustomerBookings_NoneFound(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	_, err := service.Booking.GetCustomerBookings(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}

func TestDeleteBooking(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	venue := store.addVenue("City Hall", 100)
	event := store.addEvent("Jazz Night", venue.ID)
	ticketType := store.addTicketType("VIP", 25.0)
	booking := store.addBooking(event.ID, ticketType.ID, 2, entity.BookingStatusPending)

	err := service.Booking.DeleteBooking(context.Background(), booking.ID.String())

	require.NoError(t, err)
	assert.Empty(t, store.bookings)
}

func TestDeleteBooking_InvalidID(t *testing.T) {
	store := newMemStore()
	service, _ := newTestService(store)

	err := service.Booking.DeleteBooking(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, entity.ErrInvalidID)
}
