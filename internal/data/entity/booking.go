package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	Base
	CustomerName  string        `db:"customer_name"`
	CustomerEmail string        `db:"customer_email"`
	Quantity      int           `db:"quantity"`
	EventID       uuid.UUID     `db:"event_id"`
	TicketTypeID  uuid.UUID     `db:"ticket_type_id"`
	TotalPrice    float64       `db:"total_price"`
	Status        BookingStatus `db:"status"`
}

// CountsTowardCapacity reports whether the booking consumes venue capacity.
// Cancelled bookings release their seats.
func (b *Booking) CountsTowardCapacity() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
