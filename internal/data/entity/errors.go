package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrVenueNotFound       = errors.New("venue not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrTicketTypeNotFound  = errors.New("ticket type not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidID           = errors.New("invalid id")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrBookingCancelled    = errors.New("cannot change status of a cancelled booking")
	ErrTicketTypeNameTaken = errors.New("ticket type name already exists")
	ErrTicketTypeInUse     = errors.New("ticket type has existing bookings")
	ErrVenueInUse          = errors.New("venue has existing events")
)

// CapacityError reports a reservation that would exceed the venue capacity.
// Available is capacity minus the quantities of non-cancelled bookings.
type CapacityError struct {
	Available int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("not enough capacity: available %d, requested %d", e.Available, e.Requested)
}

// ValidationError carries per-field messages from request validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return "validation failed: " + strings.Join(msgs, "; ")
}
