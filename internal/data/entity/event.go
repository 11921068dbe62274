package entity

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Base
	Name      string    `db:"name"`
	EventDate time.Time `db:"event_date"`
	VenueID   uuid.UUID `db:"venue_id"`
}
