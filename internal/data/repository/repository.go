package repository

import (
	"context"

	"ticket-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tx         TxManager
	Venue      VenueRepository
	Event      EventRepository
	TicketType TicketTypeRepository
	Booking    BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:         NewTxManager(db),
		Venue:      NewVenueRepository(db, log),
		Event:      NewEventRepository(db, log),
		TicketType: NewTicketTypeRepository(db, log),
		Booking:    NewBookingRepository(db, log),
	}
}

// TxManager runs a function inside a database transaction. Repository calls
// made with the returned context join the transaction.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txManager struct {
	db database.PgxIface
}

func NewTxManager(db database.PgxIface) TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.WithTx(ctx, m.db, fn)
}
