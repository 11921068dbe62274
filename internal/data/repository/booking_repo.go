package repository

import (
	"context"
	"fmt"
	"strings"

	"ticket-booking/internal/data/entity"
	"ticket-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter narrows FindAll/CountAll results.
type BookingFilter struct {
	EventID       *uuid.UUID
	CustomerEmail *string
	Status        *entity.BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int, filter BookingFilter) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter BookingFilter) (int64, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Booking, error)
	FindByTicketTypeID(ctx context.Context, ticketTypeID uuid.UUID) ([]*entity.Booking, error)
	FindByCustomerEmail(ctx context.Context, email string) ([]*entity.Booking, error)
	CountByTicketTypeID(ctx context.Context, ticketTypeID uuid.UUID) (int64, error)

	// SumActiveQuantityByEventID returns the reserved capacity of an event:
	// the quantities of its pending and confirmed bookings. exclude skips one
	// booking, used when re-checking capacity for a quantity update.
	SumActiveQuantityByEventID(ctx context.Context, eventID uuid.UUID, exclude *uuid.UUID) (int, error)

	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEventID(ctx context.Context, eventID uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

const bookingColumns = `id, customer_name, customer_email, quantity, event_id, ticket_type_id, total_price, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.Quantity,
		&booking.EventID,
		&booking.TicketTypeID,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q(ctx).Exec(ctx, query,
		booking.ID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.Quantity,
		booking.EventID,
		booking.TicketTypeID,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("event_id", booking.EventID.String()),
			zap.String("customer_email", booking.CustomerEmail),
		)
		return fmt.Errorf("create booking for event %s: %w", booking.EventID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q(ctx).QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int, filter BookingFilter) ([]*entity.Booking, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`)

	args := []interface{}{}
	argCount := 1

	if filter.EventID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND event_id = $%d", argCount))
		args = append(args, *filter.EventID)
		argCount++
	}

	if filter.CustomerEmail != nil && *filter.CustomerEmail != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND customer_email ILIKE $%d", argCount))
		args = append(args, "%"+*filter.CustomerEmail+"%")
		argCount++
	}

	if filter.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.q(ctx).Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all bookings limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

func (r *bookingRepository) CountAll(ctx context.Context, filter BookingFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filter.EventID != nil {
		query += fmt.Sprintf(" AND event_id = $%d", argCount)
		args = append(args, *filter.EventID)
		argCount++
	}

	if filter.CustomerEmail != nil && *filter.CustomerEmail != "" {
		query += fmt.Sprintf(" AND customer_email ILIKE $%d", argCount)
		args = append(args, "%"+*filter.CustomerEmail+"%")
		argCount++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, *filter.Status)
	}

	var count int64
	err := r.q(ctx).QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count all bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at
	`

	rows, err := r.q(ctx).Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find bookings by event ID",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find bookings by event ID %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

func (r *bookingRepository) FindByTicketTypeID(ctx context.Context, ticketTypeID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ticket_type_id = $1
		ORDER BY created_at
	`

	rows, err := r.q(ctx).Query(ctx, query, ticketTypeID)
	if err != nil {
		r.log.Error("Failed to find bookings by ticket type ID",
			zap.Error(err),
			zap.String("ticket_type_id", ticketTypeID.String()),
		)
		return nil, fmt.Errorf("find bookings by ticket type ID %s: %w", ticketTypeID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

func (r *bookingRepository) FindByCustomerEmail(ctx context.Context, email string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_email = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q(ctx).Query(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to find bookings by customer email",
			zap.Error(err),
			zap.String("customer_email", email),
		)
		return nil, fmt.Errorf("find bookings by customer email %s: %w", email, err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

func (r *bookingRepository) CountByTicketTypeID(ctx context.Context, ticketTypeID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE ticket_type_id = $1`

	var count int64
	err := r.q(ctx).QueryRow(ctx, query, ticketTypeID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by ticket type ID",
			zap.Error(err),
			zap.String("ticket_type_id", ticketTypeID.String()),
		)
		return 0, fmt.Errorf("count bookings by ticket type ID %s: %w", ticketTypeID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) SumActiveQuantityByEventID(ctx context.Context, eventID uuid.UUID, exclude *uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM bookings
		WHERE event_id = $1 AND status IN ('pending', 'confirmed')
	`
	args := []interface{}{eventID}

	if exclude != nil {
		query += " AND id <> $2"
		args = append(args, *exclude)
	}

	var sum int
	err := r.q(ctx).QueryRow(ctx, query, args...).Scan(&sum)
	if err != nil {
		r.log.Error("Failed to sum active booking quantities",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return 0, fmt.Errorf("sum active quantities for event %s: %w", eventID.String(), err)
	}

	return sum, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET customer_name = $2, customer_email = $3, quantity = $4,
		    total_price = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.q(ctx).Exec(ctx, query,
		booking.ID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.Quantity,
		booking.TotalPrice,
		booking.Status,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), entity.ErrBookingNotFound)
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.q(ctx).Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s status: %w", bookingID.String(), entity.ErrBookingNotFound)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.q(ctx).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete booking %s: %w", id.String(), entity.ErrBookingNotFound)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) DeleteByEventID(ctx context.Context, eventID uuid.UUID) (int64, error) {
	query := `DELETE FROM bookings WHERE event_id = $1`

	result, err := r.q(ctx).Exec(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to delete bookings by event ID",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return 0, fmt.Errorf("delete bookings by event ID %s: %w", eventID.String(), err)
	}

	return result.RowsAffected(), nil
}

func collectBookings(rows pgx.Rows, log *zap.Logger) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}
