package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// EventFilter narrows FindAll/CountAll results.
type EventFilter struct {
	VenueID       *uuid.UUID
	UpcomingAfter *time.Time
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	// FindByIDForUpdate locks the event row for the duration of the
	// surrounding transaction. Reservations lock here so that concurrent
	// capacity checks for the same event serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindAll(ctx context.Context, limit, offset int, filter EventFilter) ([]*entity.Event, error)
	CountAll(ctx context.Context, filter EventFilter) (int64, error)
	CountByVenueID(ctx context.Context, venueID uuid.UUID) (int64, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

func (r *eventRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, name, event_date, venue_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q(ctx).Exec(ctx, query,
		event.ID,
		event.Name,
		event.EventDate,
		event.VenueID,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("name", event.Name),
			zap.String("venue_id", event.VenueID.String()),
		)
		return fmt.Errorf("create event %s: %w", event.Name, err)
	}

	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.findByID(ctx, id, false)
}

func (r *eventRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.findByID(ctx, id, true)
}

func (r *eventRepository) findByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*entity.Event, error) {
	query := `
		SELECT id, name, event_date, venue_id, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var event entity.Event
	err := r.q(ctx).QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.EventDate,
		&event.VenueID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, limit, offset int, filter EventFilter) ([]*entity.Event, error) {
	// Build query with optional filters
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, name, event_date, venue_id, created_at, updated_at
		FROM events
		WHERE 1=1
	`)

	args := []interface{}{}
	argCount := 1

	if filter.VenueID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND venue_id = $%d", argCount))
		args = append(args, *filter.VenueID)
		argCount++
	}

	if filter.UpcomingAfter != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND event_date > $%d", argCount))
		args = append(args, *filter.UpcomingAfter)
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY event_date LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.q(ctx).Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all events",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all events limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.EventDate,
			&event.VenueID,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}

	return events, nil
}

func (r *eventRepository) CountAll(ctx context.Context, filter EventFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM events WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filter.VenueID != nil {
		query += fmt.Sprintf(" AND venue_id = $%d", argCount)
		args = append(args, *filter.VenueID)
		argCount++
	}

	if filter.UpcomingAfter != nil {
		query += fmt.Sprintf(" AND event_date > $%d", argCount)
		args = append(args, *filter.UpcomingAfter)
	}

	var count int64
	err := r.q(ctx).QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count events", zap.Error(err))
		return 0, fmt.Errorf("count all events: %w", err)
	}

	return count, nil
}

func (r *eventRepository) CountByVenueID(ctx context.Context, venueID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM events WHERE venue_id = $1`

	var count int64
	err := r.q(ctx).QueryRow(ctx, query, venueID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count events by venue ID",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
		)
		return 0, fmt.Errorf("count events by venue ID %s: %w", venueID.String(), err)
	}

	return count, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET name = $2, event_date = $3, venue_id = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.q(ctx).Exec(ctx, query,
		event.ID,
		event.Name,
		event.EventDate,
		event.VenueID,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update event %s: %w", event.ID.String(), entity.ErrEventNotFound)
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.q(ctx).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete event %s: %w", id.String(), entity.ErrEventNotFound)
	}

	r.log.Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}
