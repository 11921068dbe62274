package repository

import (
	"context"
	"fmt"

	"ticket-booking/internal/data/entity"
	"ticket-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *entity.Venue) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Venue, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, venue *entity.Venue) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type venueRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVenueRepository(db database.PgxIface, log *zap.Logger) VenueRepository {
	return &venueRepository{
		db:  db,
		log: log.With(zap.String("repository", "venue")),
	}
}

func (r *venueRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

func (r *venueRepository) Create(ctx context.Context, venue *entity.Venue) error {
	query := `
		INSERT INTO venues (id, name, capacity, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q(ctx).Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Capacity,
		venue.Address,
		venue.CreatedAt,
		venue.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create venue",
			zap.Error(err),
			zap.String("name", venue.Name),
		)
		return fmt.Errorf("create venue %s: %w", venue.Name, err)
	}

	return nil
}

func (r *venueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	query := `
		SELECT id, name, capacity, address, created_at, updated_at
		FROM venues
		WHERE id = $1
	`

	var venue entity.Venue
	err := r.q(ctx).QueryRow(ctx, query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Capacity,
		&venue.Address,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find venue by ID",
			zap.Error(err),
			zap.String("venue_id", id.String()),
		)
		return nil, fmt.Errorf("find venue by ID %s: %w", id.String(), err)
	}

	return &venue, nil
}

func (r *venueRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Venue, error) {
	query := `
		SELECT id, name, capacity, address, created_at, updated_at
		FROM venues
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.q(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all venues",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all venues limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var venues []*entity.Venue
	for rows.Next() {
		var venue entity.Venue
		err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Capacity,
			&venue.Address,
			&venue.CreatedAt,
			&venue.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan venue row", zap.Error(err))
			return nil, fmt.Errorf("scan venue row: %w", err)
		}
		venues = append(venues, &venue)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate venue rows: %w", err)
	}

	return venues, nil
}

func (r *venueRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM venues`

	var count int64
	err := r.q(ctx).QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count venues", zap.Error(err))
		return 0, fmt.Errorf("count all venues: %w", err)
	}

	return count, nil
}

func (r *venueRepository) Update(ctx context.Context, venue *entity.Venue) error {
	query := `
		UPDATE venues
		SET name = $2, capacity = $3, address = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.q(ctx).Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Capacity,
		venue.Address,
		venue.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update venue",
			zap.Error(err),
			zap.String("venue_id", venue.ID.String()),
		)
		return fmt.Errorf("update venue %s: %w", venue.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update venue %s: %w", venue.ID.String(), entity.ErrVenueNotFound)
	}

	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM venues WHERE id = $1`

	result, err := r.q(ctx).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete venue",
			zap.Error(err),
			zap.String("venue_id", id.String()),
		)
		return fmt.Errorf("delete venue %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete venue %s: %w", id.String(), entity.ErrVenueNotFound)
	}

	r.log.Info("Venue deleted", zap.String("venue_id", id.String()))
	return nil
}
