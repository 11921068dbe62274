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

type TicketTypeRepository interface {
	Create(ctx context.Context, ticketType *entity.TicketType) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TicketType, error)
	FindByName(ctx context.Context, name string) (*entity.TicketType, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.TicketType, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, ticketType *entity.TicketType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ticketTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketTypeRepository(db database.PgxIface, log *zap.Logger) TicketTypeRepository {
	return &ticketTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket_type")),
	}
}

func (r *ticketTypeRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

func (r *ticketTypeRepository) Create(ctx context.Context, ticketType *entity.TicketType) error {
	query := `
		INSERT INTO ticket_types (id, name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q(ctx).Exec(ctx, query,
		ticketType.ID,
		ticketType.Name,
		ticketType.Price,
		ticketType.CreatedAt,
		ticketType.UpdatedAt,
	)

	if err != nil {
		// ticket_types.name carries a unique constraint
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("create ticket type %s: %w", ticketType.Name, entity.ErrTicketTypeNameTaken)
		}
		r.log.Error("Failed to create ticket type",
			zap.Error(err),
			zap.String("name", ticketType.Name),
		)
		return fmt.Errorf("create ticket type %s: %w", ticketType.Name, err)
	}

	return nil
}

func (r *ticketTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TicketType, error) {
	query := `
		SELECT id, name, price, created_at, updated_at
		FROM ticket_types
		WHERE id = $1
	`

	var ticketType entity.TicketType
	err := r.q(ctx).QueryRow(ctx, query, id).Scan(
		&ticketType.ID,
		&ticketType.Name,
		&ticketType.Price,
		&ticketType.CreatedAt,
		&ticketType.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket type by ID",
			zap.Error(err),
			zap.String("ticket_type_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket type by ID %s: %w", id.String(), err)
	}

	return &ticketType, nil
}

func (r *ticketTypeRepository) FindByName(ctx context.Context, name string) (*entity.TicketType, error) {
	query := `
		SELECT id, name, price, created_at, updated_at
		FROM ticket_types
		WHERE name = $1
	`

	var ticketType entity.TicketType
	err := r.q(ctx).QueryRow(ctx, query, name).Scan(
		&ticketType.ID,
		&ticketType.Name,
		&ticketType.Price,
		&ticketType.CreatedAt,
		&ticketType.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket type by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find ticket type by name %s: %w", name, err)
	}

	return &ticketType, nil
}

func (r *ticketTypeRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.TicketType, error) {
	query := `
		SELECT id, name, price, created_at, updated_at
		FROM ticket_types
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.q(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all ticket types",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all ticket types limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var ticketTypes []*entity.TicketType
	for rows.Next() {
		var ticketType entity.TicketType
		err := rows.Scan(
			&ticketType.ID,
			&ticketType.Name,
			&ticketType.Price,
			&ticketType.CreatedAt,
			&ticketType.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket type row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket type row: %w", err)
		}
		ticketTypes = append(ticketTypes, &ticketType)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate ticket type rows: %w", err)
	}

	return ticketTypes, nil
}

func (r *ticketTypeRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM ticket_types`

	var count int64
	err := r.q(ctx).QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count ticket types", zap.Error(err))
		return 0, fmt.Errorf("count all ticket types: %w", err)
	}

	return count, nil
}

func (r *ticketTypeRepository) Update(ctx context.Context, ticketType *entity.TicketType) error {
	query := `
		UPDATE ticket_types
		SET name = $2, price = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.q(ctx).Exec(ctx, query,
		ticketType.ID,
		ticketType.Name,
		ticketType.Price,
		ticketType.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("update ticket type %s: %w", ticketType.ID.String(), entity.ErrTicketTypeNameTaken)
		}
		r.log.Error("Failed to update ticket type",
			zap.Error(err),
			zap.String("ticket_type_id", ticketType.ID.String()),
		)
		return fmt.Errorf("update ticket type %s: %w", ticketType.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update ticket type %s: %w", ticketType.ID.String(), entity.ErrTicketTypeNotFound)
	}

	return nil
}

func (r *ticketTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM ticket_types WHERE id = $1`

	result, err := r.q(ctx).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete ticket type",
			zap.Error(err),
			zap.String("ticket_type_id", id.String()),
		)
		return fmt.Errorf("delete ticket type %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete ticket type %s: %w", id.String(), entity.ErrTicketTypeNotFound)
	}

	r.log.Info("Ticket type deleted", zap.String("ticket_type_id", id.String()))
	return nil
}
