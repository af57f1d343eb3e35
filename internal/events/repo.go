package events

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariya-events/ariya/internal/shared"
)

// Repository defines persistence operations for events.
type Repository interface {
	Create(ctx context.Context, event *Event) error
	FindByID(ctx context.Context, id string) (*Event, error)
	ListByPlanner(ctx context.Context, plannerID string, limit, offset int) ([]Event, int, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// PGRepository implements Repository on PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const eventColumns = `id, planner_id, title, description, event_type, location,
	guest_count, budget_cents, currency, status, starts_at, created_at, updated_at`

// Create inserts a new event.
func (r *PGRepository) Create(ctx context.Context, e *Event) error {
	const query = `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.PlannerID, e.Title, e.Description, e.EventType, e.Location,
		e.GuestCount, e.BudgetCents, e.Currency, string(e.Status), e.StartsAt, e.CreatedAt, e.UpdatedAt)
	return err
}

// FindByID fetches a single event.
func (r *PGRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	var e Event
	var status string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.PlannerID, &e.Title, &e.Description, &e.EventType, &e.Location,
		&e.GuestCount, &e.BudgetCents, &e.Currency, &status, &e.StartsAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("Event not found")
		}
		return nil, err
	}
	e.Status = Status(status)
	return &e, nil
}

// ListByPlanner returns one page of a planner's events plus the total count.
func (r *PGRepository) ListByPlanner(ctx context.Context, plannerID string, limit, offset int) ([]Event, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE planner_id = $1`, plannerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + `
		FROM events WHERE planner_id = $1
		ORDER BY starts_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, plannerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var status string
		if err := rows.Scan(
			&e.ID, &e.PlannerID, &e.Title, &e.Description, &e.EventType, &e.Location,
			&e.GuestCount, &e.BudgetCents, &e.Currency, &status, &e.StartsAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		e.Status = Status(status)
		out = append(out, e)
	}
	return out, total, rows.Err()
}

// Update rewrites the mutable columns.
func (r *PGRepository) Update(ctx context.Context, e *Event) error {
	const query = `
		UPDATE events
		SET title = $2, description = $3, event_type = $4, location = $5,
		    guest_count = $6, budget_cents = $7, currency = $8, status = $9,
		    starts_at = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		e.ID, e.Title, e.Description, e.EventType, e.Location,
		e.GuestCount, e.BudgetCents, e.Currency, string(e.Status), e.StartsAt, e.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Event not found")
	}
	return nil
}

// Delete removes an event.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Event not found")
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
