package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariya-events/ariya/internal/shared"
)

// Repository defines persistence operations for the moderation queue.
type Repository interface {
	List(ctx context.Context, status ReportStatus, limit, offset int) ([]Report, int, error)
	FindByID(ctx context.Context, id string) (*Report, error)
	Resolve(ctx context.Context, id, adminID string, action Action, status ReportStatus, at time.Time) error
}

// PGRepository implements Repository on PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const reportColumns = `id, reporter_id, target_user_id, target_type, target_id,
	reason, status, resolved_by, resolved_action, created_at, resolved_at`

// List returns one page of reports filtered by status. An empty status lists
// everything.
func (r *PGRepository) List(ctx context.Context, status ReportStatus, limit, offset int) ([]Report, int, error) {
	filter := ""
	args := []any{limit, offset}
	if status != "" {
		filter = " WHERE status = $3"
		args = append(args, string(status))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM moderation_reports`
	if status != "" {
		if err := r.pool.QueryRow(ctx, countQuery+` WHERE status = $1`, string(status)).Scan(&total); err != nil {
			return nil, 0, err
		}
	} else if err := r.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + reportColumns + ` FROM moderation_reports` + filter + `
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *rep)
	}
	return out, total, rows.Err()
}

// FindByID fetches one report.
func (r *PGRepository) FindByID(ctx context.Context, id string) (*Report, error) {
	query := `SELECT ` + reportColumns + ` FROM moderation_reports WHERE id = $1`
	rep, err := scanReport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("Report not found")
		}
		return nil, err
	}
	return rep, nil
}

// Resolve stamps a report with its outcome. Only open reports resolve.
func (r *PGRepository) Resolve(ctx context.Context, id, adminID string, action Action, status ReportStatus, at time.Time) error {
	const query = `
		UPDATE moderation_reports
		SET status = $2, resolved_by = $3, resolved_action = $4, resolved_at = $5
		WHERE id = $1 AND status = 'OPEN'`
	tag, err := r.pool.Exec(ctx, query, id, string(status), adminID, string(action), at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.Conflict("Report is already resolved")
	}
	return nil
}

func scanReport(row pgx.Row) (*Report, error) {
	var rep Report
	var status string
	var resolvedBy, resolvedAction *string
	err := row.Scan(&rep.ID, &rep.ReporterID, &rep.TargetUserID, &rep.TargetType, &rep.TargetID,
		&rep.Reason, &status, &resolvedBy, &resolvedAction, &rep.CreatedAt, &rep.ResolvedAt)
	if err != nil {
		return nil, err
	}
	rep.Status = ReportStatus(status)
	if resolvedBy != nil {
		rep.ResolvedBy = *resolvedBy
	}
	if resolvedAction != nil {
		rep.ResolvedAction = Action(*resolvedAction)
	}
	return &rep, nil
}

var _ Repository = (*PGRepository)(nil)
