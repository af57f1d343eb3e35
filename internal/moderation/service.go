package moderation

import (
	"context"
	"log/slog"
	"time"

	"github.com/ariya-events/ariya/internal/shared"
)

// Service wraps moderation queue rules. Every resolution produces a
// structured audit log entry.
type Service struct {
	logger *slog.Logger
	repo   Repository
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, repo Repository) *Service {
	return &Service{logger: logger, repo: repo}
}

// List returns one page of reports.
func (s *Service) List(ctx context.Context, status ReportStatus, page, limit int) ([]Report, shared.Pagination, error) {
	p := shared.NewPagination(page, limit, 0)
	items, total, err := s.repo.List(ctx, status, p.Limit, p.Offset())
	if err != nil {
		return nil, shared.Pagination{}, shared.Internal(err)
	}
	if items == nil {
		items = []Report{}
	}
	return items, shared.NewPagination(page, limit, total), nil
}

// Get fetches one report.
func (s *Service) Get(ctx context.Context, id string) (*Report, error) {
	return s.repo.FindByID(ctx, id)
}

// Resolve records an admin's decision on an open report.
func (s *Service) Resolve(ctx context.Context, adminID, reportID string, action Action) (*Report, error) {
	status := ReportResolved
	if action == ActionDismiss {
		status = ReportDismissed
	}
	now := time.Now().UTC()
	if err := s.repo.Resolve(ctx, reportID, adminID, action, status, now); err != nil {
		return nil, err
	}
	s.logger.Info("moderation action",
		slog.String("report_id", reportID),
		slog.String("admin_id", adminID),
		slog.String("action", string(action)),
	)
	return s.repo.FindByID(ctx, reportID)
}
