package moderation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ariya-events/ariya/internal/shared"
)

type memRepo struct {
	reports map[string]*Report
}

func newMemRepo(reports ...*Report) *memRepo {
	r := &memRepo{reports: map[string]*Report{}}
	for _, rep := range reports {
		r.reports[rep.ID] = rep
	}
	return r
}

func (r *memRepo) List(_ context.Context, status ReportStatus, limit, offset int) ([]Report, int, error) {
	var all []Report
	for _, rep := range r.reports {
		if status == "" || rep.Status == status {
			all = append(all, *rep)
		}
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*Report, error) {
	if rep, ok := r.reports[id]; ok {
		copied := *rep
		return &copied, nil
	}
	return nil, shared.NotFound("Report not found")
}

func (r *memRepo) Resolve(_ context.Context, id, adminID string, action Action, status ReportStatus, at time.Time) error {
	rep, ok := r.reports[id]
	if !ok || rep.Status != ReportOpen {
		return shared.Conflict("Report is already resolved")
	}
	rep.Status = status
	rep.ResolvedBy = adminID
	rep.ResolvedAction = action
	rep.ResolvedAt = &at
	return nil
}

func openReport(id string) *Report {
	return &Report{
		ID:           id,
		ReporterID:   "user-1",
		TargetUserID: "user-2",
		TargetType:   "EVENT",
		TargetID:     "event-1",
		Reason:       "spam",
		Status:       ReportOpen,
		CreatedAt:    time.Now().UTC(),
	}
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestResolveOpenReport(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(testLogger(&buf), newMemRepo(openReport("rep-1")))

	resolved, err := svc.Resolve(context.Background(), "admin-1", "rep-1", ActionWarn)
	require.NoError(t, err)
	require.Equal(t, ReportResolved, resolved.Status)
	require.Equal(t, "admin-1", resolved.ResolvedBy)
	require.Equal(t, ActionWarn, resolved.ResolvedAction)
	require.NotNil(t, resolved.ResolvedAt)

	// Resolution leaves an audit trail.
	require.Contains(t, buf.String(), "moderation action")
	require.Contains(t, buf.String(), "admin-1")
}

func TestResolveDismissalSetsDismissedStatus(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(testLogger(&buf), newMemRepo(openReport("rep-1")))

	resolved, err := svc.Resolve(context.Background(), "admin-1", "rep-1", ActionDismiss)
	require.NoError(t, err)
	require.Equal(t, ReportDismissed, resolved.Status)
}

func TestResolveTwiceConflicts(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(testLogger(&buf), newMemRepo(openReport("rep-1")))
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "admin-1", "rep-1", ActionWarn)
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, "admin-2", "rep-1", ActionSuspendUser)
	require.Equal(t, shared.KindConflict, shared.KindOf(err))
	require.EqualError(t, err, "Report is already resolved")
}

func TestListFiltersByStatus(t *testing.T) {
	var buf bytes.Buffer
	resolvedAt := time.Now().UTC()
	done := openReport("rep-2")
	done.Status = ReportResolved
	done.ResolvedAt = &resolvedAt

	svc := NewService(testLogger(&buf), newMemRepo(openReport("rep-1"), done))
	ctx := context.Background()

	open, p, err := svc.List(ctx, ReportOpen, 1, 20)
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.Equal(t, 1, p.Total)

	all, p, err := svc.List(ctx, "", 1, 20)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, 2, p.Total)

	none, p, err := svc.List(ctx, ReportDismissed, 1, 20)
	require.NoError(t, err)
	require.NotNil(t, none, "list must be an empty slice, not nil")
	require.Len(t, none, 0)
	require.Equal(t, 0, p.Total)
}

func TestGetUnknownReport(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(testLogger(&buf), newMemRepo())

	_, err := svc.Get(context.Background(), "ghost")
	require.Equal(t, shared.KindNotFound, shared.KindOf(err))
}
