package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ariya-events/ariya/internal/shared"
)

// Service wraps event business rules. Ownership checks live here so every
// transport shares them.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields a planner may set.
type CreateInput struct {
	Title       string
	Description string
	EventType   string
	Location    string
	GuestCount  int
	BudgetCents int64
	Currency    string
	StartsAt    time.Time
}

// Create registers a new draft event owned by the calling planner.
func (s *Service) Create(ctx context.Context, plannerID string, in CreateInput) (*Event, error) {
	now := time.Now().UTC()
	event := &Event{
		ID:          uuid.NewString(),
		PlannerID:   plannerID,
		Title:       in.Title,
		Description: in.Description,
		EventType:   in.EventType,
		Location:    in.Location,
		GuestCount:  in.GuestCount,
		BudgetCents: in.BudgetCents,
		Currency:    in.Currency,
		Status:      StatusDraft,
		StartsAt:    in.StartsAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, shared.Internal(err)
	}
	return event, nil
}

// Get fetches an event, hiding other planners' events behind NotFound.
func (s *Service) Get(ctx context.Context, callerID, eventID string) (*Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.PlannerID != callerID {
		return nil, shared.NotFound("Event not found")
	}
	return event, nil
}

// List returns one page of the caller's events.
func (s *Service) List(ctx context.Context, callerID string, page, limit int) ([]Event, shared.Pagination, error) {
	p := shared.NewPagination(page, limit, 0)
	items, total, err := s.repo.ListByPlanner(ctx, callerID, p.Limit, p.Offset())
	if err != nil {
		return nil, shared.Pagination{}, shared.Internal(err)
	}
	if items == nil {
		items = []Event{}
	}
	return items, shared.NewPagination(page, limit, total), nil
}

// Update applies changes to an owned event.
func (s *Service) Update(ctx context.Context, callerID, eventID string, in CreateInput) (*Event, error) {
	event, err := s.Get(ctx, callerID, eventID)
	if err != nil {
		return nil, err
	}
	event.Title = in.Title
	event.Description = in.Description
	event.EventType = in.EventType
	event.Location = in.Location
	event.GuestCount = in.GuestCount
	event.BudgetCents = in.BudgetCents
	event.Currency = in.Currency
	event.StartsAt = in.StartsAt
	event.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an owned event.
func (s *Service) Delete(ctx context.Context, callerID, eventID string) error {
	if _, err := s.Get(ctx, callerID, eventID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, eventID)
}
