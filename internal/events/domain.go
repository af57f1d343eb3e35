package events

import "time"

// Status tracks the event lifecycle.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusCancelled Status = "CANCELLED"
)

// Event is a planner-owned occasion vendors can be booked for.
type Event struct {
	ID          string    `json:"id"`
	PlannerID   string    `json:"plannerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventType   string    `json:"eventType"`
	Location    string    `json:"location"`
	GuestCount  int       `json:"guestCount"`
	BudgetCents int64     `json:"budgetCents"`
	Currency    string    `json:"currency"`
	Status      Status    `json:"status"`
	StartsAt    time.Time `json:"startsAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
