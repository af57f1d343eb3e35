package events

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariya-events/ariya/internal/platform/httpx"
	"github.com/ariya-events/ariya/internal/region"
	"github.com/ariya-events/ariya/internal/shared"
	"github.com/ariya-events/ariya/internal/validate"
)

// Handler wires the /events HTTP endpoints. All routes require an
// authenticated planner; the router attaches the role gate.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers event routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{eventID}", h.handleGet)
	r.Put("/{eventID}", h.handleUpdate)
	r.Delete("/{eventID}", h.handleDelete)
}

type eventRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	EventType   string    `json:"eventType" validate:"required,oneof=WEDDING BIRTHDAY CORPORATE CONFERENCE SOCIAL OTHER"`
	Location    string    `json:"location" validate:"required,max=300"`
	GuestCount  int       `json:"guestCount" validate:"omitempty,min=1,max=100000"`
	BudgetCents int64     `json:"budgetCents" validate:"omitempty,min=0"`
	Currency    string    `json:"currency" validate:"omitempty,len=3"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
}

func (r eventRequest) input() CreateInput {
	currency := r.Currency
	if currency == "" {
		currency = "USD"
	}
	return CreateInput{
		Title:       r.Title,
		Description: r.Description,
		EventType:   r.EventType,
		Location:    r.Location,
		GuestCount:  r.GuestCount,
		BudgetCents: r.BudgetCents,
		Currency:    currency,
		StartsAt:    r.StartsAt,
	}
}

// eventView decorates an Event with its budget rendered in the caller's
// currency, per the locale the region middleware resolved.
type eventView struct {
	Event
	BudgetDisplay string `json:"budgetDisplay,omitempty"`
}

func view(r *http.Request, e Event) eventView {
	v := eventView{Event: e}
	if e.BudgetCents <= 0 {
		return v
	}
	amount := float64(e.BudgetCents) / 100
	code := e.Currency
	if loc, ok := region.LocaleFromContext(r.Context()); ok {
		if converted, err := region.Convert(amount, e.Currency, loc.Currency); err == nil {
			amount, code = converted, loc.Currency
		}
	}
	v.BudgetDisplay = region.Format(amount, code)
	return v
}

func views(r *http.Request, items []Event) []eventView {
	out := make([]eventView, len(items))
	for i, e := range items {
		out[i] = view(r, e)
	}
	return out
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(h.logger, "events.create", w, r, err)
		return
	}
	if err := validate.Schema(req); err != nil {
		httpx.RespondError(h.logger, "events.create", w, r, err)
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	event, err := h.service.Create(r.Context(), principal.UserID, req.input())
	if err != nil {
		httpx.RespondError(h.logger, "events.create", w, r, err)
		return
	}
	httpx.Created(w, "Event created", view(r, *event))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, limit, err := shared.ParsePagination(r.URL.Query())
	if err != nil {
		httpx.RespondError(h.logger, "events.list", w, r, err)
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	items, pagination, err := h.service.List(r.Context(), principal.UserID, page, limit)
	if err != nil {
		httpx.RespondError(h.logger, "events.list", w, r, err)
		return
	}
	httpx.Paginated(w, "Events retrieved", views(r, items), pagination)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	event, err := h.service.Get(r.Context(), principal.UserID, chi.URLParam(r, "eventID"))
	if err != nil {
		httpx.RespondError(h.logger, "events.get", w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Event retrieved", view(r, *event))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(h.logger, "events.update", w, r, err)
		return
	}
	if err := validate.Schema(req); err != nil {
		httpx.RespondError(h.logger, "events.update", w, r, err)
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	event, err := h.service.Update(r.Context(), principal.UserID, chi.URLParam(r, "eventID"), req.input())
	if err != nil {
		httpx.RespondError(h.logger, "events.update", w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Event updated", view(r, *event))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), principal.UserID, chi.URLParam(r, "eventID")); err != nil {
		httpx.RespondError(h.logger, "events.delete", w, r, err)
		return
	}
	httpx.NoContent(w)
}
