package moderation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariya-events/ariya/internal/platform/httpx"
	"github.com/ariya-events/ariya/internal/shared"
	"github.com/ariya-events/ariya/internal/validate"
)

// Handler wires the admin moderation endpoints. The router mounts it behind
// RequireRole(ADMIN).
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers moderation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports", h.handleList)
	r.Get("/reports/{reportID}", h.handleGet)
	r.Post("/reports/{reportID}/resolve", h.handleResolve)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, limit, err := shared.ParsePagination(r.URL.Query())
	if err != nil {
		httpx.RespondError(h.logger, "moderation.list", w, r, err)
		return
	}
	status := ReportStatus(r.URL.Query().Get("status"))
	items, pagination, err := h.service.List(r.Context(), status, page, limit)
	if err != nil {
		httpx.RespondError(h.logger, "moderation.list", w, r, err)
		return
	}
	httpx.Paginated(w, "Reports retrieved", items, pagination)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Get(r.Context(), chi.URLParam(r, "reportID"))
	if err != nil {
		httpx.RespondError(h.logger, "moderation.get", w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Report retrieved", report)
}

type resolveRequest struct {
	Action string `json:"action" validate:"required,oneof=DISMISS WARN SUSPEND_USER REMOVE_CONTENT"`
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(h.logger, "moderation.resolve", w, r, err)
		return
	}
	if err := validate.Schema(req); err != nil {
		httpx.RespondError(h.logger, "moderation.resolve", w, r, err)
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	report, err := h.service.Resolve(r.Context(), principal.UserID, chi.URLParam(r, "reportID"), Action(req.Action))
	if err != nil {
		httpx.RespondError(h.logger, "moderation.resolve", w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Report resolved", report)
}
