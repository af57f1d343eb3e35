package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariya-events/ariya/internal/auth"
	"github.com/ariya-events/ariya/internal/events"
	"github.com/ariya-events/ariya/internal/moderation"
	"github.com/ariya-events/ariya/internal/observability"
	"github.com/ariya-events/ariya/internal/ratelimit"
	"github.com/ariya-events/ariya/internal/region"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	Region            *region.Resolver
	RateLimits        *ratelimit.Store
	Resolver          *auth.Resolver
	AuthHandler       *auth.Handler
	EventsHandler     *events.Handler
	ModerationHandler *moderation.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with Ariya defaults. Auth endpoints
// stay unversioned under /api/auth; everything else lives under /api/v1 and
// unversioned /api paths are rewritten there by the middleware stack.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Region:  params.Region,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// The API quota attaches after the role gate so checks key by the
		// authenticated user rather than the client address.
		r.Route("/events", func(r chi.Router) {
			r.Use(params.Resolver.RequireRole(auth.RolePlanner, auth.RoleAdmin))
			r.Use(ratelimit.Limit(params.RateLimits, ratelimit.CategoryAPI))
			params.EventsHandler.MountRoutes(r)
		})

		r.Route("/admin/moderation", func(r chi.Router) {
			r.Use(params.Resolver.RequireRole(auth.RoleAdmin))
			r.Use(ratelimit.Limit(params.RateLimits, ratelimit.CategoryAPI))
			params.ModerationHandler.MountRoutes(r)
		})
	})

	return r
}
