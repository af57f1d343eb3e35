package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/ariya-events/ariya/internal/platform/httpx"
	"github.com/ariya-events/ariya/internal/shared"
)

// Directory resolves a user id to the current account record. The auth
// Repository satisfies it.
type Directory interface {
	FindByID(ctx context.Context, id string) (*User, error)
}

// Resolver establishes caller identity from the bearer credential. It reads
// session state, never mutates it; resolving the same credential twice in one
// request yields an equivalent principal.
type Resolver struct {
	logger    *slog.Logger
	tokens    *TokenManager
	directory Directory
	group     singleflight.Group
}

// NewResolver constructs a Resolver.
func NewResolver(logger *slog.Logger, tokens *TokenManager, directory Directory) *Resolver {
	return &Resolver{logger: logger, tokens: tokens, directory: directory}
}

// RequireAuth rejects requests without a valid credential and stores the
// resolved principal in context.
func (rs *Resolver) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := rs.resolve(r)
		if err != nil {
			httpx.RespondError(rs.logger, "auth.require", w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal)))
	})
}

// RequireRole composes RequireAuth with a role check.
func (rs *Resolver) RequireRole(roles ...Role) func(http.Handler) http.Handler {
	allowed := make(map[Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return rs.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := shared.PrincipalFromContext(r.Context())
			if _, ok := allowed[Role(principal.Role)]; !ok {
				rs.logger.Warn("security event",
					slog.String("event", "role check failed"),
					slog.String("user_id", principal.UserID),
					slog.String("path", r.URL.Path),
				)
				httpx.RespondError(rs.logger, "auth.role", w, r, shared.Forbidden("Access denied: Insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func (rs *Resolver) resolve(r *http.Request) (*shared.Principal, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, shared.Unauthenticated("Authentication required")
	}
	claims, err := rs.tokens.Verify(r.Context(), token)
	if err != nil {
		return nil, shared.Unauthenticated("Invalid or expired token")
	}

	// Collapse concurrent lookups for the same user into one directory call.
	// The lookup runs on a detached context: collapsed callers must not
	// inherit the first request's cancellation.
	v, err, _ := rs.group.Do(claims.UserID, func() (any, error) {
		return rs.directory.FindByID(context.WithoutCancel(r.Context()), claims.UserID)
	})
	if err != nil {
		return nil, shared.Unauthenticated("Invalid or expired token")
	}
	user := v.(*User)
	if user.Status != StatusActive {
		rs.logger.Warn("security event",
			slog.String("event", "token for inactive account"),
			slog.String("user_id", user.ID),
		)
		return nil, shared.Unauthenticated("Invalid or expired token")
	}

	return &shared.Principal{
		UserID:        user.ID,
		SessionID:     claims.SessionID,
		Email:         user.Email,
		Role:          string(user.Role),
		EmailVerified: user.EmailVerified,
	}, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
